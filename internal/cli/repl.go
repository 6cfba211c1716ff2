package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it; tests
// use a lightweight stub.
type execIface interface {
	Clear()
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Save(ctx context.Context) error
	Exit(ctx context.Context) error
}

var menu = []string{
	"1. List of records",
	"2. Details of record",
	"3. Add new record",
	"4. Edit record",
	"5. Delete record",
	"6. Save",
	"0. Exit",
}

func printMenu() {
	for _, l := range menu {
		printlnFn(l)
	}
	printlnFn()
}

// runREPL shows the menu, reads a choice from reader and dispatches it to a.
//
// Choices are menu numbers or their word aliases. Handler errors are not
// fatal; handlers report them to the user. Exit returns once the vault was
// saved; a failed save keeps the loop running. End of input saves and
// returns regardless.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	redraw := true
	for {
		if redraw {
			a.Clear()
			printMenu()
		}
		redraw = true

		printlnFn(fmt.Sprintf("keychain %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			_ = a.Exit(ctx)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			redraw = false
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "1", "l", "list":
			_ = a.List(ctx)
		case "2", "show", "details":
			_ = a.Show(ctx)
		case "3", "add", "new":
			_ = a.Add(ctx)
		case "4", "edit":
			_ = a.Edit(ctx)
		case "5", "delete", "rm":
			_ = a.Delete(ctx)
		case "6", "save":
			_ = a.Save(ctx)
			redraw = false
		case "help", "?":
			printlnFn("Available commands: 1|list, 2|show, 3|add, 4|edit, 5|delete, 6|save, 0|exit")
			redraw = false
		case "0", "exit", "quit", "q":
			if err := a.Exit(ctx); err == nil {
				printlnFn("Bye!")
				return
			}
			redraw = false
		default:
			printlnFn("Unknown command:", parts[0])
			redraw = false
		}
	}
}
