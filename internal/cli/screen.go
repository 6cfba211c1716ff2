package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"golang.org/x/term"
)

// screen clears the terminal between menu screens. It is a no-op unless
// clearing is enabled and the output is a terminal.
type screen struct {
	out     io.Writer
	enabled bool
}

func newScreen(out *os.File, want bool) *screen {
	return &screen{out: out, enabled: want && term.IsTerminal(int(out.Fd()))}
}

func (s *screen) clear() {
	if !s.enabled {
		return
	}
	if runtime.GOOS == "windows" {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = s.out
		_ = cmd.Run()
		return
	}
	fmt.Fprint(s.out, "\033[H\033[2J")
}
