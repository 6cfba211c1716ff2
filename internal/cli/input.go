package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/vault"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. Surrounding whitespace is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a line from the terminal without
// echo. The caller should wipe the returned slice.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+" "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetRequired re-prompts until a non-blank line is entered.
func GetRequired(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
	}
}

// GetDate re-prompts until a valid dd.mm.yyyy date is entered.
func GetDate(reader *bufio.Reader, prompt string, w io.Writer) (vault.Date, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return vault.Date{}, err
		}
		d, err := vault.ParseDate(s)
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(w, "Date format: dd.mm.yyyy")
	}
}

// SplitSubdomains turns space separated input into a list. Blank input
// gives nil.
func SplitSubdomains(s string) []string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return nil
	}
	return f
}

// ParsePosition parses a 1-based record number. Anything that is not a
// positive integer is reported as common.ErrorNotFound, the same as a
// position past the end.
func ParsePosition(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: bad record number %q", common.ErrorNotFound, s)
	}
	return n, nil
}
