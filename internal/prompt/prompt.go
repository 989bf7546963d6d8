// Package prompt provides interactive yes/no confirmation, designed
// for testability with mock implementations.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	// Confirm displays question and returns the user's answer. An empty
	// answer returns def.
	Confirm(question string, def bool) (bool, error)
}

// StdinConfirmer implements Confirmer over stdin/stdout.
type StdinConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// NewStdinConfirmer creates a Confirmer reading from r and writing to w.
func NewStdinConfirmer(r io.Reader, w io.Writer) *StdinConfirmer {
	return &StdinConfirmer{In: r, Out: w}
}

// Confirm displays the question with a [y/N] or [Y/n] suffix and reads
// one answer line. Unrecognized input returns the default.
func (c *StdinConfirmer) Confirm(question string, def bool) (bool, error) {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	_, _ = fmt.Fprintf(c.Out, "%s %s: ", question, suffix)

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return def, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	case "":
		return def, nil
	default:
		return def, nil
	}
}

// StdinIsTerminal reports whether stdin is an interactive terminal.
// Prompting makes no sense otherwise; callers fall back to the default
// answer.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
