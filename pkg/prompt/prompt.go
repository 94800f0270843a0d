// pkg/prompt/prompt.go - answers the Auto-Fix confirmation outside the TUI.

package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/windowsadmins/wampdoctor/pkg/logging"
)

// AlwaysYes confirms without asking; used for `fix --yes`.
type AlwaysYes struct{}

func (AlwaysYes) Confirm(ctx context.Context, title, text string) bool {
	logging.Info("Confirmation answered by flag", "question", text)
	return ctx.Err() == nil
}

// Console asks on a terminal. A non-interactive input answers no.
type Console struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	yes         string
	no          string
}

// NewConsole returns a Console on stdin/stdout. yes and no are the
// localized answer words shown in the prompt.
func NewConsole(yes, no string) *Console {
	return NewConsoleIO(os.Stdin, os.Stdout, isTerminal(os.Stdin), yes, no)
}

// NewConsoleIO returns a Console on the given streams.
func NewConsoleIO(in io.Reader, out io.Writer, interactive bool, yes, no string) *Console {
	return &Console{in: in, out: out, interactive: interactive, yes: yes, no: no}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Confirm prints the question and reads one line. Anything other than an
// answer starting like "y" or the localized yes is no.
func (c *Console) Confirm(ctx context.Context, title, text string) bool {
	fmt.Fprintf(c.out, "\n%s\n%s [%s/%s]: ", title, text, c.yes, c.no)
	if !c.interactive {
		fmt.Fprintln(c.out, c.no)
		logging.Warn("Confirmation declined, input is not a terminal")
		return false
	}

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(c.in).ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return false
	case line := <-answer:
		ok := c.accepts(line)
		logging.Info("Confirmation answered on console", "accepted", ok)
		return ok
	}
}

func (c *Console) accepts(line string) bool {
	a := strings.ToLower(strings.TrimSpace(line))
	if a == "" {
		return false
	}
	if strings.HasPrefix(a, "y") {
		return true
	}
	// "j" for "Ja", "e" or "evet" for "Evet"
	yes, no := strings.ToLower(c.yes), strings.ToLower(c.no)
	return strings.HasPrefix(yes, a) && !strings.HasPrefix(no, a)
}
