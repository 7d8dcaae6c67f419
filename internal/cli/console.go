package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// console wraps a command's input and output streams for interactive
// prompting. A single buffered reader is shared across prompts so piped
// input is not lost between reads.
type console struct {
	in  *bufio.Reader
	raw io.Reader
	out io.Writer
}

func newConsole(cmd *cobra.Command) *console {
	in := cmd.InOrStdin()
	return &console{
		in:  bufio.NewReader(in),
		raw: in,
		out: cmd.OutOrStdout(),
	}
}

func (c *console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPIN suppresses echo when input comes from a terminal, and falls back
// to a plain line read so piped and scripted input keeps working.
func (c *console) readPIN(prompt string) (string, error) {
	if f, ok := c.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.out, prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return c.readLine(prompt)
}
