package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Ensure Console implements the interface.
var _ driven.Console = (*Console)(nil)

// Console reads questions line by line. When input is not a terminal the
// line is echoed after the prompt so piped transcripts stay readable.
type Console struct {
	in   *bufio.Reader
	out  io.Writer
	echo bool
}

// NewConsole creates a console over in and out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:   bufio.NewReader(in),
		out:  out,
		echo: !isTerminal(in),
	}
}

type readResult struct {
	line string
	err  error
}

// ReadLine prints prompt and returns the next line without its line ending.
// A final line without a newline is returned before io.EOF.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, prompt)

	done := make(chan readResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		done <- readResult{line: line, err: err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case res = <-done:
	}

	line := strings.TrimRight(res.line, "\r\n")
	if res.err != nil {
		if errors.Is(res.err, io.EOF) && line != "" {
			c.echoLine(line)
			return line, nil
		}
		if c.echo {
			fmt.Fprintln(c.out)
		}
		return "", res.err
	}
	c.echoLine(line)
	return line, nil
}

// Println writes one line of output.
func (c *Console) Println(text string) {
	fmt.Fprintln(c.out, text)
}

func (c *Console) echoLine(line string) {
	if c.echo {
		fmt.Fprintln(c.out, line)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
