// Package console writes human-readable diagnostics to a terminal.
package console

import (
	"bufio"
	"io"
	"os"
)

// clearHome erases the screen and moves the cursor to row 1, column 1
const clearHome = "\x1b[2J\x1b[1;1H"

// Console is a line-oriented sink: every line is flushed as soon as it is
// written, so diagnostics show up immediately even when stdout is a pipe.
type Console struct {
	w *bufio.Writer
}

// New wraps w
func New(w io.Writer) *Console {
	return &Console{w: bufio.NewWriter(w)}
}

// Stdout returns a console on the process's standard output
func Stdout() *Console {
	return New(os.Stdout)
}

// Write implements io.Writer. Output is flushed before returning.
func (c *Console) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, c.w.Flush()
}

// Clear erases the terminal and homes the cursor
func (c *Console) Clear() error {
	_, err := io.WriteString(c, clearHome)
	return err
}
