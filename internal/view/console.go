package view

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Console implements the dialog capabilities over a line-oriented terminal.
type Console struct {
	raw io.Reader
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{raw: in, in: bufio.NewReader(in), out: out}
}

// ReadLine prints label and returns the next line without its newline.
// io.EOF is returned once input is exhausted and nothing was typed.
func (c *Console) ReadLine(label string) (string, error) {
	if label != "" {
		fmt.Fprint(c.out, label)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Secret reads a line without echo when attached to a terminal.
func (c *Console) Secret(label string) (string, error) {
	f, ok := c.raw.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.ReadLine(label)
	}
	fmt.Fprint(c.out, label)
	raw, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Prompt shows defaultValue in brackets. A blank answer accepts it; end of
// input cancels.
func (c *Console) Prompt(message, defaultValue string) (string, bool) {
	label := message + " "
	if defaultValue != "" {
		label = fmt.Sprintf("%s [%s] ", message, defaultValue)
	}
	line, err := c.ReadLine(label)
	if err != nil {
		fmt.Fprintln(c.out)
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, true
	}
	return line, true
}

func (c *Console) Confirm(message string) bool {
	line, err := c.ReadLine(message + " [y/N] ")
	if err != nil {
		fmt.Fprintln(c.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *Console) Alert(message string) {
	fmt.Fprintf(c.out, "! %s\n", message)
}
