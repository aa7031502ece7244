package convert

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// console is where shell reads commands from and writes messages to.
type console interface {
	io.Writer
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

// newConsole gives line editing and history when stdin is a terminal.
func newConsole(in *os.File, out io.Writer) console {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return newLineConsole(in, out)
	}
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "")
	if w, h, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(w, h)
	}
	return &ttyConsole{fd: fd, t: t, out: out}
}

// ttyConsole switches terminal to raw mode only while line is being read, so
// anything else (logs included) is printed normally.
type ttyConsole struct {
	fd  int
	t   *term.Terminal
	out io.Writer
}

func (c *ttyConsole) ReadLine() (string, error) {
	old, err := term.MakeRaw(c.fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(c.fd, old)
	return c.t.ReadLine()
}

func (c *ttyConsole) SetPrompt(prompt string) {
	c.t.SetPrompt(prompt)
}

func (c *ttyConsole) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// lineConsole is used for pipes and redirected input, no prompt is printed.
type lineConsole struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newLineConsole(in io.Reader, out io.Writer) *lineConsole {
	return &lineConsole{sc: bufio.NewScanner(in), out: out}
}

func (c *lineConsole) ReadLine() (string, error) {
	if c.sc.Scan() {
		return c.sc.Text(), nil
	}
	if err := c.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (c *lineConsole) SetPrompt(string) {}

func (c *lineConsole) Write(p []byte) (int, error) {
	return c.out.Write(p)
}
