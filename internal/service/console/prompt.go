package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads operator answers line by line.
type Prompter struct {
	// in buffers the operator input.
	in *bufio.Reader
	// out receives prompts.
	out io.Writer
	// fd is the terminal descriptor of the input, -1 when the input is not a terminal.
	fd int
}

// NewPrompter creates a prompter reading from in and writing prompts to out.
// Secrets are read without echo when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	fd := -1

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  fd,
	}
}

// Line asks for a line of text. An empty answer yields def.
// io.EOF is returned once the input is exhausted.
func (p *Prompter) Line(label, def string) (string, error) {
	if def != "" {
		_, _ = fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		_, _ = fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}

	if line == "" {
		return def, nil
	}

	return line, nil
}

// Secret asks for a value without echoing it on a terminal.
func (p *Prompter) Secret(label string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", label)

	if p.fd < 0 {
		return p.readLine()
	}

	raw, err := term.ReadPassword(p.fd)
	_, _ = fmt.Fprintln(p.out)

	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}

	return string(raw), nil
}

// Confirm asks a yes/no question. Anything but an explicit yes is a no.
func (p *Prompter) Confirm(_ context.Context, question string) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s (y/N): ", question)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes", "예", "네":
		return true, nil
	default:
		return false, nil
	}
}

// readLine returns the next line without its terminator.
// A final line without a newline is returned before io.EOF.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
