package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrAborted is returned when the operator interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

type Prompter interface {
	Confirm(question string) (bool, error)
	Prompt(question, defaultValue string) (string, error)
	Select(question string, options []Option) (string, error)
}

// Option is a single entry of a Select prompt. Value is what gets returned.
type Option struct {
	Label string
	Value string
}

// Options builds options whose label and value are the same string.
func Options(values ...string) []Option {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Label: v, Value: v})
	}
	return opts
}

// Default returns the interactive prompter when stdin is a terminal, and a
// line based one otherwise (pipes, CI).
func Default() Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewHuh()
	}
	return New(os.Stdin, os.Stdout)
}

type TextPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *TextPrompter {
	return &TextPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *TextPrompter) Confirm(q string) (bool, error) {
	if _, err := fmt.Fprintf(p.out, "%s [y/N]: ", q); err != nil {
		return false, err
	}

	resp, err := p.readLine()
	if err != nil {
		return false, err
	}

	r := strings.ToLower(resp)
	return r == "y" || r == "yes", nil
}

func (p *TextPrompter) Prompt(q, def string) (string, error) {
	label := q + " "
	if def != "" {
		label = fmt.Sprintf("%s [%s] ", q, def)
	}
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", err
	}

	resp, err := p.readLine()
	if err != nil {
		return "", err
	}
	if resp == "" {
		return def, nil
	}
	return resp, nil
}

// Select lists the options with 1-based indexes. An empty answer picks the
// first option; anything else must be a valid index.
func (p *TextPrompter) Select(q string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from for %q", q)
	}

	for {
		if _, err := fmt.Fprintln(p.out, q); err != nil {
			return "", err
		}
		for i, o := range options {
			if _, err := fmt.Fprintf(p.out, "  %d) %s\n", i+1, o.Label); err != nil {
				return "", err
			}
		}
		if _, err := fmt.Fprint(p.out, "Choice [1]: "); err != nil {
			return "", err
		}

		resp, err := p.readLine()
		if err != nil {
			return "", err
		}
		if resp == "" {
			return options[0].Value, nil
		}

		idx, err := strconv.Atoi(resp)
		if err == nil && idx >= 1 && idx <= len(options) {
			return options[idx-1].Value, nil
		}
		if _, err := fmt.Fprintf(p.out, "Invalid choice %q\n", resp); err != nil {
			return "", err
		}
	}
}

func (p *TextPrompter) readLine() (string, error) {
	resp, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && resp != "" {
			return strings.TrimSpace(resp), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(resp), nil
}
