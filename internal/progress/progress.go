package progress

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"

	"github.com/MrSnakeDoc/kship/internal/logger"
)

// Indicator shows progress while fn runs and returns fn's error.
type Indicator interface {
	Run(ctx context.Context, title string, fn func(ctx context.Context) error) error
}

// Default returns a spinner on a terminal and plain log lines otherwise.
func Default() Indicator {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return Spinner{}
	}
	return Plain{}
}

// Spinner animates on the terminal. Accessible prints a static line
// instead, and Output defaults to stderr.
type Spinner struct {
	Accessible bool
	Output     io.Writer
}

// Run cancels fn's context as soon as the spinner stops, including when the
// operator interrupts it.
func (s Spinner) Run(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sp := spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Context(ctx).
		Accessible(s.Accessible).
		ActionWithErr(fn)
	if s.Output != nil {
		sp = sp.Output(s.Output)
	}
	return sp.Run()
}

type Plain struct{}

func (Plain) Run(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	logger.Info("%s", title)
	return fn(ctx)
}
