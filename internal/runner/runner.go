package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

type Mode int

const (
	Capture Mode = iota
	Stream
)

// NoDeadline lets a command run until it exits or ctx is cancelled.
const NoDeadline time.Duration = 0

// Command is a single process invocation. Env entries are appended to the
// current process environment.
type Command struct {
	Name string
	Args []string
	Env  []string
}

func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Args)+1)
	parts = append(parts, c.Env...)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, mode Mode,
		name string, args ...string) ([]byte, error)
	RunCommand(ctx context.Context, timeout time.Duration, mode Mode, c Command) ([]byte, error)
	Pipe(ctx context.Context, timeout time.Duration, src, dst Command) error
}

type ExecRunner struct{}

func (r ExecRunner) Run(
	parent context.Context,
	timeout time.Duration,
	mode Mode,
	name string,
	args ...string,
) ([]byte, error) {
	return r.RunCommand(parent, timeout, mode, Command{Name: name, Args: args})
}

// RunCommand runs c. A zero timeout leaves the command without deadline,
// which interactive sessions rely on.
func (ExecRunner) RunCommand(
	parent context.Context,
	timeout time.Duration,
	mode Mode,
	c Command,
) ([]byte, error) {
	ctx, cancel := withTimeout(parent, timeout)
	defer cancel()

	cmd := build(ctx, c)

	switch mode {
	case Stream:
		cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin
		return nil, cmd.Run()
	default:
		out, err := cmd.CombinedOutput()
		return out, err
	}
}

// Pipe connects src stdout to dst stdin. dst output is streamed to the
// terminal; the first failing side is reported.
func (ExecRunner) Pipe(parent context.Context, timeout time.Duration, src, dst Command) error {
	ctx, cancel := withTimeout(parent, timeout)
	defer cancel()

	left := build(ctx, src)
	right := build(ctx, dst)

	left.Stderr = os.Stderr
	right.Stdout, right.Stderr = os.Stdout, os.Stderr

	pipe, err := left.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open pipe from %s: %w", src.Name, err)
	}
	right.Stdin = pipe

	if err := left.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", src.Name, err)
	}
	if err := right.Start(); err != nil {
		_ = left.Process.Kill()
		_ = left.Wait()
		return fmt.Errorf("failed to start %s: %w", dst.Name, err)
	}

	leftErr := left.Wait()
	rightErr := right.Wait()

	if leftErr != nil {
		return leftErr
	}
	return rightErr
}

func build(ctx context.Context, c Command) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	return cmd
}

func withTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
