package runner

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type MockRunner struct {
	Commands     []MockCommand
	Responses    map[string]MockResponse
	ResponseFunc func(name string, args ...string) ([]byte, error)
}

type MockCommand struct {
	Name    string
	Args    []string
	Env     []string
	Timeout time.Duration
	Mode    Mode
	// PipedTo is set on the source side of a Pipe call.
	PipedTo *MockCommand
}

type MockResponse struct {
	Output []byte
	Error  error
}

func NewMockRunner() *MockRunner {
	return &MockRunner{
		Commands:  []MockCommand{},
		Responses: make(map[string]MockResponse),
	}
}

func (m *MockRunner) Run(
	ctx context.Context,
	timeout time.Duration,
	mode Mode,
	name string,
	args ...string,
) ([]byte, error) {
	return m.RunCommand(ctx, timeout, mode, Command{Name: name, Args: args})
}

func (m *MockRunner) RunCommand(
	_ context.Context,
	timeout time.Duration,
	mode Mode,
	c Command,
) ([]byte, error) {
	m.Commands = append(m.Commands, MockCommand{
		Name:    c.Name,
		Args:    c.Args,
		Env:     c.Env,
		Timeout: timeout,
		Mode:    mode,
	})

	out, err := m.respond(c.Name, c.Args...)
	if mode == Stream {
		return nil, err
	}
	return out, err
}

// Pipe records src (with PipedTo pointing at dst) followed by dst. The
// response of dst decides the result.
func (m *MockRunner) Pipe(_ context.Context, timeout time.Duration, src, dst Command) error {
	right := MockCommand{Name: dst.Name, Args: dst.Args, Env: dst.Env, Timeout: timeout, Mode: Stream}
	m.Commands = append(m.Commands,
		MockCommand{Name: src.Name, Args: src.Args, Env: src.Env, Timeout: timeout, Mode: Capture, PipedTo: &right},
		right,
	)

	if _, err := m.respond(src.Name, src.Args...); err != nil {
		return err
	}
	_, err := m.respond(dst.Name, dst.Args...)
	return err
}

func (m *MockRunner) respond(name string, args ...string) ([]byte, error) {
	key := cmdKey(name, args...)
	if resp, ok := m.Responses[key]; ok {
		return resp.Output, resp.Error
	}
	if m.ResponseFunc != nil {
		return m.ResponseFunc(name, args...)
	}
	return []byte{}, nil
}

func (m *MockRunner) AddResponse(key string, output []byte, err error) {
	m.Responses[key] = MockResponse{
		Output: output,
		Error:  err,
	}
}

func cmdKey(name string, args ...string) string {
	key := name
	for _, arg := range args {
		key += "|" + arg
	}
	return key
}

// Key builds the lookup key AddResponse expects.
func Key(name string, args ...string) string {
	return cmdKey(name, args...)
}

func (m *MockRunner) VerifyCommand(name string, args ...string) bool {
	for _, cmd := range m.Commands {
		if cmd.Name == name && argsEqual(cmd.Args, args) {
			return true
		}
	}
	return false
}

func (m *MockRunner) VerifyRunCount(name string, count int) bool {
	runCount := 0
	for _, cmd := range m.Commands {
		if cmd.Name == name {
			runCount++
		}
	}
	return runCount == count
}

// Find returns every recorded command whose name matches and whose args
// start with prefix.
func (m *MockRunner) Find(name string, prefix ...string) []MockCommand {
	var found []MockCommand
	for _, cmd := range m.Commands {
		if cmd.Name != name || len(cmd.Args) < len(prefix) {
			continue
		}
		if argsEqual(cmd.Args[:len(prefix)], prefix) {
			found = append(found, cmd)
		}
	}
	return found
}

// Lines renders the recorded commands the way a shell transcript would.
func (m *MockRunner) Lines() []string {
	lines := make([]string, 0, len(m.Commands))
	for _, c := range m.Commands {
		lines = append(lines, Command{Name: c.Name, Args: c.Args, Env: c.Env}.String())
	}
	return lines
}

func argsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *MockRunner) MockRemoteBranches(remote, main string, branches ...string) {
	var output strings.Builder
	for _, b := range branches {
		fmt.Fprintf(&output, "  %s/%s\n", remote, b)
	}
	m.AddResponse(cmdKey("git", "branch", "-r", "--no-merged", remote+"/"+main, "--sort=-committerdate"), []byte(output.String()), nil)
}

func (m *MockRunner) MockRevParse(remote, branch, sha string) {
	m.AddResponse("git|rev-parse|"+remote+"/"+branch, []byte(sha+"\n"), nil)
}

func (m *MockRunner) MockWhoami(user string) {
	m.AddResponse("whoami", []byte(user+"\n"), nil)
}
