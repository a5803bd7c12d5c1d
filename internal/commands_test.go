package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/kship/internal/globalconfig"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/middleware"
	"github.com/MrSnakeDoc/kship/internal/progress"
	"github.com/MrSnakeDoc/kship/internal/prompter"
	"github.com/MrSnakeDoc/kship/internal/runner"
)

const projectYAML = `
app: shop
image_repo: registry.example.com/shop
stages:
  staging:
    namespace: shop-staging
    context: staging-cluster
`

// harness wires mocks into every task and returns the args prefix pointing
// at a temporary kship.yml.
func harness(t *testing.T, p *prompter.MockPrompter) (*runner.MockRunner, []string) {
	t.Helper()
	logger.UseTestMode()

	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"KSHIP_NAMESPACE", "KSHIP_CONTEXT", "KSHIP_IMAGE_TAG", "KSHIP_BRANCH", "KSHIP_PROXY"} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "kship.yml")
	require.NoError(t, os.WriteFile(path, []byte(projectYAML), 0o644))

	m := runner.NewMockRunner()
	origRunner, origPrompter, origIndicator, origLook := newRunner, newPrompter, newIndicator, middleware.LookPath
	newRunner = func() runner.CommandRunner { return m }
	newPrompter = func() prompter.Prompter { return p }
	newIndicator = func() progress.Indicator { return progress.Plain{} }
	middleware.LookPath = func(file string) (string, error) { return "/usr/bin/" + file, nil }
	t.Cleanup(func() {
		newRunner, newPrompter, newIndicator, middleware.LookPath = origRunner, origPrompter, origIndicator, origLook
	})

	return m, []string{"--config", path, "--stage", "staging"}
}

func run(args ...string) error {
	return runContext(context.Background(), args...)
}

func runContext(ctx context.Context, args ...string) error {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	_, err := root.ExecuteContextC(ctx)
	return err
}

func TestCmd_FlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "command without command", args: []string{"command"}},
		{name: "bash with arguments", args: []string{"bash", "rails", "c"}},
		{name: "tag and branch", args: []string{"deploy", "--image-tag", "abc", "--branch", "main"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := harness(t, &prompter.MockPrompter{})

			err := run(tt.args...)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "already logged") {
				t.Errorf("expected sentinel error, got: %v", err)
			}
			assert.Empty(t, m.Commands)
		})
	}
}

func TestCmd_Deploy(t *testing.T) {
	m, base := harness(t, &prompter.MockPrompter{})

	args := append([]string{"deploy"}, base...)
	args = append(args, "--image-tag", "abc123", "--skip-image-check", "--proxy", "http://proxy:3128",
		"--deployment-options", "--no-prune")
	require.NoError(t, run(args...))

	require.Len(t, m.Commands, 4)
	assert.True(t, m.VerifyCommand("kubectl", "apply", "-f", "-", "--context=staging-cluster"))

	deploy := m.Find("krane", "deploy")
	require.Len(t, deploy, 1)
	assert.Equal(t, []string{"deploy", "shop-staging", "staging-cluster", "--stdin", "--no-prune"}, deploy[0].Args)
	assert.Equal(t, []string{"HTTPS_PROXY=http://proxy:3128"}, deploy[0].Env)
}

func TestCmd_DeployNeedsDocker(t *testing.T) {
	m, base := harness(t, &prompter.MockPrompter{})
	middleware.LookPath = func(file string) (string, error) {
		if file == "docker" {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + file, nil
	}

	err := run(append([]string{"deploy", "--image-tag", "abc123"}, base...)...)
	require.ErrorIs(t, err, middleware.ErrLogged)
	assert.Contains(t, err.Error(), "docker")
	assert.Empty(t, m.Commands)

	// The registry probe does not need docker.
	require.NoError(t, run(append([]string{"deploy", "--image-tag", "abc123", "--probe", "registry", "--skip-image-check"}, base...)...))
}

func TestCmd_DeployInterruptedWhileWaiting(t *testing.T) {
	m, base := harness(t, &prompter.MockPrompter{})
	m.AddResponse(runner.Key("docker", "manifest", "inspect", "registry.example.com/shop:abc123"),
		[]byte("no such manifest"), errors.New("exit status 1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runContext(ctx, append([]string{"deploy", "--image-tag", "abc123"}, base...)...)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Find("krane"))
}

func TestCmd_DeployMissingSettings(t *testing.T) {
	m, base := harness(t, &prompter.MockPrompter{})

	err := run("deploy", "--config", base[1], "--image-tag", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "namespace")
	assert.Empty(t, m.Commands)
}

func TestCmd_Command(t *testing.T) {
	p := &prompter.MockPrompter{Prompts: []string{"migrate-pod"}}
	m, base := harness(t, p)

	args := append([]string{"command"}, base...)
	args = append(args, "--image-tag", "abc123", "--skip-image-check", "-e", "RAILS_ENV=staging", "rake db:migrate")
	require.NoError(t, run(args...))

	runs := m.Find("kubectl", "run", "migrate-pod")
	require.Len(t, runs, 1)
	got := runs[0].Args
	assert.Equal(t, []string{"--", "rake", "db:migrate"}, got[len(got)-3:])
	assert.Contains(t, got, "RAILS_ENV=staging")
}

func TestCmd_Delete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		m, base := harness(t, &prompter.MockPrompter{Confirms: []bool{true}})

		require.NoError(t, run(append([]string{"delete"}, base...)...))
		assert.True(t, m.VerifyCommand("kubectl", "delete", "namespace", "shop-staging", "--context=staging-cluster"))
	})

	t.Run("declined", func(t *testing.T) {
		m, base := harness(t, &prompter.MockPrompter{Confirms: []bool{false}})

		require.NoError(t, run(append([]string{"delete"}, base...)...))
		assert.Empty(t, m.Commands)
	})
}

func TestCmd_Config(t *testing.T) {
	_, base := harness(t, &prompter.MockPrompter{})

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.UseTestMode()

	require.NoError(t, run(append([]string{"config"}, base...)...))
	assert.Contains(t, buf.String(), "shop-staging")
	assert.Contains(t, buf.String(), "config/deploy/staging")
}

func TestCmd_InitUser(t *testing.T) {
	harness(t, &prompter.MockPrompter{})

	require.NoError(t, run("init", "--user", "--proxy", "http://proxy:3128", "--pod-name-style", "random"))

	layer, err := globalconfig.LoadUserLayer()
	require.NoError(t, err)
	assert.Equal(t, "http://proxy:3128", layer.Proxy)
	assert.Equal(t, "random", layer.PodNameStyle)
}

func TestCmd_Version(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Version: dev\n", out.String())
}
