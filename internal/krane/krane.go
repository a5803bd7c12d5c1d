package krane

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/MrSnakeDoc/kship/internal/kube"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/runner"
	"github.com/MrSnakeDoc/kship/internal/utils"
)

const (
	binary      = "krane"
	secretsFile = "secrets.ejson"
)

// Applier renders the templates with the release bindings and pipes them
// into a krane deploy.
type Applier struct {
	Settings *models.Settings
	Runner   runner.CommandRunner
}

func New(s *models.Settings, r runner.CommandRunner) *Applier {
	if r == nil {
		r = &runner.ExecRunner{}
	}
	return &Applier{Settings: s, Runner: r}
}

// SecretsFile returns the ejson secrets path next to the templates when it
// exists on disk, "" otherwise.
func SecretsFile(manifestPath string) (string, error) {
	path := filepath.Join(manifestPath, secretsFile)
	ok, err := utils.FileExists(path)
	if err != nil || !ok {
		return "", err
	}
	return path, nil
}

func (a *Applier) RenderCommand() runner.Command {
	s := a.Settings
	bindings := strings.Join([]string{
		"image_repo=" + s.ImageRepo,
		"image_tag=" + s.ImageTag,
		"namespace=" + s.Namespace,
	}, ",")

	return runner.Command{
		Name: binary,
		Args: []string{"render", "--bindings=" + bindings, "--current-sha", s.ImageTag, "-f", s.ManifestPath()},
		Env:  kube.ProxyEnv(s),
	}
}

// DeployCommand targets the namespace. extra is the free-form deployment
// options string, split with shell quoting rules.
func (a *Applier) DeployCommand(extra string) (runner.Command, error) {
	s := a.Settings
	return a.deployCommand([]string{"deploy", s.Namespace, s.Context, "--stdin"}, extra)
}

// GlobalDeployCommand targets cluster scoped resources matching the
// configured selector.
func (a *Applier) GlobalDeployCommand(extra string) (runner.Command, error) {
	s := a.Settings
	if s.GlobalSelector.Key == "" || s.GlobalSelector.Value == "" {
		return runner.Command{}, fmt.Errorf("global deploy needs global_selector key and value")
	}
	selector := s.GlobalSelector.Key + "=" + s.GlobalSelector.Value
	return a.deployCommand([]string{"global-deploy", s.Context, "--selector", selector, "--stdin"}, extra)
}

func (a *Applier) deployCommand(args []string, extra string) (runner.Command, error) {
	if extra == "" {
		extra = a.Settings.DeploymentOptions
	}
	if extra != "" {
		opts, err := shellwords.Parse(extra)
		if err != nil {
			return runner.Command{}, fmt.Errorf("invalid deployment options %q: %w", extra, err)
		}
		args = append(args, opts...)
	}

	secrets, err := SecretsFile(a.Settings.ManifestPath())
	if err != nil {
		return runner.Command{}, err
	}
	if secrets != "" {
		args = append(args, "--filenames", secrets)
	}

	return runner.Command{Name: binary, Args: args, Env: kube.ProxyEnv(a.Settings)}, nil
}

// Deploy applies every namespaced resource.
func (a *Applier) Deploy(ctx context.Context, extra string) error {
	logger.Step("Applying all Kubernetes resources...")
	dst, err := a.DeployCommand(extra)
	if err != nil {
		return err
	}
	return a.apply(ctx, dst)
}

// GlobalDeploy applies the cluster scoped resources.
func (a *Applier) GlobalDeploy(ctx context.Context, extra string) error {
	logger.Step("Applying all global Kubernetes resources...")
	dst, err := a.GlobalDeployCommand(extra)
	if err != nil {
		return err
	}
	return a.apply(ctx, dst)
}

func (a *Applier) apply(ctx context.Context, dst runner.Command) error {
	src := a.RenderCommand()
	logger.Debug("%s | %s", src, dst)

	if err := a.Runner.Pipe(ctx, runner.NoDeadline, src, dst); err != nil {
		return fmt.Errorf("krane failed: %w", err)
	}
	return nil
}
