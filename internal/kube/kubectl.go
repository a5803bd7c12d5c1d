// Package kube builds and runs the kubectl invocations kship needs. Every
// command that talks to the cluster carries the proxy assignment when one
// is configured.
package kube

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"

	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/runner"
)

const (
	binary = "kubectl"

	queryTimeout = 60 * time.Second
)

type Kubectl struct {
	Settings *models.Settings
	Runner   runner.CommandRunner
}

func New(s *models.Settings, r runner.CommandRunner) *Kubectl {
	if r == nil {
		r = &runner.ExecRunner{}
	}
	return &Kubectl{Settings: s, Runner: r}
}

// ProxyEnv is the environment assignment for cluster traffic, or nil.
func ProxyEnv(s *models.Settings) []string {
	if s.Proxy == "" {
		return nil
	}
	return []string{"HTTPS_PROXY=" + s.Proxy}
}

func (k *Kubectl) command(args ...string) runner.Command {
	return runner.Command{Name: binary, Args: args, Env: ProxyEnv(k.Settings)}
}

func (k *Kubectl) scope() []string {
	return []string{"--context=" + k.Settings.Context, "--namespace=" + k.Settings.Namespace}
}

// ApplyNamespace creates the namespace or updates it when present: a
// client side dry-run renders it, apply reconciles it.
func (k *Kubectl) ApplyNamespace(ctx context.Context) error {
	render := runner.Command{
		Name: binary,
		Args: []string{"create", "namespace", k.Settings.Namespace, "--dry-run=client", "-o", "yaml"},
	}
	apply := k.command("apply", "-f", "-", "--context="+k.Settings.Context)

	if err := k.Runner.Pipe(ctx, runner.NoDeadline, render, apply); err != nil {
		return fmt.Errorf("failed to apply namespace %s: %w", k.Settings.Namespace, err)
	}
	return nil
}

// GetPod returns the pod, or nil when it does not exist.
func (k *Kubectl) GetPod(ctx context.Context, name string) (*corev1.Pod, error) {
	args := append([]string{"get", "pod", name, "-o", "json", "--ignore-not-found"}, k.scope()...)
	out, err := k.Runner.RunCommand(ctx, queryTimeout, runner.Capture, k.command(args...))
	if err != nil {
		return nil, fmt.Errorf("failed to look up pod %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	if strings.TrimSpace(string(out)) == "" {
		return nil, nil
	}

	var pod corev1.Pod
	if err := json.Unmarshal(out, &pod); err != nil {
		return nil, fmt.Errorf("failed to decode pod %s: %w", name, err)
	}
	return &pod, nil
}

// RunPodCommand is the interactive, self-removing pod launch.
func (k *Kubectl) RunPodCommand(name string, command []string) runner.Command {
	args := []string{"run", name, "--rm", "-i", "--tty", "--restart=Never"}
	if k.Settings.PodOverrides != "" {
		args = append(args, "--overrides="+k.Settings.PodOverrides)
	}
	args = append(args, k.scope()...)
	args = append(args, "--image", k.Settings.Image())
	args = append(args, EnvArgs(k.Settings.Env)...)
	args = append(args, "--")
	args = append(args, command...)
	return k.command(args...)
}

func (k *Kubectl) RunPod(ctx context.Context, name string, command []string) error {
	_, err := k.Runner.RunCommand(ctx, runner.NoDeadline, runner.Stream, k.RunPodCommand(name, command))
	return err
}

func (k *Kubectl) AttachPod(ctx context.Context, name string) error {
	args := append([]string{"attach", name, "-i", "--tty", "-c", name}, k.scope()...)
	_, err := k.Runner.RunCommand(ctx, runner.NoDeadline, runner.Stream, k.command(args...))
	return err
}

func (k *Kubectl) DeletePod(ctx context.Context, name string) error {
	args := append([]string{"delete", "pod", name}, k.scope()...)
	if _, err := k.Runner.RunCommand(ctx, runner.NoDeadline, runner.Stream, k.command(args...)); err != nil {
		return fmt.Errorf("failed to delete pod %s: %w", name, err)
	}
	return nil
}

func (k *Kubectl) DeleteNamespace(ctx context.Context) error {
	c := k.command("delete", "namespace", k.Settings.Namespace, "--context="+k.Settings.Context)
	if _, err := k.Runner.RunCommand(ctx, runner.NoDeadline, runner.Stream, c); err != nil {
		return fmt.Errorf("failed to delete namespace %s: %w", k.Settings.Namespace, err)
	}
	return nil
}

// DeleteContext drops the context entry from the local kubeconfig.
func (k *Kubectl) DeleteContext(ctx context.Context) error {
	c := runner.Command{Name: binary, Args: []string{"config", "delete-context", k.Settings.Context}}
	if out, err := k.Runner.RunCommand(ctx, queryTimeout, runner.Capture, c); err != nil {
		return fmt.Errorf("failed to delete context %s: %w: %s", k.Settings.Context, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// EnvArgs renders --env flags in key order so runs are reproducible.
func EnvArgs(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, "--env", k+"="+env[k])
	}
	return args
}
