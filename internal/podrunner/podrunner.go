package podrunner

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/rand"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/MrSnakeDoc/kship/internal/kube"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/prompter"
	"github.com/MrSnakeDoc/kship/internal/runner"
)

// Conflict choices offered when the pod name is taken.
const (
	Attach  = "attach"
	Replace = "replace"
	Other   = "other"
)

var conflictOptions = []prompter.Option{
	{Label: "Reattach to its container", Value: Attach},
	{Label: "Kill it and launch a fresh one", Value: Replace},
	{Label: "Keep it and start one with a different name", Value: Other},
}

// Waiter blocks until the image tag is published.
type Waiter interface {
	WaitUntilReady(ctx context.Context, tag string) error
}

// Runner launches throwaway interactive pods from the release image.
type Runner struct {
	Settings *models.Settings
	Kube     *kube.Kubectl
	Exec     runner.CommandRunner
	Prompter prompter.Prompter
	// Waiter is nil when the image check is skipped.
	Waiter Waiter
}

func New(s *models.Settings, r runner.CommandRunner, p prompter.Prompter, w Waiter) *Runner {
	if r == nil {
		r = &runner.ExecRunner{}
	}
	return &Runner{
		Settings: s,
		Kube:     kube.New(s, r),
		Exec:     r,
		Prompter: p,
		Waiter:   w,
	}
}

// Run names a pod, then either launches it or, when a pod of that name is
// already there, lets the operator attach, replace or pick another name.
func (r *Runner) Run(ctx context.Context, command []string) error {
	if len(command) == 0 {
		return fmt.Errorf("no command to run")
	}

	suggested := r.DefaultName(ctx, command)
	for {
		name, err := r.askName(suggested)
		if err != nil {
			return err
		}

		pod, err := r.Kube.GetPod(ctx, name)
		if err != nil {
			return err
		}
		if pod == nil {
			return r.launch(ctx, name, command)
		}

		started := "an unknown time"
		if pod.Status.StartTime != nil {
			started = pod.Status.StartTime.UTC().Format("Jan _2, 15:04")
		}

		choice, err := r.Prompter.Select(
			fmt.Sprintf("Pod already exists, running since %s UTC, what would you like to do?", started),
			conflictOptions,
		)
		if err != nil {
			return err
		}

		switch choice {
		case Attach:
			if err := r.Kube.AttachPod(ctx, name); err != nil {
				return err
			}
			return r.Kube.DeletePod(ctx, name)
		case Replace:
			if err := r.Kube.DeletePod(ctx, name); err != nil {
				return err
			}
			return r.launch(ctx, name, command)
		case Other:
			suggested = name
			continue
		default:
			return fmt.Errorf("unknown choice %q", choice)
		}
	}
}

func (r *Runner) askName(suggested string) (string, error) {
	for {
		name, err := r.Prompter.Prompt("What name for the pod?", suggested)
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)

		errs := validation.IsDNS1123Label(name)
		if len(errs) == 0 {
			return name, nil
		}
		logger.Warn("%q is not a valid pod name: %s", name, strings.Join(errs, "; "))
		suggested = SanitizeName(name)
	}
}

func (r *Runner) launch(ctx context.Context, name string, command []string) error {
	logger.Step("Launching pod %s to run %s", logger.Highlight(name), logger.Highlight(strings.Join(command, " ")))

	if r.Waiter != nil {
		if err := r.Waiter.WaitUntilReady(ctx, r.Settings.ImageTag); err != nil {
			return err
		}
	}
	return r.Kube.RunPod(ctx, name, command)
}

// DefaultName suggests <user>-<command>-<branch>, or <app>-<command>-<random>
// with the random style.
func (r *Runner) DefaultName(ctx context.Context, command []string) string {
	if r.Settings.PodNameStyle == models.PodNameRandom {
		app := r.Settings.App
		if app == "" {
			app = "kship"
		}
		return SanitizeName(strings.Join([]string{app, command[0], rand.String(5)}, "-"))
	}

	parts := []string{r.whoami(ctx), strings.Join(command, " ")}
	if r.Settings.Branch != "" {
		parts = append(parts, r.Settings.Branch)
	}
	return SanitizeName(strings.Join(parts, "-"))
}

func (r *Runner) whoami(ctx context.Context) string {
	out, err := r.Exec.Run(ctx, 5*time.Second, runner.Capture, "whoami")
	if user := strings.TrimSpace(string(out)); err == nil && user != "" {
		return user
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "kship"
}

var invalidChars = regexp.MustCompile(`[^a-z0-9-]+`)

// SanitizeName lowercases and folds anything outside [a-z0-9-] into
// dashes so the result is a DNS-1123 label.
func SanitizeName(s string) string {
	s = invalidChars.ReplaceAllString(strings.ToLower(s), "-")
	s = strings.Trim(s, "-")
	if len(s) > validation.DNS1123LabelMaxLength {
		s = strings.TrimRight(s[:validation.DNS1123LabelMaxLength], "-")
	}
	if s == "" {
		return "kship-pod"
	}
	return s
}
