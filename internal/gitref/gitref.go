package gitref

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/prompter"
	"github.com/MrSnakeDoc/kship/internal/runner"
)

const gitTimeout = 2 * time.Minute

var ErrNoCommit = errors.New("no commit found for branch")

// Resolver turns a remote branch into the commit the image is tagged with.
type Resolver struct {
	Runner     runner.CommandRunner
	Prompter   prompter.Prompter
	Remote     string
	MainBranch string
}

func New(r runner.CommandRunner, p prompter.Prompter, remote, main string) *Resolver {
	if r == nil {
		r = &runner.ExecRunner{}
	}
	return &Resolver{Runner: r, Prompter: p, Remote: remote, MainBranch: main}
}

// ListBranches fetches the remote and returns the main branch followed by
// the unmerged remote branches, most recent commit first.
func (r *Resolver) ListBranches(ctx context.Context) ([]string, error) {
	logger.Step("Refreshing Git branches...")

	if out, err := r.Runner.Run(ctx, gitTimeout, runner.Capture, "git", "fetch", "--prune"); err != nil {
		return nil, fmt.Errorf("git fetch failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	out, err := r.Runner.Run(ctx, gitTimeout, runner.Capture,
		"git", "branch", "-r", "--no-merged", r.Remote+"/"+r.MainBranch, "--sort=-committerdate")
	if err != nil {
		return nil, fmt.Errorf("git branch failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	return ParseBranches(string(out), r.Remote, r.MainBranch), nil
}

// ParseBranches keeps the branches of remote, in the listed order, with
// the main branch first and only once.
func ParseBranches(out, remote, main string) []string {
	prefix := remote + "/"
	branches := []string{main}
	seen := map[string]bool{main: true}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "->") || !strings.HasPrefix(line, prefix) {
			continue
		}
		name := strings.TrimPrefix(line, prefix)
		if seen[name] {
			continue
		}
		seen[name] = true
		branches = append(branches, name)
	}
	return branches
}

// ResolveCommit returns the commit hash the remote branch points at.
func (r *Resolver) ResolveCommit(ctx context.Context, branch string) (string, error) {
	ref := r.Remote + "/" + branch
	out, err := r.Runner.Run(ctx, gitTimeout, runner.Capture, "git", "rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("git rev-parse %s failed: %w: %s", ref, err, strings.TrimSpace(string(out)))
	}

	sha, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if sha == "" {
		return "", fmt.Errorf("%w %s", ErrNoCommit, ref)
	}
	return sha, nil
}

// Resolve asks which branch to release unless one is given, and returns
// the branch with its commit.
func (r *Resolver) Resolve(ctx context.Context, branch string) (string, string, error) {
	if branch == "" {
		branches, err := r.ListBranches(ctx)
		if err != nil {
			return "", "", err
		}
		branch, err = r.Prompter.Select("Which branch?", prompter.Options(branches...))
		if err != nil {
			return "", "", err
		}
	}

	sha, err := r.ResolveCommit(ctx, branch)
	if err != nil {
		return "", "", err
	}

	logger.Debug("branch %s resolved to %s", branch, sha)
	return branch, sha, nil
}
