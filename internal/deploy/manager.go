package deploy

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/kship/internal/gitref"
	"github.com/MrSnakeDoc/kship/internal/image"
	"github.com/MrSnakeDoc/kship/internal/krane"
	"github.com/MrSnakeDoc/kship/internal/kube"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/podrunner"
	"github.com/MrSnakeDoc/kship/internal/progress"
	"github.com/MrSnakeDoc/kship/internal/prompter"
	"github.com/MrSnakeDoc/kship/internal/runner"
)

// Deployer chains the release steps. Each step finishes before the next
// one starts; nothing is rolled back on failure.
type Deployer struct {
	Settings *models.Settings
	Runner   runner.CommandRunner
	Prompter prompter.Prompter

	Resolver *gitref.Resolver
	Poller   *image.Poller
	Kube     *kube.Kubectl
	Applier  *krane.Applier
}

func New(s *models.Settings, r runner.CommandRunner, p prompter.Prompter, ind progress.Indicator) *Deployer {
	if r == nil {
		r = &runner.ExecRunner{}
	}
	if ind == nil {
		ind = progress.Plain{}
	}

	return &Deployer{
		Settings: s,
		Runner:   r,
		Prompter: p,
		Resolver: gitref.New(r, p, s.Remote, s.MainBranch),
		Poller: &image.Poller{
			Probe:     image.NewProbe(s.ImageProbe, r),
			Indicator: ind,
			Repo:      s.ImageRepo,
			Interval:  s.PollInterval,
			Timeout:   s.PollTimeout,
		},
		Kube:    kube.New(s, r),
		Applier: krane.New(s, r),
	}
}

// ResolveTag fills in the branch and image tag unless the tag was given.
func (d *Deployer) ResolveTag(ctx context.Context) error {
	if d.Settings.ImageTag != "" {
		logger.Debug("using provided image tag %s", d.Settings.ImageTag)
		return nil
	}

	branch, sha, err := d.Resolver.Resolve(ctx, d.Settings.Branch)
	if err != nil {
		return fmt.Errorf("failed to resolve image tag: %w", err)
	}
	d.Settings.Branch = branch
	d.Settings.ImageTag = sha

	logger.Info("Releasing %s at %s", logger.Highlight(branch), sha)
	return nil
}

// WaitForImage blocks until the tag is published, unless the check is off.
func (d *Deployer) WaitForImage(ctx context.Context) error {
	if d.Settings.SkipImageCheck {
		logger.Debug("image readiness check skipped")
		return nil
	}
	return d.Poller.WaitUntilReady(ctx, d.Settings.ImageTag)
}

// Deploy releases the namespaced resources.
func (d *Deployer) Deploy(ctx context.Context, options string) error {
	if err := d.ResolveTag(ctx); err != nil {
		return err
	}
	if err := d.WaitForImage(ctx); err != nil {
		return err
	}

	logger.Step("Create/update namespace on Kubernetes cluster...")
	if err := d.Kube.ApplyNamespace(ctx); err != nil {
		return err
	}

	if err := d.Applier.Deploy(ctx, options); err != nil {
		return err
	}

	logger.Success("Deployed %s to %s on %s", d.Settings.ImageTag, d.Settings.Namespace, d.Settings.Context)
	return nil
}

// GlobalDeploy releases the cluster scoped resources. The namespace is
// not reconciled.
func (d *Deployer) GlobalDeploy(ctx context.Context, options string) error {
	if err := d.ResolveTag(ctx); err != nil {
		return err
	}
	if err := d.WaitForImage(ctx); err != nil {
		return err
	}

	if err := d.Applier.GlobalDeploy(ctx, options); err != nil {
		return err
	}

	logger.Success("Deployed global resources for %s on %s", d.Settings.ImageTag, d.Settings.Context)
	return nil
}

// Shell runs command in an ephemeral pod. With waitFirst the image is
// checked before the operator is asked for a pod name.
func (d *Deployer) Shell(ctx context.Context, command []string, waitFirst bool) error {
	if err := d.ResolveTag(ctx); err != nil {
		return err
	}
	if waitFirst {
		if err := d.WaitForImage(ctx); err != nil {
			return err
		}
	}

	var waiter podrunner.Waiter
	if !d.Settings.SkipImageCheck {
		waiter = d.Poller
	}

	return podrunner.New(d.Settings, d.Runner, d.Prompter, waiter).Run(ctx, command)
}
