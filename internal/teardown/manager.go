package teardown

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/kship/internal/kube"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/prompter"
	"github.com/MrSnakeDoc/kship/internal/runner"
)

// Deleter removes a whole namespace after an explicit confirmation.
type Deleter struct {
	Settings *models.Settings
	Kube     *kube.Kubectl
	Prompter prompter.Prompter
}

func New(s *models.Settings, r runner.CommandRunner, p prompter.Prompter) *Deleter {
	if r == nil {
		r = &runner.ExecRunner{}
	}
	return &Deleter{
		Settings: s,
		Kube:     kube.New(s, r),
		Prompter: p,
	}
}

// Execute deletes the namespace only when the operator confirms. A
// refusal logs a warning and returns nil without touching the cluster.
func (d *Deleter) Execute(ctx context.Context) error {
	ok, err := d.Prompter.Confirm(fmt.Sprintf(
		"This will delete all resources in namespace %s on context %s, are you sure?",
		d.Settings.Namespace, d.Settings.Context,
	))
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn("Deletion of %s cancelled, nothing deleted", d.Settings.Namespace)
		return nil
	}

	logger.Step("Deleting all resources in %s...", logger.Highlight(d.Settings.Namespace))
	if err := d.Kube.DeleteNamespace(ctx); err != nil {
		return err
	}

	if d.Settings.DeleteContext {
		logger.Step("Removing context %s from kubeconfig...", d.Settings.Context)
		if err := d.Kube.DeleteContext(ctx); err != nil {
			return err
		}
	}

	logger.Success("Namespace %s deleted", d.Settings.Namespace)
	return nil
}
