package internal

import (
	"github.com/MrSnakeDoc/kship/internal/middleware"
	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/progress"
	"github.com/MrSnakeDoc/kship/internal/prompter"
	"github.com/MrSnakeDoc/kship/internal/runner"
	"github.com/spf13/cobra"
)

// Collaborators of every task, swapped in tests.
var (
	newRunner    = func() runner.CommandRunner { return runner.ExecRunner{} }
	newPrompter  = prompter.Default
	newIndicator = progress.Default
)

var (
	clusterTask = middleware.UseMiddlewareChain(
		middleware.RequireTools("git", "kubectl", "krane"),
		middleware.LoadSettings,
		middleware.RequireValidSettings,
		middleware.RequireImageProbe,
	)
	podTask = middleware.UseMiddlewareChain(
		middleware.RequireTools("git", "kubectl"),
		middleware.LoadSettings,
		middleware.RequireValidSettings,
		middleware.RequireImageProbe,
	)
	namespaceTask = middleware.UseMiddlewareChain(
		middleware.RequireTools("kubectl"),
		middleware.LoadSettings,
		middleware.RequireValidSettings,
	)
)

var defaultCommands = []middleware.CommandFactory{
	NewInitCmd,
	middleware.UseMiddlewareChain(middleware.LoadSettings)(NewConfigCmd),
	clusterTask(NewDeployCmd),
	clusterTask(NewGlobalDeployCmd),
	podTask(NewBashCmd),
	podTask(NewCommandCmd),
	namespaceTask(NewDeleteCmd),
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}

func settingsFrom(cmd *cobra.Command) (*models.Settings, error) {
	return middleware.Get[*models.Settings](cmd, middleware.CtxKeySettings)
}
