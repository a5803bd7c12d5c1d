package internal

import (
	"github.com/MrSnakeDoc/kship/internal/deploy"
	"github.com/MrSnakeDoc/kship/internal/errs"
	"github.com/MrSnakeDoc/kship/internal/middleware"

	"github.com/spf13/cobra"
)

func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Release a branch to the stage namespace",
		Long: `Release a branch to the namespace of the stage.
This will:
- Ask which branch to release (unless --branch or --image-tag is given)
- Wait for the image of its head commit to be published
- Create or update the namespace
- Render the krane templates and deploy them`,
		Example: `kship deploy --stage staging
kship deploy --stage staging --branch feature-x -f config/deploy/review
kship deploy --stage production --image-tag 3f2c1a9 --deployment-options "--global-timeout=10m"`,
		Args: tagArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settingsFrom(cmd)
			if err != nil {
				return err
			}

			dep := deploy.New(s, newRunner(), newPrompter(), newIndicator())
			return dep.Deploy(cmd.Context(), "")
		},
	}

	addDeployFlags(cmd)
	return cmd
}

func NewGlobalDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "global-deploy",
		Short: "Release the cluster scoped resources of a branch",
		Long: `Release the cluster scoped resources selected by global_selector.
Same flow as deploy, without touching the namespace.`,
		Args: tagArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settingsFrom(cmd)
			if err != nil {
				return err
			}

			dep := deploy.New(s, newRunner(), newPrompter(), newIndicator())
			return dep.GlobalDeploy(cmd.Context(), "")
		},
	}

	addDeployFlags(cmd)
	return cmd
}

func addDeployFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("filepaths", "f", "", "Template directory (default config/deploy/<stage>)")
	cmd.Flags().String("deployment-options", "", "Extra krane deploy arguments, shell quoted")
}

// tagArgs rejects --image-tag together with --branch before running the
// positional args check.
func tagArgs(next cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("image-tag") && cmd.Flags().Changed("branch") {
			return middleware.FlagComboError(errs.TagWithBranch, cmd.Name())
		}
		return next(cmd, args)
	}
}
