package internal

import (
	"strings"

	"github.com/MrSnakeDoc/kship/internal/deploy"
	"github.com/MrSnakeDoc/kship/internal/errs"
	"github.com/MrSnakeDoc/kship/internal/middleware"

	"github.com/spf13/cobra"
)

func NewBashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bash",
		Short: "Open a shell in a throwaway pod running the release image",
		Long: `Spin up a temporary pod with the image of the chosen branch and open
an interactive bash in it. The pod is removed when the shell exits.`,
		Args: tagArgs(func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return middleware.FlagComboError(errs.CommandWithBashArgs, strings.Join(args, " "))
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settingsFrom(cmd)
			if err != nil {
				return err
			}

			dep := deploy.New(s, newRunner(), newPrompter(), newIndicator())
			return dep.Shell(cmd.Context(), []string{"bash"}, true)
		},
	}

	addPodFlags(cmd)
	return cmd
}

func addPodFlags(cmd *cobra.Command) {
	cmd.Flags().StringToStringP("env", "e", nil, "Environment variable for the pod (KEY=VALUE, repeatable)")
	cmd.Flags().String("overrides", "", "JSON pod overrides passed to kubectl run")
	cmd.Flags().String("pod-name-style", "", `Suggested pod name: "identity" (user-command-branch) or "random"`)
}
