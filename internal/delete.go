package internal

import (
	"github.com/MrSnakeDoc/kship/internal/teardown"

	"github.com/spf13/cobra"
)

func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every resource in the stage namespace",
		Long: `Delete the namespace of the stage, and everything in it, after confirmation.
With --delete-context the kubectl context is also removed from the local kubeconfig.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settingsFrom(cmd)
			if err != nil {
				return err
			}

			return teardown.New(s, newRunner(), newPrompter()).Execute(cmd.Context())
		},
	}

	cmd.Flags().Bool("delete-context", false, "Also remove the context from the local kubeconfig")

	return cmd
}
