package internal

import (
	"github.com/MrSnakeDoc/kship/internal/initiator"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/middleware"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter kship.yml in the current directory",
		Long: "Create a starter kship.yml in the current directory.\n" +
			"With --user, store --proxy, --probe, --poll-timeout, --main-branch and\n" +
			"--pod-name-style as personal defaults in ~/.config/kship/config.yml instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if user {
				path, err := initiator.SaveUserDefaults(middleware.FlagLayer(cmd.Flags()))
				if err != nil {
					return err
				}
				logger.Success("Saved personal defaults to %s", path)
				return nil
			}

			path, err := initiator.New("").Execute()
			if err != nil {
				return err
			}

			logger.Success("Initialized kship in %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Save personal defaults instead of creating kship.yml")
	cmd.Flags().String("pod-name-style", "", "Default pod naming: identity or random")
	return cmd
}
