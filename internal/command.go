package internal

import (
	"github.com/MrSnakeDoc/kship/internal/deploy"
	"github.com/MrSnakeDoc/kship/internal/errs"
	"github.com/MrSnakeDoc/kship/internal/middleware"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
)

func NewCommandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "command -- <command> [args...]",
		Short: "Run a command in a throwaway pod running the release image",
		Long: `Spin up a temporary pod with the image of the chosen branch and run the
given command interactively, with the given environment variables.
A single quoted argument is split with shell rules.`,
		Example: `kship command -- rake db:migrate
kship command -e RAILS_ENV=staging "rails runner 'puts User.count'"`,
		Args: tagArgs(func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return middleware.FlagComboError(errs.MissingCommand)
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFrom(cmd)
			if err != nil {
				return err
			}

			command, err := commandWords(args)
			if err != nil {
				return err
			}

			dep := deploy.New(s, newRunner(), newPrompter(), newIndicator())
			return dep.Shell(cmd.Context(), command, false)
		},
	}

	addPodFlags(cmd)
	return cmd
}

func commandWords(args []string) ([]string, error) {
	if len(args) != 1 {
		return args, nil
	}
	return shellwords.Parse(args[0])
}
