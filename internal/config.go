package internal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/kship/internal/config"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/models"

	"github.com/spf13/cobra"
)

func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved settings",
		Long: `Show the settings a task would run with, after merging the defaults,
~/.config/kship/config.yml, kship.yml, the stage, KSHIP_* variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settingsFrom(cmd)
			if err != nil {
				return err
			}

			table := logger.CreateTable([]string{"Setting", "Value"})
			for _, row := range settingsRows(s) {
				if err := table.Append(row); err != nil {
					return err
				}
			}
			if err := table.Render(); err != nil {
				return err
			}

			if err := config.Validate(s); err != nil {
				logger.Warn("%v", err)
			}
			return nil
		},
	}
}

func settingsRows(s *models.Settings) [][]string {
	env := make([]string, 0, len(s.Env))
	for k, v := range s.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)

	selector := ""
	if s.GlobalSelector.Key != "" {
		selector = s.GlobalSelector.Key + "=" + s.GlobalSelector.Value
	}

	return [][]string{
		{"stage", s.Stage},
		{"namespace", s.Namespace},
		{"context", s.Context},
		{"image_repo", s.ImageRepo},
		{"image_tag", s.ImageTag},
		{"branch", s.Branch},
		{"main_branch", s.Remote + "/" + s.MainBranch},
		{"proxy", s.Proxy},
		{"filepaths", s.ManifestPath()},
		{"deployment_options", s.DeploymentOptions},
		{"pod_overrides", s.PodOverrides},
		{"env", strings.Join(env, " ")},
		{"image_probe", s.ImageProbe},
		{"skip_image_ready_check", fmt.Sprint(s.SkipImageCheck)},
		{"poll", fmt.Sprintf("every %s, up to %s", s.PollInterval, s.PollTimeout)},
		{"pod_name_style", s.PodNameStyle},
		{"delete_context", fmt.Sprint(s.DeleteContext)},
		{"global_selector", selector},
	}
}
