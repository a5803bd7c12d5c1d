package middleware

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MrSnakeDoc/kship/internal/config"
	"github.com/MrSnakeDoc/kship/internal/globalconfig"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/utils/pathutils"
)

// LoadSettings resolves defaults, ~/.config/kship, kship.yml, the stage,
// KSHIP_* variables and flags into one models.Settings stored in the
// command context.
func LoadSettings(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	path, err := pathutils.ToAbsolutePath(path)
	if err != nil {
		return err
	}

	project, err := config.LoadProject(path)
	if err != nil {
		return err
	}

	user, err := globalconfig.LoadUserLayer()
	if err != nil {
		return err
	}

	stage, _ := flags.GetString("stage")
	s, err := config.ResolveWithUser(stage, user, project, config.EnvLayer(nil), FlagLayer(flags))
	if err != nil {
		return err
	}
	if project.Stages != nil && stage == "" {
		logger.Debug("no --stage given, using top level settings of %s", path)
	}

	ctx := context.WithValue(cmd.Context(), CtxKeySettings, s)
	cmd.SetContext(ctx)

	return next(cmd, args)
}

// RequireValidSettings refuses to run cluster tasks with incomplete settings.
func RequireValidSettings(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	s, err := Get[*models.Settings](cmd, CtxKeySettings)
	if err != nil {
		return err
	}
	if err := config.Validate(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return next(cmd, args)
}

// FlagLayer keeps only the flags the operator actually set.
func FlagLayer(flags *pflag.FlagSet) models.Layer {
	var l models.Layer

	str := func(name string, dst *string) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	str("app", &l.App)
	str("namespace", &l.Namespace)
	str("context", &l.Context)
	str("image-repo", &l.ImageRepo)
	str("image-tag", &l.ImageTag)
	str("branch", &l.Branch)
	str("main-branch", &l.MainBranch)
	str("proxy", &l.Proxy)
	str("filepaths", &l.Filepaths)
	str("deployment-options", &l.DeploymentOptions)
	str("overrides", &l.PodOverrides)
	str("probe", &l.ImageProbe)
	str("poll-timeout", &l.PollTimeout)
	str("pod-name-style", &l.PodNameStyle)

	if f := flags.Lookup("skip-image-check"); f != nil && f.Changed {
		v, _ := flags.GetBool("skip-image-check")
		l.SkipImageCheck = &v
	}
	if f := flags.Lookup("delete-context"); f != nil && f.Changed {
		v, _ := flags.GetBool("delete-context")
		l.DeleteContext = &v
	}
	if f := flags.Lookup("env"); f != nil && f.Changed {
		l.Env, _ = flags.GetStringToString("env")
	}

	return l
}
