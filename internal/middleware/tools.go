package middleware

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/models"
)

// LookPath is swapped in tests.
var LookPath = exec.LookPath

// RequireTools stops early when an external CLI the command shells out to
// is not installed.
func RequireTools(tools ...string) MiddlewareFunc {
	return func(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
		if err := lookTools(tools...); err != nil {
			return err
		}
		return next(cmd, args)
	}
}

// RequireImageProbe checks for the docker CLI when the resolved settings
// poll the image through it. It must run after LoadSettings.
func RequireImageProbe(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	s, err := Get[*models.Settings](cmd, CtxKeySettings)
	if err != nil {
		return err
	}
	if !s.SkipImageCheck && s.ImageProbe == models.ProbeDocker {
		if err := lookTools("docker"); err != nil {
			return err
		}
	}
	return next(cmd, args)
}

func lookTools(tools ...string) error {
	var missing []string
	for _, t := range tools {
		if _, err := LookPath(t); err != nil {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	logger.LogError("Required tools not found in PATH: %s", strings.Join(missing, ", "))
	logger.Warn("kship shells out to git, kubectl, krane and docker (or use image_probe: registry); install them first.")
	return fmt.Errorf("%w: missing %s", ErrLogged, strings.Join(missing, ", "))
}
