package config

import (
	"time"

	"github.com/MrSnakeDoc/kship/internal/models"
)

const (
	ProjectFile = "kship.yml"

	DefaultMainBranch   = "master"
	DefaultRemote       = "origin"
	DefaultPollInterval = 5 * time.Second
	DefaultPollTimeout  = 30 * time.Minute
)

// DefaultSettings holds the built-in values every other layer overrides.
func DefaultSettings() models.Settings {
	return models.Settings{
		MainBranch:   DefaultMainBranch,
		Remote:       DefaultRemote,
		ImageProbe:   models.ProbeDocker,
		PollInterval: DefaultPollInterval,
		PollTimeout:  DefaultPollTimeout,
		PodNameStyle: models.PodNameIdentity,
		Env:          map[string]string{},
	}
}
