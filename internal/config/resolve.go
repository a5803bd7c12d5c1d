package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/utils"
)

var ErrUnknownStage = errors.New("unknown stage")

// LoadProject reads kship.yml. A missing file yields an empty project so
// everything can come from flags.
func LoadProject(path string) (*models.Project, error) {
	var project models.Project

	ok, err := utils.FileExists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &project, nil
	}

	if err := utils.ReadYAML(path, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Resolve stacks the project, its stage and then layers in order (later
// wins) on top of the defaults.
func Resolve(stage string, project *models.Project, layers ...models.Layer) (*models.Settings, error) {
	return ResolveWithUser(stage, models.Layer{}, project, layers...)
}

// ResolveWithUser is Resolve with the operator's personal layer applied
// between the defaults and the project.
func ResolveWithUser(stage string, user models.Layer, project *models.Project, layers ...models.Layer) (*models.Settings, error) {
	s := DefaultSettings()
	s.Stage = stage

	stack := make([]models.Layer, 0, len(layers)+3)
	stack = append(stack, user)
	if project != nil {
		stack = append(stack, project.Layer)
		if stage != "" {
			sl, ok := project.Stages[stage]
			if !ok && len(project.Stages) > 0 {
				return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownStage, stage, strings.Join(utils.SortedKeys(project.Stages), ", "))
			}
			stack = append(stack, sl)
		}
	}
	stack = append(stack, layers...)

	for _, l := range stack {
		if err := merge(&s, l); err != nil {
			return nil, err
		}
	}

	return &s, nil
}

// EnvLayer reads the KSHIP_* overrides.
func EnvLayer(getenv func(string) string) models.Layer {
	if getenv == nil {
		getenv = os.Getenv
	}
	return models.Layer{
		Namespace: getenv("KSHIP_NAMESPACE"),
		Context:   getenv("KSHIP_CONTEXT"),
		ImageTag:  getenv("KSHIP_IMAGE_TAG"),
		Branch:    getenv("KSHIP_BRANCH"),
		Proxy:     getenv("KSHIP_PROXY"),
	}
}

func merge(s *models.Settings, l models.Layer) error {
	setString(&s.App, l.App)
	setString(&s.Namespace, l.Namespace)
	setString(&s.Context, l.Context)
	setString(&s.ImageRepo, l.ImageRepo)
	setString(&s.ImageTag, l.ImageTag)
	setString(&s.Branch, l.Branch)
	setString(&s.MainBranch, l.MainBranch)
	setString(&s.Remote, l.Remote)
	setString(&s.Proxy, l.Proxy)
	setString(&s.Filepaths, l.Filepaths)
	setString(&s.DeploymentOptions, l.DeploymentOptions)
	setString(&s.PodOverrides, l.PodOverrides)
	setString(&s.ImageProbe, l.ImageProbe)
	setString(&s.PodNameStyle, l.PodNameStyle)

	if l.SkipImageCheck != nil {
		s.SkipImageCheck = *l.SkipImageCheck
	}
	if l.DeleteContext != nil {
		s.DeleteContext = *l.DeleteContext
	}
	if l.GlobalSelector != nil {
		s.GlobalSelector = *l.GlobalSelector
	}

	for k, v := range l.Env {
		if s.Env == nil {
			s.Env = map[string]string{}
		}
		s.Env[k] = v
	}

	if err := setDuration(&s.PollInterval, l.PollInterval, "poll_interval"); err != nil {
		return err
	}
	return setDuration(&s.PollTimeout, l.PollTimeout, "poll_timeout")
}

// Validate checks what every cluster task needs.
func Validate(s *models.Settings) error {
	var missing []string
	if s.Namespace == "" {
		missing = append(missing, "namespace")
	}
	if s.Context == "" {
		missing = append(missing, "context")
	}
	if s.ImageRepo == "" {
		missing = append(missing, "image_repo")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s (set them in %s or with flags)", strings.Join(missing, ", "), ProjectFile)
	}

	if s.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", s.PollInterval)
	}
	if s.PollTimeout < s.PollInterval {
		return fmt.Errorf("poll_timeout (%s) must not be shorter than poll_interval (%s)", s.PollTimeout, s.PollInterval)
	}

	switch s.ImageProbe {
	case models.ProbeDocker, models.ProbeRegistry:
	default:
		return fmt.Errorf("image_probe must be %q or %q, got %q", models.ProbeDocker, models.ProbeRegistry, s.ImageProbe)
	}

	switch s.PodNameStyle {
	case models.PodNameIdentity, models.PodNameRandom:
	default:
		return fmt.Errorf("pod_name_style must be %q or %q, got %q", models.PodNameIdentity, models.PodNameRandom, s.PodNameStyle)
	}

	if s.PodOverrides != "" {
		var obj map[string]any
		if err := json.Unmarshal([]byte(s.PodOverrides), &obj); err != nil {
			return fmt.Errorf("pod_overrides must be a JSON object: %w", err)
		}
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v, key string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
