package models

import "time"

// Probe kinds for the image readiness check.
const (
	ProbeDocker   = "docker"
	ProbeRegistry = "registry"
)

// Pod name styles.
const (
	PodNameIdentity = "identity"
	PodNameRandom   = "random"
)

// Selector restricts a global deploy to labelled resources.
type Selector struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Settings is the fully resolved configuration one task runs with. It is
// built once at startup and never mutated by the tasks, except for the
// branch and image tag which the branch resolver fills in.
type Settings struct {
	App               string            `yaml:"app,omitempty"`
	Stage             string            `yaml:"stage,omitempty"`
	Namespace         string            `yaml:"namespace"`
	Context           string            `yaml:"context"`
	ImageRepo         string            `yaml:"image_repo"`
	ImageTag          string            `yaml:"image_tag,omitempty"`
	Branch            string            `yaml:"branch,omitempty"`
	MainBranch        string            `yaml:"main_branch"`
	Remote            string            `yaml:"remote"`
	Proxy             string            `yaml:"proxy,omitempty"`
	Env               map[string]string `yaml:"env,omitempty"`
	Filepaths         string            `yaml:"filepaths,omitempty"`
	DeploymentOptions string            `yaml:"deployment_options,omitempty"`
	PodOverrides      string            `yaml:"pod_overrides,omitempty"`
	SkipImageCheck    bool              `yaml:"skip_image_ready_check,omitempty"`
	ImageProbe        string            `yaml:"image_probe"`
	PollInterval      time.Duration     `yaml:"poll_interval"`
	PollTimeout       time.Duration     `yaml:"poll_timeout"`
	PodNameStyle      string            `yaml:"pod_name_style"`
	DeleteContext     bool              `yaml:"delete_context,omitempty"`
	GlobalSelector    Selector          `yaml:"global_selector,omitempty"`
}

// ManifestPath is where krane reads templates from: the explicit path, or
// config/deploy/<stage>.
func (s *Settings) ManifestPath() string {
	if s.Filepaths != "" {
		return s.Filepaths
	}
	return "config/deploy/" + s.Stage
}

// Image is the fully qualified image reference for the resolved tag.
func (s *Settings) Image() string {
	return s.ImageRepo + ":" + s.ImageTag
}
