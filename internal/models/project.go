package models

// Layer is one level of kship.yml: the file top level or a stage. Pointer
// fields distinguish "unset" from zero values so stages can override
// booleans back to false.
type Layer struct {
	App               string            `yaml:"app,omitempty"`
	Namespace         string            `yaml:"namespace,omitempty"`
	Context           string            `yaml:"context,omitempty"`
	ImageRepo         string            `yaml:"image_repo,omitempty"`
	ImageTag          string            `yaml:"image_tag,omitempty"`
	Branch            string            `yaml:"branch,omitempty"`
	MainBranch        string            `yaml:"main_branch,omitempty"`
	Remote            string            `yaml:"remote,omitempty"`
	Proxy             string            `yaml:"proxy,omitempty"`
	Env               map[string]string `yaml:"env,omitempty"`
	Filepaths         string            `yaml:"filepaths,omitempty"`
	DeploymentOptions string            `yaml:"deployment_options,omitempty"`
	PodOverrides      string            `yaml:"pod_overrides,omitempty"`
	SkipImageCheck    *bool             `yaml:"skip_image_ready_check,omitempty"`
	ImageProbe        string            `yaml:"image_probe,omitempty"`
	PollInterval      string            `yaml:"poll_interval,omitempty"`
	PollTimeout       string            `yaml:"poll_timeout,omitempty"`
	PodNameStyle      string            `yaml:"pod_name_style,omitempty"`
	DeleteContext     *bool             `yaml:"delete_context,omitempty"`
	GlobalSelector    *Selector         `yaml:"global_selector,omitempty"`
}

// Project is the content of kship.yml.
type Project struct {
	Layer  `yaml:",inline"`
	Stages map[string]Layer `yaml:"stages,omitempty"`
}
