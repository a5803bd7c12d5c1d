package initiator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/kship/internal/config"
	"github.com/MrSnakeDoc/kship/internal/globalconfig"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/utils"
)

const template = `# kship settings. Stage values override the top level ones; flags and
# KSHIP_* variables override both.
app: my-app
image_repo: registry.example.com/my-app
main_branch: master
image_probe: docker
poll_interval: 5s
poll_timeout: 30m

stages:
  staging:
    namespace: my-app-staging
    context: staging
  production:
    namespace: my-app
    context: production
`

type Initiator struct {
	Dir string
}

func New(dir string) *Initiator {
	return &Initiator{Dir: dir}
}

// Execute writes a starter kship.yml, leaving an existing one alone.
func (i *Initiator) Execute() (string, error) {
	dir := i.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}

	path := filepath.Join(dir, config.ProjectFile)
	ok, err := utils.FileExists(path)
	if err != nil {
		return "", err
	}
	if ok {
		logger.Warn("%s already exists, leaving it untouched", path)
		return path, nil
	}

	if err := utils.WriteFile(path, []byte(template), 0o644); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	return path, nil
}

// SaveUserDefaults merges the operator level keys of l into
// ~/.config/kship/config.yml. Project keys (namespace, context, image...)
// are ignored since they belong to kship.yml.
func SaveUserDefaults(l models.Layer) (string, error) {
	current, err := globalconfig.LoadUserLayer()
	if err != nil {
		return "", err
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&current.Proxy, l.Proxy)
	set(&current.Remote, l.Remote)
	set(&current.MainBranch, l.MainBranch)
	set(&current.ImageProbe, l.ImageProbe)
	set(&current.PollTimeout, l.PollTimeout)
	set(&current.PodNameStyle, l.PodNameStyle)
	if l.SkipImageCheck != nil {
		current.SkipImageCheck = l.SkipImageCheck
	}

	return globalconfig.SaveUserLayer(current)
}
