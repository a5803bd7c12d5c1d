package globalconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/kship/internal/models"
	"github.com/MrSnakeDoc/kship/internal/utils"
)

const (
	configDir  = ".config/kship"
	configFile = "config.yml"
)

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

func UserConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// LoadUserLayer reads the operator's own defaults (proxy, pod naming...)
// from ~/.config/kship/config.yml. A missing file is not an error.
func LoadUserLayer() (models.Layer, error) {
	path, err := UserConfigPath()
	if err != nil {
		return models.Layer{}, err
	}
	return LoadLayer(path)
}

func LoadLayer(path string) (models.Layer, error) {
	var layer models.Layer

	ok, err := utils.FileExists(path)
	if err != nil || !ok {
		return layer, err
	}

	if err := utils.ReadYAML(path, &layer); err != nil {
		return models.Layer{}, fmt.Errorf("failed to load config file: %w", err)
	}
	return layer, nil
}

// SaveUserLayer writes the operator defaults, creating the directory.
func SaveUserLayer(layer models.Layer) (string, error) {
	path, err := UserConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.WriteYAML(path, layer, 0o644); err != nil {
		return "", fmt.Errorf("failed to save config: %w", err)
	}
	return path, nil
}
