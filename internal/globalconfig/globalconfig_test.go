package globalconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/kship/internal/models"
)

func TestUserLayerRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	layer, err := LoadUserLayer()
	require.NoError(t, err)
	assert.Empty(t, layer.Proxy)

	path, err := SaveUserLayer(models.Layer{Proxy: "http://proxy:3128", PodNameStyle: models.PodNameRandom})
	require.NoError(t, err)
	assert.FileExists(t, path)

	layer, err = LoadUserLayer()
	require.NoError(t, err)
	assert.Equal(t, "http://proxy:3128", layer.Proxy)
	assert.Equal(t, models.PodNameRandom, layer.PodNameStyle)
}

func TestLoadLayer_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, writeFile(path, "proxy: [unterminated"))

	_, err := LoadLayer(path)
	assert.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
