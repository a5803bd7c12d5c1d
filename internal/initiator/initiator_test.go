package initiator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/kship/internal/config"
	"github.com/MrSnakeDoc/kship/internal/globalconfig"
	"github.com/MrSnakeDoc/kship/internal/logger"
	"github.com/MrSnakeDoc/kship/internal/models"
)

func TestExecute_WritesLoadableTemplate(t *testing.T) {
	logger.UseTestMode()
	dir := t.TempDir()

	path, err := New(dir).Execute()
	require.NoError(t, err)

	project, err := config.LoadProject(path)
	require.NoError(t, err)

	s, err := config.Resolve("staging", project)
	require.NoError(t, err)
	require.NoError(t, config.Validate(s))
	assert.Equal(t, "my-app-staging", s.Namespace)
}

func TestExecute_KeepsExistingFile(t *testing.T) {
	logger.UseTestMode()
	dir := t.TempDir()
	path := filepath.Join(dir, config.ProjectFile)
	require.NoError(t, os.WriteFile(path, []byte("namespace: mine\n"), 0o644))

	_, err := New(dir).Execute()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "namespace: mine\n", string(data))
}

func TestSaveUserDefaults_Merges(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := SaveUserDefaults(models.Layer{Proxy: "http://proxy:3128", Namespace: "ignored"})
	require.NoError(t, err)

	path, err := SaveUserDefaults(models.Layer{PodNameStyle: models.PodNameRandom})
	require.NoError(t, err)
	assert.FileExists(t, path)

	layer, err := globalconfig.LoadUserLayer()
	require.NoError(t, err)
	assert.Equal(t, "http://proxy:3128", layer.Proxy)
	assert.Equal(t, models.PodNameRandom, layer.PodNameStyle)
	assert.Empty(t, layer.Namespace)
}
