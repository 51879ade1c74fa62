package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	wsFile := filepath.Join(dir, "ws.json")
	cfgPath := filepath.Join(dir, "config.yml")
	content := "workspace:\n  store_path: " + wsFile + "\n  debounce_ms: 120\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	t.Setenv(configEnv, cfgPath)

	path, err := storePath()
	require.NoError(t, err)
	assert.Equal(t, wsFile, path)
	assert.Equal(t, 120*time.Millisecond, editorDelay())
}

func TestWorkspaceConfigMissingFileFallsBack(t *testing.T) {
	t.Setenv(configEnv, filepath.Join(t.TempDir(), "missing.yml"))

	path, err := storePath()
	require.NoError(t, err)
	assert.Equal(t, "collections.json", filepath.Base(path))
	assert.Equal(t, time.Duration(0), editorDelay())
}

func TestWorkspaceConfigCorruptFileFallsBack(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("workspace: [broken"), 0o644))
	t.Setenv(configEnv, cfgPath)

	path, err := storePath()
	require.NoError(t, err)
	assert.Equal(t, "collections.json", filepath.Base(path))
}
