package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigKeepsMissingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[query]\nresult_limit = 5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Query.ResultLimit)
	assert.Equal(t, DefaultConfig().Query.MaxDistanceLimit, cfg.Query.MaxDistanceLimit)
	assert.True(t, cfg.Compile.WriteManifest)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	// result_limit has the wrong type, so the typed decode fails; the rest survives.
	data := `
[query]
max_distance_limit = 2
result_limit = "ten"

[compile]
verify = true

[server]
max_word_len = 32
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Query.MaxDistanceLimit)
	assert.Equal(t, DefaultConfig().Query.ResultLimit, cfg.Query.ResultLimit)
	assert.True(t, cfg.Compile.Verify)
	assert.Equal(t, 32, cfg.Server.MaxWordLen)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[[[ not toml"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	want := DefaultConfig()
	want.Query.ResultLimit = 9
	require.NoError(t, SaveConfig(want, path))

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, want, cfg)
}
