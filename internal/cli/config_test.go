package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bware/jimpl/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, []string{"."}, config.SourcePath)
	assert.Equal(t, "javac", config.Javac)
	assert.False(t, config.Verbose)
	assert.False(t, config.Quiet)
}

func TestLoadConfigFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "jimpl_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "jimpl.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
sourcepath = ["src/main/java", "src/test/java"]
javac = "/opt/jdk/bin/javac"
verbose = true
`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main/java", "src/test/java"}, config.SourcePath)
	assert.Equal(t, "/opt/jdk/bin/javac", config.Javac)
	assert.True(t, config.Verbose)
	assert.False(t, config.Quiet)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	dir, err := os.MkdirTemp("", "jimpl_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(path, []byte(`verbose = true`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, config.SourcePath)
	assert.Equal(t, "javac", config.Javac)
	assert.True(t, config.Verbose)
}

func TestLoadConfigExplicitMissingFileFails(t *testing.T) {
	_, err := LoadConfig("/nonexistent/jimpl.toml")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestLoadConfigImplicitMissingFileIsFine(t *testing.T) {
	dir, err := os.MkdirTemp("", "jimpl_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	dir, err := os.MkdirTemp("", "jimpl_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("sourcepath = [unclosed"), 0644))

	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}
