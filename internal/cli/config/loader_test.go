package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ProjectIDEnv, "")
	t.Setenv(CredentialsEnv, "")
	chdirTemp(t)

	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultProjectID, cfg.ProjectID)
	assert.Equal(t, DefaultLocation, cfg.Location)
	assert.Equal(t, DefaultBackend, cfg.Backend)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultDatasets, cfg.Datasets)
	assert.Empty(t, cfg.CredentialsFile)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ProjectFromGCPEnv(t *testing.T) {
	t.Setenv(ProjectIDEnv, "my-analytics-project")
	chdirTemp(t)

	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, "my-analytics-project", cfg.ProjectID)
}

func TestLoad_QuarryEnvBeatsGCPEnv(t *testing.T) {
	t.Setenv(ProjectIDEnv, "from-gcp-var")
	t.Setenv("QUARRY_PROJECT_ID", "from-quarry-var")
	chdirTemp(t)

	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, "from-quarry-var", cfg.ProjectID)
}

func TestLoad_CredentialsFile(t *testing.T) {
	t.Setenv(CredentialsEnv, "/keys/sa.json")
	chdirTemp(t)

	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, "/keys/sa.json", cfg.CredentialsFile)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv(ProjectIDEnv, "")
	dir := chdirTemp(t)

	path := filepath.Join(dir, "quarry.yaml")
	content := "project_id: file-project\nlocation: eu\ndatasets:\n  - sales\n  - finance\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, "file-project", cfg.ProjectID)
	assert.Equal(t, "eu", cfg.Location)
	assert.Equal(t, []string{"sales", "finance"}, cfg.Datasets)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	chdirTemp(t)

	_, err := Load("nope.yaml", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoad_FlagsBeatEverything(t *testing.T) {
	t.Setenv("QUARRY_PROJECT_ID", "from-env")
	chdirTemp(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("project", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--project", "from-flag", "--verbose"}))

	cfg, err := Load("", flags)

	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.ProjectID)
	assert.True(t, cfg.Verbose)
}

func TestLoad_UnchangedFlagsIgnored(t *testing.T) {
	t.Setenv("QUARRY_PROJECT_ID", "from-env")
	chdirTemp(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("project", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ProjectID, "default flag values must not mask env vars")
}

// chdirTemp moves the test into an empty directory so a developer's own
// quarry.yaml cannot leak into assertions.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}
