package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Resolve reads so tests control exactly
// what is visible.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvBaseURL, EnvAPICode, EnvOutputDir, EnvTestMode, EnvLogDir, EnvSanitize} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestResolve_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "https://tax.example.com/api/")
	t.Setenv(EnvAPICode, "secret123")
	t.Setenv(EnvOutputDir, "/tmp/out")

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "https://tax.example.com/api/", cfg.BaseURL)
	assert.Equal(t, "secret123", cfg.APICode)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.False(t, cfg.TestMode)
	assert.False(t, cfg.SanitizeStrings)
	assert.Equal(t, DefaultLogDir, cfg.LogDir)
}

func TestResolve_CollectsAllMissingVars(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPICode, "secret123")

	_, err := Resolve("")
	require.Error(t, err)
	var missing *MissingVarsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{EnvBaseURL, EnvOutputDir}, missing.Vars)
	assert.Contains(t, err.Error(), "BASE_URL")
	assert.Contains(t, err.Error(), "OUTPUT_DIR")
	assert.NotContains(t, err.Error(), "API_CODE")
}

func TestResolve_TestModeGate(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "https://tax.example.com/")
	t.Setenv(EnvAPICode, "c")
	t.Setenv(EnvOutputDir, "out")

	t.Setenv(EnvTestMode, "true")
	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.True(t, cfg.TestMode)

	// Only the literal "true" enables test mode.
	for _, v := range []string{"TRUE", "1", "yes", "false", ""} {
		t.Setenv(EnvTestMode, v)
		cfg, err = Resolve("")
		require.NoError(t, err)
		assert.False(t, cfg.TestMode, "TEST_MODE=%q", v)
	}
}

func TestResolve_ConfigFileFallback(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "tax-tool.yaml")
	fileYAML := `
base_url: https://file.example.com/
api_code: file-code
output_dir: file-out
test_mode: true
log_dir: file-logs
sanitize_strings: true
`
	require.NoError(t, os.WriteFile(path, []byte(fileYAML), 0o644))

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com/", cfg.BaseURL)
	assert.Equal(t, "file-code", cfg.APICode)
	assert.Equal(t, "file-out", cfg.OutputDir)
	assert.True(t, cfg.TestMode)
	assert.True(t, cfg.SanitizeStrings)
	assert.Equal(t, "file-logs", cfg.LogDir)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "tax-tool.yaml")
	fileYAML := `
base_url: https://file.example.com/
api_code: file-code
output_dir: file-out
test_mode: true
`
	require.NoError(t, os.WriteFile(path, []byte(fileYAML), 0o644))

	t.Setenv(EnvBaseURL, "https://env.example.com/")
	t.Setenv(EnvTestMode, "false")

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/", cfg.BaseURL)
	assert.Equal(t, "file-code", cfg.APICode)
	assert.False(t, cfg.TestMode, "explicit env TEST_MODE=false beats file true")
}

func TestResolve_ConfigFileErrors(t *testing.T) {
	clearEnv(t)

	t.Run("File Not Found", func(t *testing.T) {
		_, err := Resolve("nonexistent_tax_tool_config.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("Invalid YAML Syntax", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("base_url: [unclosed"), 0o644))
		_, err := Resolve(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse YAML")
	})
}
