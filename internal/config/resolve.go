package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tax-tool/internal/util"
)

// Environment variable names recognized by Resolve.
const (
	EnvBaseURL   = "BASE_URL"
	EnvAPICode   = "API_CODE"
	EnvOutputDir = "OUTPUT_DIR"
	EnvTestMode  = "TEST_MODE"
	EnvLogDir    = "LOG_DIR"
	EnvSanitize  = "SANITIZE_STRINGS"
)

// DefaultLogDir is used when neither LOG_DIR nor the config file set one.
const DefaultLogDir = "logs"

// MissingVarsError reports every required configuration value that could
// not be resolved, not just the first one.
type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Vars, ", "))
}

// Resolve builds the runtime configuration. The optional YAML file at
// configFile (skipped when empty) provides defaults; environment
// variables override it. All missing required values are collected into
// a single MissingVarsError.
func Resolve(configFile string) (Config, error) {
	var fc fileConfig
	if configFile != "" {
		fileBytes, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file '%s': %w", configFile, err)
		}
		if err := yaml.Unmarshal(fileBytes, &fc); err != nil {
			return Config{}, fmt.Errorf("failed to parse YAML in '%s': %w", configFile, err)
		}
	}

	cfg := Config{
		BaseURL:   stringVal(EnvBaseURL, fc.BaseURL),
		APICode:   stringVal(EnvAPICode, fc.APICode),
		OutputDir: stringVal(EnvOutputDir, fc.OutputDir),
		TestMode:  boolVal(EnvTestMode, fc.TestMode),
		LogDir:    stringVal(EnvLogDir, fc.LogDir),
	}
	cfg.SanitizeStrings = boolVal(EnvSanitize, fc.SanitizeStrings)
	if cfg.LogDir == "" {
		cfg.LogDir = DefaultLogDir
	}

	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, EnvBaseURL)
	}
	if cfg.APICode == "" {
		missing = append(missing, EnvAPICode)
	}
	if cfg.OutputDir == "" {
		missing = append(missing, EnvOutputDir)
	}
	if len(missing) > 0 {
		return Config{}, &MissingVarsError{Vars: missing}
	}
	return cfg, nil
}

// stringVal returns the environment value when set, otherwise the file
// fallback. File values may themselves reference environment variables.
func stringVal(envKey, fileVal string) string {
	if v, ok := os.LookupEnv(envKey); ok && v != "" {
		return v
	}
	return util.ExpandEnv(fileVal)
}

// boolVal treats the literal string "true" as true and anything else as
// false, matching the TEST_MODE contract.
func boolVal(envKey string, fileVal *bool) bool {
	if v, ok := os.LookupEnv(envKey); ok {
		return v == "true"
	}
	return fileVal != nil && *fileVal
}
