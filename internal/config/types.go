package config

// Config holds the runtime configuration for one invocation. It is
// resolved once at startup and passed to every component that needs it.
type Config struct {
	// BaseURL is the trailing-slash-terminated base of the tax API.
	BaseURL string
	// APICode is the opaque token appended as ?code= to calculate calls.
	APICode string
	// OutputDir is where response artifacts are written.
	OutputDir string
	// TestMode redirects calculate requests to the sandbox endpoint.
	TestMode bool
	// LogDir is where daily error logs are written.
	LogDir string
	// SanitizeStrings enables apostrophe escaping of payload string values.
	SanitizeStrings bool
}

// fileConfig mirrors the optional YAML configuration file. Environment
// variables take precedence over every field.
type fileConfig struct {
	BaseURL         string `yaml:"base_url"`
	APICode         string `yaml:"api_code"`
	OutputDir       string `yaml:"output_dir"`
	TestMode        *bool  `yaml:"test_mode,omitempty"`
	LogDir          string `yaml:"log_dir,omitempty"`
	SanitizeStrings *bool  `yaml:"sanitize_strings,omitempty"`
}
