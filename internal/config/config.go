// Package config defines process configuration and its layered loader.
//
// Conventions:
// - Defaults live in New(); the loader only overrides.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the root of the backend that serves /api/clientes.
	APIBaseURL string `koanf:"api_base_url"`

	// APITimeoutMS bounds each backend call. Zero disables the timeout.
	APITimeoutMS int `koanf:"api_timeout_ms"`

	// ReturnPath is where the browser lands after the edit session closes.
	ReturnPath string `koanf:"return_path"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":8080",
		APIBaseURL:   "http://localhost:3000",
		APITimeoutMS: 10_000,
		ReturnPath:   "/expertos",
	}
}
