// Package config loads blogcontent settings from a YAML file with
// ${VAR} expansion and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "blogcontent.yaml"

// Config represents the application configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Cache   CacheConfig   `yaml:"cache"`
	Serve   ServeConfig   `yaml:"serve"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ContentConfig locates the posts and controls how they are parsed.
type ContentConfig struct {
	Dir            string         `yaml:"dir"`
	SummariesFile  string         `yaml:"summaries_file"`
	TemplatePrefix string         `yaml:"template_prefix"`
	TrustedHTML    bool           `yaml:"trusted_html"` // pass inline HTML through unescaped
	ExcerptLength  int            `yaml:"excerpt_length"`
	Defaults       DefaultsConfig `yaml:"defaults"`
}

// DefaultsConfig holds fallbacks for headers that omit author or image fields.
type DefaultsConfig struct {
	Author string `yaml:"author"`
	Avatar string `yaml:"avatar"`
	Bio    string `yaml:"bio"`
	Image  string `yaml:"image"`
}

// CacheConfig enables the in-memory post cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Watch   bool `yaml:"watch"` // invalidate on filesystem events
}

// ServeConfig configures the read-only HTTP API.
type ServeConfig struct {
	Addr            string        `yaml:"addr"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	RefreshRetries  int           `yaml:"refresh_retries"` // linear backoff on retryable failures
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig toggles Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load loads configuration from configPath. A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	var cfg Config
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	default:
		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
				WithContext("path", configPath).
				Fatal().
				UserAction().
				Build()
		}
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Init writes an example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			Build()
	}

	example := Default()
	example.Cache.Enabled = true
	example.Cache.Watch = true
	example.Serve.RefreshInterval = 10 * time.Minute
	example.Serve.RefreshRetries = 2

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
