package config

import (
	ferrors "git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
)

// Validate checks cfg after defaults were applied and normalizes log settings.
func Validate(cfg *Config) error {
	if cfg.Content.Dir == "" {
		return invalid("content.dir must not be empty", "content.dir", cfg.Content.Dir)
	}
	if cfg.Content.ExcerptLength < 0 {
		return invalid("content.excerpt_length must be positive", "content.excerpt_length", cfg.Content.ExcerptLength)
	}
	if cfg.Cache.Watch && !cfg.Cache.Enabled {
		return invalid("cache.watch requires cache.enabled", "cache.watch", cfg.Cache.Watch)
	}
	if cfg.Serve.RefreshInterval < 0 {
		return invalid("serve.refresh_interval must not be negative", "serve.refresh_interval", cfg.Serve.RefreshInterval.String())
	}
	if cfg.Serve.RefreshRetries < 0 {
		return invalid("serve.refresh_retries must not be negative", "serve.refresh_retries", cfg.Serve.RefreshRetries)
	}
	if cfg.Serve.RefreshInterval > 0 && !cfg.Cache.Enabled {
		return invalid("serve.refresh_interval requires cache.enabled", "serve.refresh_interval", cfg.Serve.RefreshInterval.String())
	}

	level, ok := NormalizeLogLevel(string(cfg.Logging.Level))
	if !ok {
		return invalid("logging.level must be one of debug, info, warn, error", "logging.level", cfg.Logging.Level)
	}
	cfg.Logging.Level = level

	format, ok := NormalizeLogFormat(string(cfg.Logging.Format))
	if !ok {
		return invalid("logging.format must be text or json", "logging.format", cfg.Logging.Format)
	}
	cfg.Logging.Format = format
	return nil
}

func invalid(msg, field string, value any) error {
	return ferrors.ConfigError(msg).
		WithContext("field", field).
		WithContext("value", value).
		Build()
}
