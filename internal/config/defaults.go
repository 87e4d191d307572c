package config

const (
	defaultContentDir     = "_posts"
	defaultSummariesFile  = "summaries.md"
	defaultTemplatePrefix = "_template"
	defaultExcerptLength  = 150
	defaultAddr           = ":8080"
)

func applyDefaults(cfg *Config) {
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = defaultContentDir
	}
	if cfg.Content.SummariesFile == "" {
		cfg.Content.SummariesFile = defaultSummariesFile
	}
	if cfg.Content.TemplatePrefix == "" {
		cfg.Content.TemplatePrefix = defaultTemplatePrefix
	}
	if cfg.Content.ExcerptLength == 0 {
		cfg.Content.ExcerptLength = defaultExcerptLength
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = defaultAddr
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
