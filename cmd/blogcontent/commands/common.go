// Package commands implements the blogcontent CLI subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogcontent/internal/config"
	"git.home.luguber.info/inful/blogcontent/internal/markdown"
	"git.home.luguber.info/inful/blogcontent/internal/metrics"
	"git.home.luguber.info/inful/blogcontent/internal/posts"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	// Out receives command output; stdout when nil.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config     string           `short:"c" help:"Configuration file path" default:"blogcontent.yaml"`
	Verbose    bool             `short:"v" help:"Enable verbose logging"`
	ContentDir string           `name:"content-dir" help:"Content directory (overrides content.dir)" type:"path"`
	Version    kong.VersionFlag `name:"version" help:"Show version and exit"`

	List      ListCmd      `cmd:"" help:"List posts, newest first"`
	Show      ShowCmd      `cmd:"" help:"Print one post as JSON"`
	IDs       IDsCmd       `cmd:"" name:"ids" help:"Print every post id"`
	Tags      TagsCmd      `cmd:"" help:"Print tags with post counts"`
	Summaries SummariesCmd `cmd:"" help:"Report which posts resolve an external summary"`
	Serve     ServeCmd     `cmd:"" help:"Serve the posts as a read-only JSON API"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}

// LoadConfig reads the configuration, applies flag overrides and
// reconfigures logging from the logging section.
func (c *CLI) LoadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.ContentDir != "" {
		cfg.Content.Dir = c.ContentDir
	}
	if g != nil && g.Logger != nil {
		g.Logger = NewLogger(os.Stderr, cfg.Logging, c.Verbose)
		slog.SetDefault(g.Logger)
	}
	return cfg, nil
}

// NewLogger builds a slog logger for the logging section; verbose forces debug.
func NewLogger(w io.Writer, lc config.LoggingConfig, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.Level.SlogLevel()}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if lc.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewLoader builds a post loader over the configured content directory.
func NewLoader(cfg *config.Config, recorder metrics.Recorder, logger *slog.Logger) *posts.Loader {
	mode := markdown.ModeEscape
	if cfg.Content.TrustedHTML {
		mode = markdown.ModeTrusted
	}
	return posts.NewLoader(os.DirFS(cfg.Content.Dir), posts.Options{
		SummariesFile:  cfg.Content.SummariesFile,
		TemplatePrefix: cfg.Content.TemplatePrefix,
		ExcerptLength:  cfg.Content.ExcerptLength,
		Defaults: posts.Defaults{
			Author: cfg.Content.Defaults.Author,
			Avatar: cfg.Content.Defaults.Avatar,
			Bio:    cfg.Content.Defaults.Bio,
			Image:  cfg.Content.Defaults.Image,
		},
		Mode:     mode,
		Recorder: recorder,
		Logger:   logger,
	})
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
