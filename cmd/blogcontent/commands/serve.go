package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogcontent/internal/config"
	"git.home.luguber.info/inful/blogcontent/internal/logfields"
	"git.home.luguber.info/inful/blogcontent/internal/metrics"
	"git.home.luguber.info/inful/blogcontent/internal/posts"
	"git.home.luguber.info/inful/blogcontent/internal/refresh"
	"git.home.luguber.info/inful/blogcontent/internal/retry"
	"git.home.luguber.info/inful/blogcontent/internal/server/httpserver"
	"git.home.luguber.info/inful/blogcontent/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides serve.addr)"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Serve.Addr = s.Addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunServe(ctx, cfg, g.logger())
}

// RunServe serves cfg until ctx is done.
func RunServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		registry *prom.Registry
	)
	if cfg.Metrics.Enabled {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	loader := NewLoader(cfg, recorder, logger)
	var source posts.Source = loader

	if cfg.Cache.Enabled {
		cache := posts.NewCache(loader)
		source = cache
		if err := cache.Warm(ctx); err != nil {
			return err
		}

		if cfg.Cache.Watch {
			w, err := watch.New(cfg.Content.Dir, watch.DefaultDebounce, cache.Invalidate, logger)
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				_ = w.Stop()
				return err
			}
			defer func() { _ = w.Stop() }()
		}

		if cfg.Serve.RefreshInterval > 0 {
			sched, err := refresh.NewScheduler(cache, logger)
			if err != nil {
				return err
			}
			sched.WithRetry(retry.NewPolicy(retry.BackoffLinear, 0, 0, cfg.Serve.RefreshRetries))
			if _, err := sched.ScheduleRefresh(cfg.Serve.RefreshInterval); err != nil {
				return err
			}
			sched.Start()
			defer func() {
				if err := sched.Stop(); err != nil {
					logger.Warn("Failed to stop refresh scheduler", logfields.Error(err))
				}
			}()
		}
	}

	srv := httpserver.New(httpserver.Options{
		Addr:     cfg.Serve.Addr,
		Source:   source,
		Registry: registry,
		Logger:   logger,
	})
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping server...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := srv.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	return nil
}
