// Package watch invalidates derived state when the content directory changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/blogcontent/internal/logfields"
)

// DefaultDebounce is the quiet period before a burst of events is reported.
const DefaultDebounce = 500 * time.Millisecond

// ContentWatcher monitors a content directory and reports settled changes to
// markdown files.
type ContentWatcher struct {
	dir          string
	onChange     func()
	watcher      *fsnotify.Watcher
	logger       *slog.Logger
	mu           sync.Mutex
	stopOnce     sync.Once
	stopChan     chan struct{}
	changeChan   chan struct{}
	debounceTime time.Duration
}

// New creates a watcher for dir. onChange runs once per debounced burst.
func New(dir string, debounce time.Duration, onChange func(), logger *slog.Logger) (*ContentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to resolve content path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ContentWatcher{
		dir:          absDir,
		onChange:     onChange,
		watcher:      watcher,
		logger:       logger,
		stopChan:     make(chan struct{}),
		changeChan:   make(chan struct{}, 1),
		debounceTime: debounce,
	}, nil
}

// Start begins monitoring the directory.
func (cw *ContentWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if err := cw.watcher.Add(cw.dir); err != nil {
		return fmt.Errorf("failed to watch content directory %s: %w", cw.dir, err)
	}

	cw.logger.Info("Starting content watcher", logfields.Dir(cw.dir))

	go cw.watchLoop(ctx)
	go cw.debounceLoop(ctx)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (cw *ContentWatcher) Stop() error {
	var err error
	cw.stopOnce.Do(func() {
		cw.logger.Info("Stopping content watcher", logfields.Dir(cw.dir))
		close(cw.stopChan)
		err = cw.watcher.Close()
	})
	return err
}

func (cw *ContentWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".md" {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				cw.logger.Debug("Content change detected",
					logfields.File(filepath.Base(event.Name)),
					slog.String("op", event.Op.String()))
				cw.trigger()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("Content watcher error", logfields.Error(err))
		}
	}
}

func (cw *ContentWatcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-cw.stopChan:
			stop()
			return
		case <-cw.changeChan:
			stop()
			timer = time.AfterFunc(cw.debounceTime, cw.onChange)
		}
	}
}

func (cw *ContentWatcher) trigger() {
	select {
	case cw.changeChan <- struct{}{}:
	default:
		// change already pending
	}
}
