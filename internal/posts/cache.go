package posts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"git.home.luguber.info/inful/blogcontent/internal/logfields"
	"git.home.luguber.info/inful/blogcontent/internal/metrics"
)

// Cache memoizes a Loader's collection until the content directory changes.
//
// The directory signature (names, sizes and modification times of the post
// files and the summaries file) is recomputed on every call, so edits are
// picked up without a watcher. Posts returned from a Cache are shared between
// callers and must be treated as read-only.
type Cache struct {
	loader   *Loader
	logger   *slog.Logger
	recorder metrics.Recorder

	mu    sync.RWMutex
	posts []*Post
	sig   string
	valid bool
}

// NewCache wraps loader.
func NewCache(loader *Loader) *Cache {
	return &Cache{
		loader:   loader,
		logger:   loader.logger,
		recorder: loader.recorder,
	}
}

// LoadAll returns the cached collection, reloading when the directory changed.
func (c *Cache) LoadAll(ctx context.Context) ([]*Post, error) {
	sig, err := c.loader.Signature()
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	if c.valid && c.sig == sig {
		all := c.posts
		c.mu.RUnlock()
		c.recorder.IncCacheResult(true)
		return all, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.sig == sig {
		c.recorder.IncCacheResult(true)
		return c.posts, nil
	}

	c.recorder.IncCacheResult(false)
	all, err := c.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	c.posts, c.sig, c.valid = all, sig, true
	c.logger.Debug("Post cache refreshed", logfields.Cache("miss"), logfields.Count(len(all)))
	return all, nil
}

// Warm loads the collection into the cache.
func (c *Cache) Warm(ctx context.Context) error {
	_, err := c.LoadAll(ctx)
	return err
}

// Invalidate drops the cached collection; the next call reloads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.posts, c.sig, c.valid = nil, "", false
	c.mu.Unlock()
}

// Signature returns the signature of the cached collection, or "" when empty.
func (c *Cache) Signature() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return ""
	}
	return c.sig
}

// Get returns the cached post with id.
func (c *Cache) Get(ctx context.Context, id string) (*Post, error) { return Find(ctx, c, id) }

// IDs returns the ids of every cached post.
func (c *Cache) IDs(ctx context.Context) ([]string, error) { return IDs(ctx, c) }

// Tags counts cached posts per tag.
func (c *Cache) Tags(ctx context.Context) ([]TagCount, error) { return Tags(ctx, c) }

// Signature fingerprints the directory listing without reading file contents.
func (l *Loader) Signature() (string, error) {
	files, err := l.eligible()
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, f := range files {
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", f.name, f.size, f.modTime.UnixNano())
	}
	if info, statErr := fs.Stat(l.fsys, l.opts.SummariesFile); statErr == nil {
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", info.Name(), info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil))[:16], nil
}
