package posts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
	"git.home.luguber.info/inful/blogcontent/internal/logfields"
	"git.home.luguber.info/inful/blogcontent/internal/markdown"
	"git.home.luguber.info/inful/blogcontent/internal/metrics"
	"git.home.luguber.info/inful/blogcontent/internal/summaries"
)

// Source yields the full post collection.
type Source interface {
	LoadAll(ctx context.Context) ([]*Post, error)
}

// Loader reads posts from the root of a filesystem. Every call re-reads the
// directory; a Loader holds no state between loads.
type Loader struct {
	fsys      fs.FS
	opts      Options
	formatter *markdown.Formatter
	logger    *slog.Logger
	recorder  metrics.Recorder
}

// NewLoader constructs a Loader over fsys.
func NewLoader(fsys fs.FS, opts Options) *Loader {
	opts = opts.withDefaults()
	return &Loader{
		fsys:      fsys,
		opts:      opts,
		formatter: markdown.NewFormatter(opts.Mode),
		logger:    opts.Logger,
		recorder:  opts.Recorder,
	}
}

// Options returns the effective options after defaults were applied.
func (l *Loader) Options() Options { return l.opts }

// FS returns the filesystem posts are read from.
func (l *Loader) FS() fs.FS { return l.fsys }

type sourceFile struct {
	name    string
	modTime time.Time
	size    int64
}

// eligible lists post files in lexical order.
func (l *Loader) eligible() ([]sourceFile, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read content directory").
			Retryable().
			Build()
	}

	files := make([]sourceFile, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !l.isPostFile(name) {
			continue
		}
		f := sourceFile{name: name}
		if info, infoErr := e.Info(); infoErr == nil {
			f.modTime = info.ModTime()
			f.size = info.Size()
		}
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b sourceFile) int { return strings.Compare(a.name, b.name) })
	return files, nil
}

func (l *Loader) isPostFile(name string) bool {
	if path.Ext(name) != ".md" {
		return false
	}
	if name == l.opts.SummariesFile {
		return false
	}
	return !strings.HasPrefix(name, l.opts.TemplatePrefix)
}

// LoadAll reads, parses and links every post. Per-file failures produce
// placeholder posts; only an unreadable directory or cancellation fails
// the call.
func (l *Loader) LoadAll(ctx context.Context) ([]*Post, error) {
	start := time.Now()
	all, err := l.loadAll(ctx)
	l.recorder.ObserveLoadDuration(time.Since(start))

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		l.recorder.IncLoadOutcome(metrics.LoadCanceled)
		return nil, err
	case err != nil:
		l.recorder.IncLoadOutcome(metrics.LoadFailed)
		return nil, err
	}

	placeholders := 0
	for _, p := range all {
		if p.IsPlaceholder() {
			placeholders++
		}
	}
	if placeholders > 0 {
		l.recorder.IncLoadOutcome(metrics.LoadDegraded)
	} else {
		l.recorder.IncLoadOutcome(metrics.LoadSuccess)
	}
	l.recorder.SetPostCount(len(all))

	l.logger.Debug("Loaded posts",
		logfields.Count(len(all)),
		logfields.Placeholders(placeholders),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return all, nil
}

func (l *Loader) loadAll(ctx context.Context) ([]*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := l.eligible()
	if err != nil {
		return nil, err
	}

	idx, err := summaries.Load(l.fsys, l.opts.SummariesFile)
	if err != nil {
		l.logger.Warn("Failed to read summaries file, continuing without it",
			logfields.File(l.opts.SummariesFile), logfields.Error(err))
		idx = summaries.Empty()
	}

	all := make([]*Post, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		all = append(all, l.loadFile(f, idx))
	}

	assignIDs(all, l.logger)
	link(all)
	return all, nil
}

// loadFile never fails: read errors and panics while parsing yield a placeholder.
func (l *Loader) loadFile(f sourceFile, idx *summaries.Index) (p *Post) {
	defer func() {
		if r := recover(); r != nil {
			p = l.placeholder(f, fmt.Errorf("panic while parsing: %v", r))
		}
	}()

	data, err := fs.ReadFile(l.fsys, f.name)
	if err != nil {
		return l.placeholder(f, err)
	}
	return l.assemble(f, data, idx)
}

func (l *Loader) placeholder(f sourceFile, cause error) *Post {
	l.recorder.IncPlaceholder()
	l.logger.Warn("Failed to load post, using placeholder",
		logfields.File(f.name), logfields.Error(cause))
	return newPlaceholder(f, l.opts)
}

// Get loads the collection and returns the post with id.
func (l *Loader) Get(ctx context.Context, id string) (*Post, error) {
	return Find(ctx, l, id)
}

// Find loads src and returns the post with id.
func Find(ctx context.Context, src Source, id string) (*Post, error) {
	all, err := src.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ferrors.NotFoundError("post not found").
		WithContext("post_id", id).
		Build()
}

// IDs returns the ids of every post, newest first.
func IDs(ctx context.Context, src Source) ([]string, error) {
	all, err := src.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, p := range all {
		ids[i] = p.ID
	}
	return ids, nil
}

// Tags counts posts per tag, most used first and alphabetical on ties.
func Tags(ctx context.Context, src Source) ([]TagCount, error) {
	all, err := src.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, p := range all {
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TagCount{Tag: t, Count: n})
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Tag, b.Tag)
	})
	return out, nil
}

// IDs returns the ids of every post, newest first.
func (l *Loader) IDs(ctx context.Context) ([]string, error) { return IDs(ctx, l) }

// Tags counts posts per tag.
func (l *Loader) Tags(ctx context.Context) ([]TagCount, error) { return Tags(ctx, l) }
