package posts

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogcontent/internal/metrics"
)

type countingRecorder struct {
	metrics.NoopRecorder
	hits, misses, placeholders atomic.Int64
}

func (c *countingRecorder) IncCacheResult(hit bool) {
	if hit {
		c.hits.Add(1)
		return
	}
	c.misses.Add(1)
}

func (c *countingRecorder) IncPlaceholder() { c.placeholders.Add(1) }

func TestCache_HitUntilDirectoryChanges(t *testing.T) {
	fsys := datedFixture()
	rec := &countingRecorder{}
	cache := NewCache(NewLoader(fsys, Options{Recorder: rec}))
	ctx := context.Background()

	first, err := cache.LoadAll(ctx)
	require.NoError(t, err)
	second, err := cache.LoadAll(ctx)
	require.NoError(t, err)

	assert.Same(t, first[0], second[0])
	assert.Equal(t, int64(1), rec.misses.Load())
	assert.Equal(t, int64(1), rec.hits.Load())
	sig := cache.Signature()
	assert.NotEmpty(t, sig)

	fsys["2024-01-06-sixth.md"] = post("Sixth", "2024-01-06", "", "Six.")

	third, err := cache.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 6)
	assert.Equal(t, "sixth", third[0].ID)
	assert.NotEqual(t, sig, cache.Signature())
	assert.Equal(t, int64(2), rec.misses.Load())
}

func TestCache_EditedFileReloads(t *testing.T) {
	fsys := datedFixture()
	cache := NewCache(NewLoader(fsys, Options{}))
	ctx := context.Background()

	p, err := cache.Get(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "First", p.Title)

	fsys["2024-01-01-first.md"] = &fstest.MapFile{
		Data:    []byte("---\ntitle: First, revised\ndate: 2024-01-01\n---\nOne."),
		ModTime: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	p, err = cache.Get(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "First, revised", p.Title)
}

func TestCache_Invalidate(t *testing.T) {
	rec := &countingRecorder{}
	cache := NewCache(NewLoader(datedFixture(), Options{Recorder: rec}))
	ctx := context.Background()

	require.NoError(t, cache.Warm(ctx))
	cache.Invalidate()
	assert.Empty(t, cache.Signature())

	_, err := cache.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.misses.Load())
}

func TestCache_Concurrent(t *testing.T) {
	rec := &countingRecorder{}
	cache := NewCache(NewLoader(datedFixture(), Options{Recorder: rec}))
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			all, err := cache.LoadAll(ctx)
			assert.NoError(t, err)
			assert.Len(t, all, 5)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), rec.misses.Load())
	assert.Equal(t, int64(15), rec.hits.Load())
}

func TestCache_DelegatesIDsAndTags(t *testing.T) {
	cache := NewCache(NewLoader(datedFixture(), Options{}))

	got, err := cache.IDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"fifth", "fourth", "third", "second", "first"}, got)

	tags, err := cache.Tags(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tags)

	var _ Source = cache
	var _ Source = (*Loader)(nil)
}
