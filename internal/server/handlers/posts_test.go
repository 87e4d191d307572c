package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
	"git.home.luguber.info/inful/blogcontent/internal/posts"
	"git.home.luguber.info/inful/blogcontent/internal/server/responses"
)

func fixture() fstest.MapFS {
	return fstest.MapFS{
		"2024-01-01-older.md": {Data: []byte("---\ntitle: Older\ndate: 2024-01-01\ntags: [go]\n---\nOld body.")},
		"2024-02-01-newer.md": {Data: []byte("---\ntitle: Newer\ndate: 2024-02-01\ntags: [go, web]\n---\nNew **body**.")},
	}
}

func newMux(source posts.Source) *http.ServeMux {
	h := NewPostHandlers(source, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", h.HandleListPosts)
	mux.HandleFunc("/api/posts/{id}", h.HandleGetPost)
	mux.HandleFunc("/api/post-ids", h.HandlePostIDs)
	mux.HandleFunc("/api/tags", h.HandleTags)
	return mux
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleListPosts(t *testing.T) {
	mux := newMux(posts.NewLoader(fixture(), posts.Options{}))

	rec := get(t, mux, "/api/posts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
	assert.Empty(t, rec.Header().Get("ETag"))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0]["id"])
	assert.Equal(t, "older", got[1]["id"])

	rec = get(t, mux, "/api/posts?tag=web")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "newer", got[0]["id"])
}

func TestHandleGetPost(t *testing.T) {
	mux := newMux(posts.NewLoader(fixture(), posts.Options{}))

	rec := get(t, mux, "/api/posts/newer")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Newer", got["title"])
	content := got["content"].([]any)
	require.Len(t, content, 1)
	assert.Equal(t, "New <strong>body</strong>.", content[0].(map[string]any)["content"])
	prev := got["previousPost"].(map[string]any)
	assert.Equal(t, "older", prev["id"])
	_, hasNext := got["nextPost"]
	assert.False(t, hasNext)
}

func TestHandleGetPost_NotFound(t *testing.T) {
	mux := newMux(posts.NewLoader(fixture(), posts.Options{}))

	rec := get(t, mux, "/api/posts/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body.Code)
	assert.Equal(t, "missing", body.Details["post_id"])
}

func TestHandlers_RejectNonGET(t *testing.T) {
	mux := newMux(posts.NewLoader(fixture(), posts.Options{}))

	for _, target := range []string{"/api/posts", "/api/posts/newer", "/api/post-ids", "/api/tags"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandlers_ETagWithCache(t *testing.T) {
	mux := newMux(posts.NewCache(posts.NewLoader(fixture(), posts.Options{})))

	rec := get(t, mux, "/api/posts")
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec = get(t, mux, "/api/posts", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	rec = get(t, mux, "/api/posts/newer")
	require.Equal(t, http.StatusOK, rec.Code)
	postTag := rec.Header().Get("ETag")
	assert.NotEqual(t, etag, postTag)

	rec = get(t, mux, "/api/posts/newer", "If-None-Match", postTag)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestHandlers_PrettyJSON(t *testing.T) {
	mux := newMux(posts.NewLoader(fixture(), posts.Options{}))

	rec := get(t, mux, "/api/post-ids?pretty=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\n  \"ids\"")

	var ids responses.PostIDsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ids))
	assert.Equal(t, []string{"newer", "older"}, ids.IDs)
	assert.Equal(t, 2, ids.Count)
}

func TestHandleTags(t *testing.T) {
	mux := newMux(posts.NewLoader(fixture(), posts.Options{}))

	rec := get(t, mux, "/api/tags")
	require.Equal(t, http.StatusOK, rec.Code)

	var tags []posts.TagCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tags))
	assert.Equal(t, []posts.TagCount{{Tag: "go", Count: 2}, {Tag: "web", Count: 1}}, tags)
}

func TestHandleHealthCheck(t *testing.T) {
	h := NewMonitoringHandlers(posts.NewLoader(fixture(), posts.Options{}), nil)
	rec := httptest.NewRecorder()
	h.HandleHealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var health responses.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 2, health.Posts)
}

func TestHandleHealthCheck_RejectsNonGET(t *testing.T) {
	h := NewMonitoringHandlers(posts.NewLoader(fixture(), posts.Options{}), nil)
	rec := httptest.NewRecorder()
	h.HandleHealthCheck(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleHealthCheck(rec, httptest.NewRequest(http.MethodHead, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleHealthCheck_MissingContent(t *testing.T) {
	missing := os.DirFS(filepath.Join(t.TempDir(), "gone"))
	h := NewMonitoringHandlers(posts.NewLoader(missing, posts.Options{}), nil)
	rec := httptest.NewRecorder()
	h.HandleHealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
