package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "config.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "config.yaml", file)
	})

	t.Run("Wrapped cause is reachable", func(t *testing.T) {
		cause := stderrors.New("permission denied")
		err := WrapError(cause, CategoryFileSystem, "failed to read post").Build()

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "[filesystem:error] failed to read post: permission denied")
	})

	t.Run("Classification survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load: %w", NotFoundError("post not found").Build())

		assert.True(t, IsClassified(err))
		assert.True(t, HasCategory(err, CategoryNotFound))
		assert.Equal(t, CategoryNotFound, GetCategory(err))
	})

	t.Run("WithContext does not mutate the receiver", func(t *testing.T) {
		base := ContentError("bad post").Build()
		withFile := base.WithContext("file", "a.md")

		_, ok := base.Context().Get("file")
		assert.False(t, ok)
		file, _ := withFile.Context().GetString("file")
		assert.Equal(t, "a.md", file)
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		err := stderrors.New("plain")
		assert.Equal(t, CategoryInternal, GetCategory(err))
		assert.Equal(t, SeverityError, GetSeverity(err))
	})
}

func TestHTTPErrorAdapter(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", NotFoundError("post not found").Build(), http.StatusNotFound},
		{"validation", ValidationError("bad id").Build(), http.StatusBadRequest},
		{"filesystem", FileSystemError("read failed").Build(), http.StatusInternalServerError},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/posts/x", nil)
			adapter.WriteErrorResponse(rec, req, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}

	resp := adapter.FormatErrorResponse(NotFoundError("post not found").WithContext("id", "abc").Build())
	assert.Equal(t, "post not found", resp.Error)
	assert.Equal(t, "not_found", resp.Code)
	assert.Equal(t, "abc", resp.Details["id"])
	assert.False(t, resp.Retryable)
}

func TestCLIErrorAdapter(t *testing.T) {
	var out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(NotFoundError("post not found").Build())

	assert.Equal(t, 3, code)
	assert.Equal(t, "Error: post not found\n", out.String())

	assert.Equal(t, 7, adapter.ExitCodeFor(ConfigError("bad").Build()))
	assert.Equal(t, 1, adapter.ExitCodeFor(stderrors.New("x")))
	assert.Equal(t, 0, adapter.ExitCodeFor(nil))
	assert.Equal(t, "Internal error occurred (use -v for details)", adapter.FormatError(InternalError("x").Build()))
}
