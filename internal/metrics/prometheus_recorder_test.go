package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveLoadDuration(150 * time.Millisecond)
	pr.IncLoadOutcome(LoadSuccess)
	pr.SetPostCount(5)
	pr.IncPlaceholder()
	pr.IncCacheResult(true)
	pr.IncCacheResult(false)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"blogcontent_load_duration_seconds",
		"blogcontent_load_outcomes_total",
		"blogcontent_posts",
		"blogcontent_placeholder_posts_total",
		"blogcontent_cache_results_total",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveLoadDuration(time.Second)
		pr.IncLoadOutcome(LoadFailed)
		pr.SetPostCount(1)
		pr.IncPlaceholder()
		pr.IncCacheResult(true)
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).SetPostCount(3)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "blogcontent_posts 3"))
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
