package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "blogcontent"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once         sync.Once
	loadDuration prom.Histogram
	loadOutcome  *prom.CounterVec
	postCount    prom.Gauge
	placeholders prom.Counter
	cacheResults *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the content metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.loadDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of full content directory loads",
			Buckets:   prom.DefBuckets,
		})
		pr.loadOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "load_outcomes_total",
			Help:      "Content loads by outcome",
		}, []string{"outcome"})
		pr.postCount = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "posts",
			Help:      "Number of posts returned by the last load",
		})
		pr.placeholders = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "placeholder_posts_total",
			Help:      "Posts replaced by an error placeholder",
		})
		pr.cacheResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_results_total",
			Help:      "Post cache lookups by result",
		}, []string{"result"})
		reg.MustRegister(pr.loadDuration, pr.loadOutcome, pr.postCount, pr.placeholders, pr.cacheResults)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(d time.Duration) {
	if p == nil || p.loadDuration == nil {
		return
	}
	p.loadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLoadOutcome(outcome LoadOutcome) {
	if p == nil || p.loadOutcome == nil {
		return
	}
	p.loadOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetPostCount(n int) {
	if p == nil || p.postCount == nil {
		return
	}
	p.postCount.Set(float64(n))
}

func (p *PrometheusRecorder) IncPlaceholder() {
	if p == nil || p.placeholders == nil {
		return
	}
	p.placeholders.Inc()
}

func (p *PrometheusRecorder) IncCacheResult(hit bool) {
	if p == nil || p.cacheResults == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheResults.WithLabelValues(res).Inc()
}
