// Package metrics provides observability hooks for content loading.
//
// Components receive a Recorder through their options. NoopRecorder is the
// default and costs nothing; PrometheusRecorder is swapped in when the
// metrics section of the configuration is enabled:
//
//	reg := prometheus.NewRegistry()
//	loader := posts.NewLoader(fsys, posts.Options{
//	    Recorder: metrics.NewPrometheusRecorder(reg),
//	})
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
