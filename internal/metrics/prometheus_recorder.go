package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	rebuilds      *prom.CounterVec
	buildDuration prom.Histogram
	postCount     prom.Gauge
}

// NewPrometheusRecorder constructs and registers the serve-mode metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		rebuilds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blogbuilder",
			Name:      "rebuilds_total",
			Help:      "Rebuild counts by trigger and outcome",
		}, []string{"trigger", "outcome"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "blogbuilder",
			Name:      "build_duration_seconds",
			Help:      "External builder invocation duration",
			Buckets:   prom.DefBuckets,
		}),
		postCount: prom.NewGauge(prom.GaugeOpts{
			Namespace: "blogbuilder",
			Name:      "posts",
			Help:      "Posts currently in the content store",
		}),
	}
	reg.MustRegister(pr.rebuilds, pr.buildDuration, pr.postCount)
	return pr
}

func (pr *PrometheusRecorder) RecordRebuild(trigger, outcome string) {
	pr.rebuilds.WithLabelValues(trigger, outcome).Inc()
}

func (pr *PrometheusRecorder) RecordBuildDuration(d time.Duration) {
	pr.buildDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) SetPostCount(n int) {
	pr.postCount.Set(float64(n))
}
