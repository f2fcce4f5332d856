package jobs

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for background jobs.
type Metrics struct {
	runs          *prometheus.CounterVec
	failures      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	discrepancies *prometheus.GaugeVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// NewMetrics registers the job metrics against the provided registerer. When the
// registerer is nil the default Prometheus registerer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = buildMetrics(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return buildMetrics(registerer)
}

func buildMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hisabat",
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Background job runs by job name and status.",
		}, []string{"job", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hisabat",
			Subsystem: "jobs",
			Name:      "failures_total",
			Help:      "Background job failures by job name.",
		}, []string{"job"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hisabat",
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Background job duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		discrepancies: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hisabat",
			Subsystem: "integrity",
			Name:      "discrepancies",
			Help:      "Discrepancies found by the latest integrity verification per company.",
		}, []string{"company"}),
	}
	registerer.MustRegister(m.runs, m.failures, m.duration, m.discrepancies)
	return m
}

// Tracker provides lifecycle instrumentation helpers for a single job run.
type Tracker struct {
	metrics *Metrics
	job     string
	start   time.Time
}

// Track spawns a tracker for the given job name.
func (m *Metrics) Track(job string) *Tracker {
	if m == nil {
		return &Tracker{job: job, start: time.Now()}
	}
	return &Tracker{metrics: m, job: job, start: time.Now()}
}

// End finalises the tracker, recording duration and success/failure counts,
// and returns the provided error untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil || t.job == "" {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
		t.metrics.failures.WithLabelValues(t.job).Inc()
	}
	t.metrics.runs.WithLabelValues(t.job, status).Inc()
	t.metrics.duration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

// SetDiscrepancies records the discrepancy count from the latest verification.
func (m *Metrics) SetDiscrepancies(companyID string, count int) {
	if m == nil {
		return
	}
	m.discrepancies.WithLabelValues(companyID).Set(float64(count))
}
