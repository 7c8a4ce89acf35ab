package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PlansGenerated   prometheus.Counter
	EventsScheduled  prometheus.Counter
	OverdueEvents    prometheus.Gauge
	Submissions      *prometheus.CounterVec
	CorrectiveEvents prometheus.Counter
	SubmitDuration   prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PlansGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inspekt_plans_generated_total",
			Help: "Total number of annual plan generation runs",
		}),
		EventsScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inspekt_events_scheduled_total",
			Help: "Total number of inspection events merged into the store",
		}),
		OverdueEvents: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "inspekt_overdue_events",
			Help: "Number of overdue inspection events at the last sweep",
		}),
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "inspekt_submissions_total",
			Help: "Total checklist submissions by outcome",
		}, []string{"outcome"}),
		CorrectiveEvents: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inspekt_corrective_events_total",
			Help: "Total corrective events derived from non-conformities",
		}),
		SubmitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "inspekt_submit_duration_seconds",
			Help:    "Latency of checklist submission including report rendering",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
