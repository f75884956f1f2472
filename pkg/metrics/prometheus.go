package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for generated schedules
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeUnknownAirport = "unknown_airport"
	OutcomeNoRoutes       = "no_routes"
	OutcomeInfeasible     = "infeasible"
	OutcomeError          = "error"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SchedulesGenerated *prometheus.CounterVec
	LegsPerSchedule    prometheus.Histogram
	GenerationTime     prometheus.Histogram
	CacheLookups       *prometheus.CounterVec
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg. A nil reg
// uses the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SchedulesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_generated_total",
			Help:      "Schedule generation attempts by outcome",
		}, []string{"policy", "outcome"}),
		LegsPerSchedule: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_legs",
			Help:      "Number of legs in successfully generated schedules",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		GenerationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_generation_time_seconds",
			Help:      "Time taken to generate a schedule",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_cache_lookups_total",
			Help:      "Route cache lookups by result",
		}, []string{"result"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
