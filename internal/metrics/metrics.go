package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Vocation Metrics
var (
	ActivitiesStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActivitiesStarted,
			Help: HelpTextActivitiesStarted,
		},
		[]string{LabelAction},
	)

	ActivitiesStopped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActivitiesStopped,
			Help: HelpTextActivitiesStopped,
		},
		[]string{LabelAction},
	)

	UnitsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnitsClaimed,
			Help: HelpTextUnitsClaimed,
		},
		[]string{LabelAction},
	)

	ItemsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsGranted,
			Help: HelpTextItemsGranted,
		},
		[]string{LabelAction},
	)

	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
		[]string{LabelAction},
	)
)

// Tick Daemon Metrics
var (
	TickSweeps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTickSweeps,
			Help: HelpTextTickSweeps,
		},
	)

	TickSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameTickSweepDuration,
			Help:    HelpTextTickSweepDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	TickClaimErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTickClaimErrors,
			Help: HelpTextTickClaimErrors,
		},
	)

	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameRealtimeConns,
			Help: HelpTextRealtimeConns,
		},
	)

	RealtimeEventsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRealtimeEventsSent,
			Help: HelpTextRealtimeEventsSent,
		},
		[]string{LabelEvent},
	)
)

// RecordClaim records the outcome of a settled claim.
func RecordClaim(action string, units, granted int) {
	if units > 0 {
		UnitsClaimed.WithLabelValues(action).Add(float64(units))
	}
	if granted > 0 {
		ItemsGranted.WithLabelValues(action).Add(float64(granted))
	}
}
