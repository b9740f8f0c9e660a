package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Vocation metric names
const (
	MetricNameActivitiesStarted = "vocation_activities_started_total"
	MetricNameActivitiesStopped = "vocation_activities_stopped_total"
	MetricNameUnitsClaimed      = "vocation_units_claimed_total"
	MetricNameItemsGranted      = "vocation_items_granted_total"
	MetricNameXPAwarded         = "vocation_xp_awarded_total"
)

// Tick daemon metric names
const (
	MetricNameTickSweeps         = "tickd_sweeps_total"
	MetricNameTickSweepDuration  = "tickd_sweep_duration_seconds"
	MetricNameTickClaimErrors    = "tickd_claim_errors_total"
	MetricNameRealtimeConns      = "realtime_connections"
	MetricNameRealtimeEventsSent = "realtime_events_sent_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Vocation metric help text
const (
	HelpTextActivitiesStarted = "Total number of vocational activities started"
	HelpTextActivitiesStopped = "Total number of vocational activities stopped or completed"
	HelpTextUnitsClaimed      = "Total number of work units claimed"
	HelpTextItemsGranted      = "Total quantity of items granted by claims"
	HelpTextXPAwarded         = "Total XP awarded by claims"
)

// Tick daemon metric help text
const (
	HelpTextTickSweeps         = "Total number of tick daemon sweeps"
	HelpTextTickSweepDuration  = "Tick daemon sweep latency in seconds"
	HelpTextTickClaimErrors    = "Total number of claim errors during tick sweeps"
	HelpTextRealtimeConns      = "Current number of realtime websocket connections"
	HelpTextRealtimeEventsSent = "Total number of realtime events pushed to clients"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelAction = "action"
	LabelEvent  = "event"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, ranging from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
