package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flowhive",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"method", "route", "status"})
	httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "flowhive",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	reportDeliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flowhive",
		Subsystem: "reports",
		Name:      "deliveries_total",
		Help:      "Report emails attempted, by mode and outcome.",
	}, []string{"mode", "outcome"})
	weeklyRunGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "flowhive",
		Subsystem: "reports",
		Name:      "last_weekly_run_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed weekly report run.",
	})
	realtimeClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "flowhive",
		Subsystem: "realtime",
		Name:      "connected_clients",
		Help:      "WebSocket clients currently connected.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpLatency, reportDeliveries, weeklyRunGauge, realtimeClients)
}

// ObserveHTTPRequest records one served request. route is the matched route pattern.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordReportDelivery counts one delivery attempt. mode is "bulk" or "individual".
func RecordReportDelivery(mode string, ok bool) {
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	reportDeliveries.WithLabelValues(mode, outcome).Inc()
}

// RecordWeeklyRun updates the weekly run watermark gauge.
func RecordWeeklyRun(ts time.Time) {
	if ts.IsZero() {
		return
	}
	weeklyRunGauge.Set(float64(ts.Unix()))
}

func RealtimeClientConnected()    { realtimeClients.Inc() }
func RealtimeClientDisconnected() { realtimeClients.Dec() }
