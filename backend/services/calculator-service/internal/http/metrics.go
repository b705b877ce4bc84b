package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served.",
		},
		[]string{"route", "method", "status"},
	)
	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

func observeHTTPRequest(r *http.Request, status int, dur time.Duration) {
	route := routeLabel(r.URL.Path)
	httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(route, r.Method).Observe(dur.Seconds())
}

func routeLabel(path string) string {
	switch path {
	case routeRate:
		return "gas_rate"
	case routeBill:
		return "gas_bill"
	case routeTariffs:
		return "gas_tariffs"
	case routeConstants:
		return "gas_constants"
	case routeLive:
		return "ws_live"
	case routeHealth:
		return "health"
	case routeMetrics:
		return "metrics"
	default:
		return "other"
	}
}
