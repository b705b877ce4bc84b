package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	routeRate      = "/api/gas/rate"
	routeBill      = "/api/gas/bill"
	routeTariffs   = "/api/gas/tariffs"
	routeConstants = "/api/gas/constants"
	routeLive      = "/ws/live"
	routeHealth    = "/health"
	routeMetrics   = "/metrics"
)

// Routes groups HTTP handlers.
type Routes struct {
	Rate      http.HandlerFunc
	Bill      http.HandlerFunc
	Tariffs   http.HandlerFunc
	Constants http.HandlerFunc
	Live      http.HandlerFunc
	Health    http.HandlerFunc
}

// NewRouter registers service endpoints behind the logging/metrics
// middleware.
func NewRouter(routes Routes, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	if routes.Rate != nil {
		mux.Handle(routeRate, method(http.MethodPost, routes.Rate))
	}
	if routes.Bill != nil {
		mux.Handle(routeBill, method(http.MethodPost, routes.Bill))
	}
	if routes.Tariffs != nil {
		mux.Handle(routeTariffs, method(http.MethodGet, routes.Tariffs))
	}
	if routes.Constants != nil {
		mux.Handle(routeConstants, method(http.MethodGet, routes.Constants))
	}
	if routes.Live != nil {
		mux.Handle(routeLive, method(http.MethodGet, routes.Live))
	}
	if routes.Health != nil {
		mux.Handle(routeHealth, method(http.MethodGet, routes.Health))
	}
	mux.Handle(routeMetrics, promhttp.Handler())
	return withObservability(mux, logger)
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
