package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gascalc/backend/libs/gas"
)

var calculationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gas_calculations_total",
		Help: "Gas calculations performed, by calculator and outcome.",
	},
	[]string{"calculator", "outcome"},
)

func observeCalculation(calculator string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, gas.ErrInvalidMeasurement):
		outcome = "invalid"
	case errors.Is(err, ErrUnknownTariff):
		outcome = "unknown_tariff"
	default:
		outcome = "error"
	}
	calculationsTotal.WithLabelValues(calculator, outcome).Inc()
}
