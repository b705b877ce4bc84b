package handlers

import (
	"net/http"

	"gascalc/backend/services/calculator-service/internal/service"
)

// NewTariffsHandler returns GET /api/gas/tariffs handler.
func NewTariffsHandler(tariffs *service.TariffService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"tariffs": tariffs.Active(r.Context()),
		})
	}
}

// NewConstantsHandler returns GET /api/gas/constants handler.
func NewConstantsHandler(svc *service.CalculatorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"constants": svc.Constants(),
		})
	}
}
