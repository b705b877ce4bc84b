// Package view shapes calculator outputs for display: numbers are rounded
// here and nowhere earlier.
package view

import (
	"errors"
	"net/http"

	"gascalc/backend/libs/gas"
	"gascalc/backend/services/calculator-service/internal/form"
	"gascalc/backend/services/calculator-service/internal/service"
)

const (
	StatusOK       = "ok"
	StatusNoResult = "no_result"
)

// Reasons for withholding a result.
const (
	ReasonIncomplete    = "incomplete"
	ReasonMalformed     = "malformed"
	ReasonInvalid       = "invalid"
	ReasonUnknownTariff = "unknown_tariff"
)

// Rate is the displayed gas rate.
type Rate struct {
	Status    string               `json:"status"`
	Result    gas.RateResult       `json:"result"`
	Tolerance *gas.ToleranceResult `json:"tolerance,omitempty"`
}

// Bill is the displayed bill estimate.
type Bill struct {
	Status    string            `json:"status"`
	Result    gas.BillResult    `json:"result"`
	Tariff    Tariff            `json:"tariff"`
	Formatted map[string]string `json:"formatted"`
}

// Tariff echoes the tariff applied to a bill.
type Tariff struct {
	Name                      string  `json:"name,omitempty"`
	UnitRatePencePerKWh       float64 `json:"unit_rate_pence_per_kwh"`
	StandingChargePencePerDay float64 `json:"standing_charge_pence_per_day"`
	VATRate                   float64 `json:"vat_rate"`
}

// NoResult explains why nothing is shown.
type NoResult struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// NewRate rounds a rate output for display.
func NewRate(out service.RateOutput) Rate {
	v := Rate{Status: StatusOK, Result: out.Result.Rounded()}
	if out.Tolerance != nil {
		tol := out.Tolerance.Rounded()
		v.Tolerance = &tol
	}
	return v
}

// NewBill rounds a bill output for display.
func NewBill(out service.BillOutput) Bill {
	r := out.Result.Rounded()
	return Bill{
		Status: StatusOK,
		Result: r,
		Tariff: Tariff{
			Name:                      out.TariffName,
			UnitRatePencePerKWh:       out.Tariff.UnitRatePencePerKWh,
			StandingChargePencePerDay: out.Tariff.StandingChargePencePerDay,
			VATRate:                   out.Tariff.VATRateOr(0),
		},
		Formatted: map[string]string{
			"unit_cost":            gas.FormatPounds(out.Result.UnitCost),
			"standing_charge_cost": gas.FormatPounds(out.Result.StandingChargeCost),
			"subtotal":             gas.FormatPounds(out.Result.Subtotal),
			"vat":                  gas.FormatPounds(out.Result.VAT),
			"total_cost":           gas.FormatPounds(out.Result.TotalCost),
			"daily_average":        gas.FormatPounds(out.Result.DailyAverage),
		},
	}
}

// Reason classifies a calculation error. ok is false for errors that are
// faults rather than unusable input.
func Reason(err error) (reason string, ok bool) {
	switch {
	case errors.Is(err, form.ErrIncomplete):
		return ReasonIncomplete, true
	case errors.Is(err, form.ErrMalformed):
		return ReasonMalformed, true
	case errors.Is(err, gas.ErrInvalidMeasurement):
		return ReasonInvalid, true
	case errors.Is(err, service.ErrUnknownTariff):
		return ReasonUnknownTariff, true
	default:
		return "", false
	}
}

// NewNoResult builds the no-result body and its HTTP status. Faults get
// 500 and a generic message.
func NewNoResult(err error) (NoResult, int) {
	reason, ok := Reason(err)
	if !ok {
		return NoResult{Status: StatusNoResult, Reason: "error", Error: "calculation failed"}, http.StatusInternalServerError
	}
	return NoResult{Status: StatusNoResult, Reason: reason, Error: err.Error()}, http.StatusUnprocessableEntity
}
