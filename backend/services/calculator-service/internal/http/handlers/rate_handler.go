package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"gascalc/backend/libs/gas"
	"gascalc/backend/services/calculator-service/internal/form"
	"gascalc/backend/services/calculator-service/internal/service"
	"gascalc/backend/services/calculator-service/internal/view"
)

type rateRequest struct {
	Method         string         `json:"method"`
	StartReading   *float64       `json:"start_reading"`
	EndReading     *float64       `json:"end_reading"`
	DialCubicFeet  *float64       `json:"dial_cubic_feet"`
	ElapsedSeconds *int           `json:"elapsed_seconds"`
	DeclaredKW     *float64       `json:"declared_kw"`
	Constants      *gas.Constants `json:"constants"`
}

func (req rateRequest) input() (service.RateInput, error) {
	method := gas.MethodMeterReading
	if req.Method != "" {
		m, err := gas.ParseMethod(req.Method)
		if err != nil {
			return service.RateInput{}, fmt.Errorf("%w: %s", form.ErrMalformed, form.FieldMethod)
		}
		method = m
	}

	var need required
	sample := gas.MeasurementSample{Method: method}
	if method == gas.MethodTestDial {
		sample.DialVolumeCubicFeet = need.float(form.FieldDialCubicFeet, req.DialCubicFeet)
	} else {
		sample.StartReading = need.float(form.FieldStartReading, req.StartReading)
		sample.EndReading = need.float(form.FieldEndReading, req.EndReading)
	}
	sample.ElapsedSeconds = need.int(form.FieldElapsedSeconds, req.ElapsedSeconds)
	if err := need.err(); err != nil {
		return service.RateInput{}, err
	}

	return service.RateInput{
		Sample:     sample,
		DeclaredKW: req.DeclaredKW,
		Constants:  req.Constants,
	}, nil
}

// NewRateHandler handles POST /api/gas/rate with a JSON or url-encoded body.
func NewRateHandler(svc *service.CalculatorService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := rateInput(w, r)
		if errors.Is(err, errBadBody) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeNoResult(w, err, logger)
			return
		}

		out, err := svc.Rate(r.Context(), in)
		if err != nil {
			writeNoResult(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view.NewRate(out))
	}
}

func rateInput(w http.ResponseWriter, r *http.Request) (service.RateInput, error) {
	if isForm(r) {
		fields, err := formFields(w, r)
		if err != nil {
			return service.RateInput{}, err
		}
		f, err := form.ParseRate(fields)
		if err != nil {
			return service.RateInput{}, err
		}
		return service.RateInput{Sample: f.Sample, DeclaredKW: f.DeclaredKW}, nil
	}

	var req rateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return service.RateInput{}, err
	}
	return req.input()
}
