package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gascalc/backend/libs/gas"
	"gascalc/backend/services/calculator-service/internal/form"
	"gascalc/backend/services/calculator-service/internal/service"
	"gascalc/backend/services/calculator-service/internal/view"
)

type billRequest struct {
	StartReading        *float64       `json:"start_reading"`
	EndReading          *float64       `json:"end_reading"`
	Days                *int           `json:"days"`
	UnitRatePence       *float64       `json:"unit_rate_pence"`
	StandingChargePence *float64       `json:"standing_charge_pence"`
	VATRate             *float64       `json:"vat_rate"`
	TariffID            int64          `json:"tariff_id"`
	Constants           *gas.Constants `json:"constants"`
}

// NewBillHandler handles POST /api/gas/bill with a JSON or url-encoded body.
func NewBillHandler(svc *service.CalculatorService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := billInput(w, r)
		if errors.Is(err, errBadBody) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeNoResult(w, err, logger)
			return
		}

		out, err := svc.Bill(r.Context(), in)
		if err != nil {
			writeNoResult(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view.NewBill(out))
	}
}

func billInput(w http.ResponseWriter, r *http.Request) (service.BillInput, error) {
	if isForm(r) {
		fields, err := formFields(w, r)
		if err != nil {
			return service.BillInput{}, err
		}
		f, err := form.ParseBill(fields)
		if err != nil {
			return service.BillInput{}, err
		}
		return service.BillInput{
			StartReading: f.StartReading,
			EndReading:   f.EndReading,
			Days:         f.Days,
			Tariff:       f.Tariff,
			TariffID:     f.TariffID,
		}, nil
	}

	var req billRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return service.BillInput{}, err
	}
	return req.input()
}

func (req billRequest) input() (service.BillInput, error) {
	var need required
	in := service.BillInput{
		StartReading: need.float(form.FieldStartReading, req.StartReading),
		EndReading:   need.float(form.FieldEndReading, req.EndReading),
		Days:         need.int(form.FieldDays, req.Days),
		TariffID:     req.TariffID,
		Constants:    req.Constants,
	}
	if req.TariffID == 0 {
		in.Tariff = gas.TariffInput{
			UnitRatePencePerKWh:       need.float(form.FieldUnitRatePence, req.UnitRatePence),
			StandingChargePencePerDay: need.float(form.FieldStandingChargePence, req.StandingChargePence),
			VATRate:                   req.VATRate,
		}
	}
	if err := need.err(); err != nil {
		return service.BillInput{}, err
	}
	return in, nil
}
