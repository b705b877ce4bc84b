package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"

	"gascalc/backend/libs/gas"
	"gascalc/backend/services/calculator-service/internal/config"
	"gascalc/backend/services/calculator-service/internal/models"
	"gascalc/backend/services/calculator-service/internal/service"
	"gascalc/backend/services/calculator-service/internal/view"
)

func newTestService() (*service.CalculatorService, *service.TariffService) {
	tariffs := service.NewTariffService(nil, nil, models.TariffPreset{
		ID:                        1,
		Name:                      "Default",
		UnitRatePencePerKWh:       6.24,
		StandingChargePencePerDay: 31.66,
		VATRate:                   0.05,
	}, zap.NewNop())
	return service.NewCalculatorService(tariffs, gas.DefaultConstants(), zap.NewNop()), tariffs
}

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func postForm(h http.HandlerFunc, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestRateHandler_JSON(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	rr := postJSON(NewRateHandler(svc, zap.NewNop()),
		`{"method":"meter_reading","start_reading":1000,"end_reading":1000.5,"elapsed_seconds":120,"declared_kw":160}`)

	if got, want := rr.Code, http.StatusOK; got != want {
		t.Fatalf("status=%d want %d, body=%s", got, want, rr.Body.String())
	}
	var got view.Rate
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Result.GrossKW != 168.31 || got.Result.NetKW != 151.63 {
		t.Fatalf("unexpected result %+v", got.Result)
	}
	if got.Tolerance == nil || got.Tolerance.WithinTolerance {
		t.Fatalf("expected out of tolerance, got %+v", got.Tolerance)
	}
	if got.Tolerance.DeviationPercent != -5.23 {
		t.Fatalf("deviation=%v want -5.23", got.Tolerance.DeviationPercent)
	}
}

func TestRateHandler_FormTestDial(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	rr := postForm(NewRateHandler(svc, zap.NewNop()), url.Values{
		"method":          {"test_dial"},
		"dial_cubic_feet": {"1"},
		"minutes":         {"1"},
		"seconds":         {"0"},
	})
	if got, want := rr.Code, http.StatusOK; got != want {
		t.Fatalf("status=%d want %d, body=%s", got, want, rr.Body.String())
	}
	var got view.Rate
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Result.NetKW != 17.17 {
		t.Fatalf("net=%v want 17.17", got.Result.NetKW)
	}
}

func TestRateHandler_NoResult(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	h := NewRateHandler(svc, zap.NewNop())

	tests := []struct {
		name   string
		rr     *httptest.ResponseRecorder
		reason string
	}{
		{"end before start", postJSON(h, `{"start_reading":10,"end_reading":9,"elapsed_seconds":60}`), view.ReasonInvalid},
		{"unknown method", postJSON(h, `{"method":"guess"}`), view.ReasonMalformed},
		{"blank form", postForm(h, url.Values{"start_reading": {"1"}}), view.ReasonIncomplete},
		{"garbled form", postForm(h, url.Values{"start_reading": {"one"}}), view.ReasonMalformed},
	}
	for _, tt := range tests {
		if got, want := tt.rr.Code, http.StatusUnprocessableEntity; got != want {
			t.Fatalf("%s: status=%d want %d", tt.name, got, want)
		}
		var body view.NoResult
		if err := json.Unmarshal(tt.rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: unmarshal: %v", tt.name, err)
		}
		if body.Reason != tt.reason {
			t.Fatalf("%s: reason=%q want %q", tt.name, body.Reason, tt.reason)
		}
	}
}

func TestRateHandler_BadJSON(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	rr := postJSON(NewRateHandler(svc, zap.NewNop()), `{"start_reading":`)
	if got, want := rr.Code, http.StatusBadRequest; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
}

func TestBillHandler_JSON(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	rr := postJSON(NewBillHandler(svc, zap.NewNop()),
		`{"start_reading":1234.567,"end_reading":1334.567,"days":30,"unit_rate_pence":6.24,"standing_charge_pence":31.66,"vat_rate":0.05}`)

	if got, want := rr.Code, http.StatusOK; got != want {
		t.Fatalf("status=%d want %d, body=%s", got, want, rr.Body.String())
	}
	var got view.Bill
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := gas.BillResult{
		GasUsedM3:          100,
		GasUsedKWh:         1122.06,
		UnitCost:           70.02,
		StandingChargeCost: 9.5,
		Subtotal:           79.51,
		VAT:                3.98,
		TotalCost:          83.49,
		DailyAverage:       2.78,
	}
	if got.Result != want {
		t.Fatalf("result=%+v want %+v", got.Result, want)
	}
	if got.Formatted["daily_average"] != "£2.78" {
		t.Fatalf("formatted=%v", got.Formatted)
	}
}

func TestBillHandler_FormWithPreset(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	rr := postForm(NewBillHandler(svc, zap.NewNop()), url.Values{
		"start_reading": {"1234.567"},
		"end_reading":   {"1334.567"},
		"days":          {"30"},
		"tariff_id":     {"1"},
	})
	if got, want := rr.Code, http.StatusOK; got != want {
		t.Fatalf("status=%d want %d, body=%s", got, want, rr.Body.String())
	}
	var got view.Bill
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Tariff.Name != "Default" || got.Result.TotalCost != 83.49 {
		t.Fatalf("unexpected bill %+v", got)
	}
}

func TestBillHandler_ZeroDays(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	rr := postJSON(NewBillHandler(svc, zap.NewNop()),
		`{"start_reading":1,"end_reading":2,"days":0,"unit_rate_pence":6,"standing_charge_pence":30}`)
	if got, want := rr.Code, http.StatusUnprocessableEntity; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
}

func TestBillHandler_UnknownTariff(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	rr := postJSON(NewBillHandler(svc, zap.NewNop()), `{"start_reading":1,"end_reading":2,"days":3,"tariff_id":77}`)
	if got, want := rr.Code, http.StatusUnprocessableEntity; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
	if !strings.Contains(rr.Body.String(), view.ReasonUnknownTariff) {
		t.Fatalf("body=%s", rr.Body.String())
	}
}

func TestTariffsAndConstantsHandlers(t *testing.T) {
	t.Parallel()

	svc, tariffs := newTestService()

	rr := httptest.NewRecorder()
	NewTariffsHandler(tariffs)(rr, httptest.NewRequest(http.MethodGet, "/api/gas/tariffs", nil))
	var tb struct {
		Tariffs []models.TariffPreset `json:"tariffs"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &tb); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(tb.Tariffs) != 1 || tb.Tariffs[0].ID != 1 {
		t.Fatalf("unexpected tariffs %+v", tb.Tariffs)
	}

	rr = httptest.NewRecorder()
	NewConstantsHandler(svc)(rr, httptest.NewRequest(http.MethodGet, "/api/gas/constants", nil))
	var cb struct {
		Constants gas.Constants `json:"constants"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &cb); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cb.Constants != gas.DefaultConstants() {
		t.Fatalf("constants=%+v", cb.Constants)
	}
}

func decodeNoResult(t *testing.T, rr *httptest.ResponseRecorder) view.NoResult {
	t.Helper()
	if got, want := rr.Code, http.StatusUnprocessableEntity; got != want {
		t.Fatalf("status=%d want %d, body=%s", got, want, rr.Body.String())
	}
	var body view.NoResult
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return body
}

func TestBillHandler_JSONMissingRatesIsIncomplete(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	h := NewBillHandler(svc, zap.NewNop())

	tests := []struct {
		name    string
		body    string
		missing string
	}{
		{"no tariff at all", `{"start_reading":1234.567,"end_reading":1334.567,"days":30}`, "unit_rate_pence, standing_charge_pence"},
		{"no standing charge", `{"start_reading":1,"end_reading":2,"days":3,"unit_rate_pence":6.24}`, "standing_charge_pence"},
		{"no readings", `{"days":3,"unit_rate_pence":6.24,"standing_charge_pence":31.66}`, "start_reading, end_reading"},
		{"no days", `{"start_reading":1,"end_reading":2,"tariff_id":1}`, "days"},
	}
	for _, tt := range tests {
		body := decodeNoResult(t, postJSON(h, tt.body))
		if body.Reason != view.ReasonIncomplete {
			t.Fatalf("%s: reason=%q want %q", tt.name, body.Reason, view.ReasonIncomplete)
		}
		if !strings.Contains(body.Error, tt.missing) {
			t.Fatalf("%s: error=%q should name %q", tt.name, body.Error, tt.missing)
		}
	}
}

func TestBillHandler_JSONExplicitZeroRatesAreValid(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	rr := postJSON(NewBillHandler(svc, zap.NewNop()),
		`{"start_reading":1,"end_reading":2,"days":3,"unit_rate_pence":0,"standing_charge_pence":0}`)
	if got, want := rr.Code, http.StatusOK; got != want {
		t.Fatalf("status=%d want %d, body=%s", got, want, rr.Body.String())
	}
}

func TestRateHandler_JSONMissingFieldsIsIncomplete(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	h := NewRateHandler(svc, zap.NewNop())

	tests := []struct {
		name    string
		body    string
		missing string
	}{
		{"empty body", `{}`, "start_reading, end_reading, elapsed_seconds"},
		{"no elapsed time", `{"start_reading":1000,"end_reading":1000.5}`, "elapsed_seconds"},
		{"dial without size", `{"method":"test_dial","elapsed_seconds":60}`, "dial_cubic_feet"},
	}
	for _, tt := range tests {
		body := decodeNoResult(t, postJSON(h, tt.body))
		if body.Reason != view.ReasonIncomplete {
			t.Fatalf("%s: reason=%q want %q", tt.name, body.Reason, view.ReasonIncomplete)
		}
		if !strings.Contains(body.Error, tt.missing) {
			t.Fatalf("%s: error=%q should name %q", tt.name, body.Error, tt.missing)
		}
	}
}

func TestRateHandler_FormElapsedOverflowIsMalformed(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	h := NewRateHandler(svc, zap.NewNop())

	for _, v := range []url.Values{
		{"method": {"test_dial"}, "dial_cubic_feet": {"1"}, "minutes": {"307445734561825861"}, "seconds": {"0"}},
		{"method": {"test_dial"}, "dial_cubic_feet": {"1"}, "minutes": {"-1"}, "seconds": {"90"}},
	} {
		body := decodeNoResult(t, postForm(h, v))
		if body.Reason != view.ReasonMalformed {
			t.Fatalf("%v: reason=%q want %q", v, body.Reason, view.ReasonMalformed)
		}
	}
}

func TestBillHandler_SelectsListedDefaultTariff(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	tariffs := service.NewTariffService(nil, nil, cfg.DefaultTariff, zap.NewNop())
	svc := service.NewCalculatorService(tariffs, cfg.Constants, zap.NewNop())

	rr := httptest.NewRecorder()
	NewTariffsHandler(tariffs)(rr, httptest.NewRequest(http.MethodGet, "/api/gas/tariffs", nil))
	var listed struct {
		Tariffs []models.TariffPreset `json:"tariffs"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(listed.Tariffs) != 1 || listed.Tariffs[0].ID == 0 {
		t.Fatalf("listed tariffs %+v must carry a selectable id", listed.Tariffs)
	}
	id := listed.Tariffs[0].ID

	h := NewBillHandler(svc, zap.NewNop())
	jsonRR := postJSON(h, fmt.Sprintf(`{"start_reading":1234.567,"end_reading":1334.567,"days":30,"tariff_id":%d}`, id))
	formRR := postForm(h, url.Values{
		"start_reading": {"1234.567"},
		"end_reading":   {"1334.567"},
		"days":          {"30"},
		"tariff_id":     {strconv.FormatInt(id, 10)},
	})
	for name, rr := range map[string]*httptest.ResponseRecorder{"json": jsonRR, "form": formRR} {
		if got, want := rr.Code, http.StatusOK; got != want {
			t.Fatalf("%s: status=%d want %d, body=%s", name, got, want, rr.Body.String())
		}
		var got view.Bill
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			t.Fatalf("%s: unmarshal: %v", name, err)
		}
		if got.Tariff.Name != cfg.DefaultTariff.Name || got.Result.TotalCost != 83.49 {
			t.Fatalf("%s: unexpected bill %+v", name, got)
		}
	}
}
