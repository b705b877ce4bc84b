package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"gascalc/backend/services/calculator-service/internal/form"
	"gascalc/backend/services/calculator-service/internal/service"
	"gascalc/backend/services/calculator-service/internal/view"
)

// StatusError marks a frame that could not be read at all.
const StatusError = "error"

// Request is one live recalculation: the current form fields exactly as
// typed, tagged by the client so replies can be matched.
type Request struct {
	ID         string            `json:"id"`
	Calculator string            `json:"calculator"`
	Fields     map[string]string `json:"fields"`
}

// Response answers a Request. Result holds a view.Rate or view.Bill when
// Status is ok.
type Response struct {
	ID         string      `json:"id,omitempty"`
	Calculator string      `json:"calculator,omitempty"`
	Status     string      `json:"status"`
	Reason     string      `json:"reason,omitempty"`
	Error      string      `json:"error,omitempty"`
	Result     interface{} `json:"result,omitempty"`
}

// Processor recalculates on every frame.
type Processor struct {
	calculator *service.CalculatorService
	logger     *zap.Logger
}

// NewProcessor builds Processor.
func NewProcessor(calculator *service.CalculatorService, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{calculator: calculator, logger: logger}
}

// Process handles raw frame and returns the encoded reply. Unreadable
// frames get an error reply rather than closing the connection.
func (p *Processor) Process(ctx context.Context, connID string, raw []byte) ([]byte, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		liveMessagesTotal.WithLabelValues("unknown", StatusError).Inc()
		return json.Marshal(Response{Status: StatusError, Error: "invalid frame"})
	}

	resp := p.handle(ctx, req)
	liveMessagesTotal.WithLabelValues(calculatorLabel(req.Calculator), resp.Status).Inc()
	if resp.Status == StatusError {
		p.logger.Debug("live frame rejected", zap.String("conn_id", connID), zap.String("calculator", req.Calculator))
	}
	return json.Marshal(resp)
}

func (p *Processor) handle(ctx context.Context, req Request) Response {
	resp := Response{ID: req.ID, Calculator: req.Calculator}

	var (
		result interface{}
		err    error
	)
	switch req.Calculator {
	case service.CalculatorRate:
		result, err = p.rate(ctx, req.Fields)
	case service.CalculatorBill:
		result, err = p.bill(ctx, req.Fields)
	default:
		resp.Status = StatusError
		resp.Error = "unknown calculator"
		return resp
	}

	if err != nil {
		body, status := view.NewNoResult(err)
		if status >= http.StatusInternalServerError {
			p.logger.Error("live calculation failed", zap.String("calculator", req.Calculator), zap.Error(err))
		}
		resp.Status = body.Status
		resp.Reason = body.Reason
		resp.Error = body.Error
		return resp
	}
	resp.Status = view.StatusOK
	resp.Result = result
	return resp
}

func (p *Processor) rate(ctx context.Context, fields map[string]string) (interface{}, error) {
	f, err := form.ParseRate(fields)
	if err != nil {
		return nil, err
	}
	out, err := p.calculator.Rate(ctx, service.RateInput{Sample: f.Sample, DeclaredKW: f.DeclaredKW})
	if err != nil {
		return nil, err
	}
	return view.NewRate(out), nil
}

func (p *Processor) bill(ctx context.Context, fields map[string]string) (interface{}, error) {
	f, err := form.ParseBill(fields)
	if err != nil {
		return nil, err
	}
	out, err := p.calculator.Bill(ctx, service.BillInput{
		StartReading: f.StartReading,
		EndReading:   f.EndReading,
		Days:         f.Days,
		Tariff:       f.Tariff,
		TariffID:     f.TariffID,
	})
	if err != nil {
		return nil, err
	}
	return view.NewBill(out), nil
}

func calculatorLabel(name string) string {
	switch name {
	case service.CalculatorRate, service.CalculatorBill:
		return name
	default:
		return "unknown"
	}
}
