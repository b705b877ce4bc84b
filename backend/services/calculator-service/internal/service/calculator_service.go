package service

import (
	"context"

	"go.uber.org/zap"

	"gascalc/backend/libs/gas"
)

const (
	CalculatorRate = "rate"
	CalculatorBill = "bill"
)

// CalculatorService runs the rate and bill calculators with service-wide
// default constants and tariff presets.
type CalculatorService struct {
	tariffs   *TariffService
	constants gas.Constants
	logger    *zap.Logger
}

// NewCalculatorService builds service. Unset constants take the UK defaults.
func NewCalculatorService(tariffs *TariffService, constants gas.Constants, logger *zap.Logger) *CalculatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorService{
		tariffs:   tariffs,
		constants: constants.WithDefaults(),
		logger:    logger,
	}
}

// Constants returns the service defaults.
func (s *CalculatorService) Constants() gas.Constants {
	return s.constants
}

// RateInput is a heat-input calculation request.
type RateInput struct {
	Sample     gas.MeasurementSample
	DeclaredKW *float64
	Constants  *gas.Constants
}

// RateOutput carries full-precision results.
type RateOutput struct {
	Result    gas.RateResult
	Tolerance *gas.ToleranceResult
}

// Rate computes heat input and, when a declared rating is given, the
// tolerance check.
func (s *CalculatorService) Rate(ctx context.Context, in RateInput) (RateOutput, error) {
	out, err := s.rate(in)
	observeCalculation(CalculatorRate, err)
	if err != nil {
		s.logger.Debug("rate calculation rejected", zap.Error(err))
		return RateOutput{}, err
	}
	return out, nil
}

func (s *CalculatorService) rate(in RateInput) (RateOutput, error) {
	constants := overlay(s.constants, in.Constants)

	res, err := gas.ComputeRate(in.Sample, constants)
	if err != nil {
		return RateOutput{}, err
	}
	out := RateOutput{Result: res}
	if in.DeclaredKW != nil {
		tol, err := gas.CheckTolerance(res.NetKW, *in.DeclaredKW)
		if err != nil {
			return RateOutput{}, err
		}
		out.Tolerance = &tol
	}
	return out, nil
}

// BillInput is a bill estimate request. A non-zero TariffID replaces Tariff
// with the matching preset.
type BillInput struct {
	StartReading float64
	EndReading   float64
	Days         int
	Tariff       gas.TariffInput
	TariffID     int64
	Constants    *gas.Constants
}

// BillOutput carries full-precision results and the tariff actually applied.
type BillOutput struct {
	Result     gas.BillResult
	Tariff     gas.TariffInput
	TariffName string
}

// Bill estimates a gas bill.
func (s *CalculatorService) Bill(ctx context.Context, in BillInput) (BillOutput, error) {
	out, err := s.bill(ctx, in)
	observeCalculation(CalculatorBill, err)
	if err != nil {
		s.logger.Debug("bill calculation rejected", zap.Int64("tariff_id", in.TariffID), zap.Error(err))
		return BillOutput{}, err
	}
	return out, nil
}

func (s *CalculatorService) bill(ctx context.Context, in BillInput) (BillOutput, error) {
	constants := s.constants
	tariff := in.Tariff
	var name string

	if in.TariffID != 0 {
		if s.tariffs == nil {
			return BillOutput{}, ErrUnknownTariff
		}
		preset, err := s.tariffs.Lookup(ctx, in.TariffID)
		if err != nil {
			return BillOutput{}, err
		}
		tariff = preset.TariffInput()
		name = preset.Name
		if preset.CalorificValueMJPerM3 > 0 {
			constants.CalorificValueMJPerM3 = preset.CalorificValueMJPerM3
		}
	}
	constants = overlay(constants, in.Constants)

	res, err := gas.ComputeBill(in.StartReading, in.EndReading, in.Days, tariff, constants)
	if err != nil {
		return BillOutput{}, err
	}
	if tariff.VATRate == nil {
		vat := constants.DefaultVATRate
		tariff.VATRate = &vat
	}
	return BillOutput{Result: res, Tariff: tariff, TariffName: name}, nil
}

// overlay replaces base fields with the non-zero fields of override.
func overlay(base gas.Constants, override *gas.Constants) gas.Constants {
	if override == nil {
		return base
	}
	o := *override
	if o.CalorificValueMJPerM3 != 0 {
		base.CalorificValueMJPerM3 = o.CalorificValueMJPerM3
	}
	if o.VolumeCorrectionFactor != 0 {
		base.VolumeCorrectionFactor = o.VolumeCorrectionFactor
	}
	if o.KWhConversionDivisor != 0 {
		base.KWhConversionDivisor = o.KWhConversionDivisor
	}
	if o.GrossToNetRatio != 0 {
		base.GrossToNetRatio = o.GrossToNetRatio
	}
	if o.ImperialToMetricFactor != 0 {
		base.ImperialToMetricFactor = o.ImperialToMetricFactor
	}
	if o.DefaultVATRate != 0 {
		base.DefaultVATRate = o.DefaultVATRate
	}
	return base
}
