package gas

import "github.com/shopspring/decimal"

// Display precision per quantity.
const (
	MoneyPlaces  = 2
	VolumePlaces = 3
	EnergyPlaces = 2
	PowerPlaces  = 2
	FlowPlaces   = 4
)

// Round rounds v half away from zero using its shortest decimal form, so
// 9.495 becomes 9.50 rather than the 9.49 that binary rounding would give.
func Round(v float64, places int32) float64 {
	if !finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// FormatPounds renders an amount as "£12.34".
func FormatPounds(v float64) string {
	if !finite(v) {
		return ""
	}
	d := decimal.NewFromFloat(v).Round(MoneyPlaces)
	if d.IsNegative() {
		return "-£" + d.Neg().StringFixed(MoneyPlaces)
	}
	return "£" + d.StringFixed(MoneyPlaces)
}

// Rounded returns a copy rounded for display.
func (r RateResult) Rounded() RateResult {
	return RateResult{
		VolumeM3:          Round(r.VolumeM3, VolumePlaces),
		CorrectedVolumeM3: Round(r.CorrectedVolumeM3, VolumePlaces+2),
		FlowRateM3PerHour: Round(r.FlowRateM3PerHour, FlowPlaces),
		GrossKW:           Round(r.GrossKW, PowerPlaces),
		NetKW:             Round(r.NetKW, PowerPlaces),
	}
}

// Rounded returns a copy with the deviation rounded to 2dp.
func (t ToleranceResult) Rounded() ToleranceResult {
	t.DeviationPercent = Round(t.DeviationPercent, 2)
	return t
}

// Rounded returns a copy rounded for display. Each field is rounded on its
// own, so the rounded parts need not add up to the rounded total.
func (b BillResult) Rounded() BillResult {
	return BillResult{
		GasUsedM3:          Round(b.GasUsedM3, VolumePlaces),
		GasUsedKWh:         Round(b.GasUsedKWh, EnergyPlaces),
		UnitCost:           Round(b.UnitCost, MoneyPlaces),
		StandingChargeCost: Round(b.StandingChargeCost, MoneyPlaces),
		Subtotal:           Round(b.Subtotal, MoneyPlaces),
		VAT:                Round(b.VAT, MoneyPlaces),
		TotalCost:          Round(b.TotalCost, MoneyPlaces),
		DailyAverage:       Round(b.DailyAverage, MoneyPlaces),
	}
}
