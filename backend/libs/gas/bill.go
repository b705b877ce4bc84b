package gas

// TariffInput describes the prices applied to a billing interval.
type TariffInput struct {
	UnitRatePencePerKWh       float64 `json:"unit_rate_pence_per_kwh"`
	StandingChargePencePerDay float64 `json:"standing_charge_pence_per_day"`
	// VATRate is a fraction (0.05 = 5%). Nil uses Constants.DefaultVATRate.
	VATRate *float64 `json:"vat_rate,omitempty"`
}

// BillResult is an itemized gas bill. Money is in pounds.
type BillResult struct {
	GasUsedM3          float64 `json:"gas_used_m3"`
	GasUsedKWh         float64 `json:"gas_used_kwh"`
	UnitCost           float64 `json:"unit_cost"`
	StandingChargeCost float64 `json:"standing_charge_cost"`
	Subtotal           float64 `json:"subtotal"`
	VAT                float64 `json:"vat"`
	TotalCost          float64 `json:"total_cost"`
	DailyAverage       float64 `json:"daily_average"`
}

// VATRateOr returns the tariff VAT rate, or fallback when none was given.
func (t TariffInput) VATRateOr(fallback float64) float64 {
	if t.VATRate == nil {
		return fallback
	}
	return *t.VATRate
}

// ComputeBill estimates the bill for gas metered between start and end
// readings (m³) over days days.
func ComputeBill(start, end float64, days int, tariff TariffInput, c Constants) (BillResult, error) {
	c, err := c.resolve()
	if err != nil {
		return BillResult{}, err
	}
	vatRate := tariff.VATRateOr(c.DefaultVATRate)

	switch {
	case !finite(start, end):
		return BillResult{}, invalid("meter readings must be numbers")
	case end <= start:
		return BillResult{}, invalid("end reading %v must exceed start reading %v", end, start)
	case days <= 0:
		return BillResult{}, invalid("billing days must be positive, got %d", days)
	case !finite(tariff.UnitRatePencePerKWh) || tariff.UnitRatePencePerKWh < 0:
		return BillResult{}, invalid("unit rate must not be negative, got %v", tariff.UnitRatePencePerKWh)
	case !finite(tariff.StandingChargePencePerDay) || tariff.StandingChargePencePerDay < 0:
		return BillResult{}, invalid("standing charge must not be negative, got %v", tariff.StandingChargePencePerDay)
	case !finite(vatRate) || vatRate < 0:
		return BillResult{}, invalid("VAT rate must not be negative, got %v", vatRate)
	}

	used := end - start
	kwh, err := VolumeToEnergy(used, c)
	if err != nil {
		return BillResult{}, err
	}

	unitCost := kwh * tariff.UnitRatePencePerKWh / penceInPound
	standing := float64(days) * tariff.StandingChargePencePerDay / penceInPound
	subtotal := unitCost + standing
	vat := subtotal * vatRate
	total := subtotal + vat

	res := BillResult{
		GasUsedM3:          used,
		GasUsedKWh:         kwh,
		UnitCost:           unitCost,
		StandingChargeCost: standing,
		Subtotal:           subtotal,
		VAT:                vat,
		TotalCost:          total,
		DailyAverage:       total / float64(days),
	}
	if !finite(res.GasUsedM3, res.GasUsedKWh, res.TotalCost) {
		return BillResult{}, invalid("bill overflowed")
	}
	return res, nil
}
