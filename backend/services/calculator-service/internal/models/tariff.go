package models

import (
	"time"

	"gascalc/backend/libs/gas"
)

// TariffPreset is a published supplier tariff used to pre-fill bill estimates.
type TariffPreset struct {
	ID                        int64     `db:"id" json:"id" yaml:"id"`
	Name                      string    `db:"name" json:"name" yaml:"name"`
	Region                    string    `db:"region" json:"region" yaml:"region"`
	UnitRatePencePerKWh       float64   `db:"unit_rate_pence_per_kwh" json:"unit_rate_pence_per_kwh" yaml:"unitRatePence"`
	StandingChargePencePerDay float64   `db:"standing_charge_pence_per_day" json:"standing_charge_pence_per_day" yaml:"standingChargePence"`
	VATRate                   float64   `db:"vat_rate" json:"vat_rate" yaml:"vatRate"`
	CalorificValueMJPerM3     float64   `db:"calorific_value_mj_per_m3" json:"calorific_value_mj_per_m3,omitempty" yaml:"calorificValue"`
	IsActive                  bool      `db:"is_active" json:"is_active" yaml:"isActive"`
	UpdatedAt                 time.Time `db:"updated_at" json:"updated_at" yaml:"-"`
}

// TariffInput returns the billing inputs carried by the preset.
func (p TariffPreset) TariffInput() gas.TariffInput {
	vat := p.VATRate
	return gas.TariffInput{
		UnitRatePencePerKWh:       p.UnitRatePencePerKWh,
		StandingChargePencePerDay: p.StandingChargePencePerDay,
		VATRate:                   &vat,
	}
}
