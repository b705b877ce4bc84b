package gas

// UK natural-gas defaults.
const (
	DefaultCalorificValueMJPerM3  = 39.5
	DefaultVolumeCorrectionFactor = 1.02264
	DefaultKWhConversionDivisor   = 3.6
	DefaultGrossToNetRatio        = 1.11
	DefaultImperialToMetricFactor = 0.0283168
	DefaultVATRate                = 0.05

	secondsPerHour = 3600
	penceInPound   = 100
)

// Constants holds the conversion factors used by a single calculation.
// The zero value means "use the defaults".
type Constants struct {
	CalorificValueMJPerM3  float64 `json:"calorific_value_mj_per_m3,omitempty" yaml:"calorificValue" env:"GAS_CALORIFIC_VALUE"`
	VolumeCorrectionFactor float64 `json:"volume_correction_factor,omitempty" yaml:"volumeCorrectionFactor" env:"GAS_VOLUME_CORRECTION_FACTOR"`
	KWhConversionDivisor   float64 `json:"kwh_conversion_divisor,omitempty" yaml:"kwhConversionDivisor" env:"GAS_KWH_DIVISOR"`
	GrossToNetRatio        float64 `json:"gross_to_net_ratio,omitempty" yaml:"grossToNetRatio" env:"GAS_GROSS_TO_NET_RATIO"`
	ImperialToMetricFactor float64 `json:"imperial_to_metric_factor,omitempty" yaml:"imperialToMetricFactor" env:"GAS_IMPERIAL_FACTOR"`
	DefaultVATRate         float64 `json:"default_vat_rate,omitempty" yaml:"defaultVatRate" env:"GAS_DEFAULT_VAT_RATE"`
}

// DefaultConstants returns the UK industry defaults.
func DefaultConstants() Constants {
	return Constants{
		CalorificValueMJPerM3:  DefaultCalorificValueMJPerM3,
		VolumeCorrectionFactor: DefaultVolumeCorrectionFactor,
		KWhConversionDivisor:   DefaultKWhConversionDivisor,
		GrossToNetRatio:        DefaultGrossToNetRatio,
		ImperialToMetricFactor: DefaultImperialToMetricFactor,
		DefaultVATRate:         DefaultVATRate,
	}
}

// WithDefaults returns a copy where every unset (zero) field takes its
// default value. Negative or non-finite fields are left alone so Validate
// can reject them.
func (c Constants) WithDefaults() Constants {
	d := DefaultConstants()
	if c.CalorificValueMJPerM3 == 0 {
		c.CalorificValueMJPerM3 = d.CalorificValueMJPerM3
	}
	if c.VolumeCorrectionFactor == 0 {
		c.VolumeCorrectionFactor = d.VolumeCorrectionFactor
	}
	if c.KWhConversionDivisor == 0 {
		c.KWhConversionDivisor = d.KWhConversionDivisor
	}
	if c.GrossToNetRatio == 0 {
		c.GrossToNetRatio = d.GrossToNetRatio
	}
	if c.ImperialToMetricFactor == 0 {
		c.ImperialToMetricFactor = d.ImperialToMetricFactor
	}
	if c.DefaultVATRate == 0 {
		c.DefaultVATRate = d.DefaultVATRate
	}
	return c
}

// Validate checks that every factor is finite and strictly positive.
// DefaultVATRate may be zero.
func (c Constants) Validate() error {
	factors := []struct {
		name  string
		value float64
	}{
		{"calorific value", c.CalorificValueMJPerM3},
		{"volume correction factor", c.VolumeCorrectionFactor},
		{"kWh conversion divisor", c.KWhConversionDivisor},
		{"gross to net ratio", c.GrossToNetRatio},
		{"imperial to metric factor", c.ImperialToMetricFactor},
	}
	for _, f := range factors {
		if !finite(f.value) || f.value <= 0 {
			return invalid("%s must be positive, got %v", f.name, f.value)
		}
	}
	if !finite(c.DefaultVATRate) || c.DefaultVATRate < 0 {
		return invalid("default VAT rate must not be negative, got %v", c.DefaultVATRate)
	}
	return nil
}

// resolve fills defaults and validates in one step.
func (c Constants) resolve() (Constants, error) {
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Constants{}, err
	}
	return c, nil
}
