package gas

// VolumeToEnergy converts a metered volume in m³ to kWh:
// volume * correction factor * calorific value / 3.6.
func VolumeToEnergy(volumeM3 float64, c Constants) (float64, error) {
	c, err := c.resolve()
	if err != nil {
		return 0, err
	}
	if !finite(volumeM3) || volumeM3 < 0 {
		return 0, invalid("volume must be a non-negative number, got %v", volumeM3)
	}
	corrected := volumeM3 * c.VolumeCorrectionFactor
	return corrected * c.CalorificValueMJPerM3 / c.KWhConversionDivisor, nil
}

// ImperialVolumeToMetric converts cubic feet to cubic metres.
func ImperialVolumeToMetric(cubicFeet float64, c Constants) (float64, error) {
	c, err := c.resolve()
	if err != nil {
		return 0, err
	}
	if !finite(cubicFeet) || cubicFeet <= 0 {
		return 0, invalid("dial volume must be positive, got %v", cubicFeet)
	}
	return cubicFeet * c.ImperialToMetricFactor, nil
}
