package gas

import "fmt"

// Method identifies how a timed volume was measured.
type Method string

const (
	MethodMeterReading Method = "meter_reading"
	MethodTestDial     Method = "test_dial"
)

// ParseMethod maps a wire name to a Method.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodMeterReading, MethodTestDial:
		return Method(s), nil
	default:
		return "", fmt.Errorf("gas: unknown measurement method %q", s)
	}
}

// MeasurementSample is a single timed volume observation.
type MeasurementSample struct {
	Method Method

	// Metric meter readings in m³, MethodMeterReading only.
	StartReading float64
	EndReading   float64

	// Test dial volume in ft³, MethodTestDial only.
	DialVolumeCubicFeet float64

	ElapsedSeconds int
}

// RateResult is the heat input derived from a MeasurementSample.
type RateResult struct {
	VolumeM3          float64 `json:"volume_m3"`
	CorrectedVolumeM3 float64 `json:"corrected_volume_m3"`
	FlowRateM3PerHour float64 `json:"flow_rate_m3_per_hour"`
	GrossKW           float64 `json:"gross_kw"`
	NetKW             float64 `json:"net_kw"`
}

// ComputeRate computes the gross and net heat input of an appliance from a
// timed gas volume.
func ComputeRate(sample MeasurementSample, c Constants) (RateResult, error) {
	c, err := c.resolve()
	if err != nil {
		return RateResult{}, err
	}

	volume, err := sampleVolume(sample, c)
	if err != nil {
		return RateResult{}, err
	}
	if sample.ElapsedSeconds <= 0 {
		return RateResult{}, invalid("elapsed time must be positive, got %ds", sample.ElapsedSeconds)
	}

	corrected := volume * c.VolumeCorrectionFactor
	flow := corrected / float64(sample.ElapsedSeconds) * secondsPerHour
	gross := flow * c.CalorificValueMJPerM3 / c.KWhConversionDivisor
	net := gross / c.GrossToNetRatio

	res := RateResult{
		VolumeM3:          volume,
		CorrectedVolumeM3: corrected,
		FlowRateM3PerHour: flow,
		GrossKW:           gross,
		NetKW:             net,
	}
	if !finite(res.CorrectedVolumeM3, res.FlowRateM3PerHour, res.GrossKW, res.NetKW) {
		return RateResult{}, invalid("rate overflowed")
	}
	return res, nil
}

func sampleVolume(sample MeasurementSample, c Constants) (float64, error) {
	switch sample.Method {
	case MethodMeterReading:
		if !finite(sample.StartReading, sample.EndReading) {
			return 0, invalid("meter readings must be numbers")
		}
		volume := sample.EndReading - sample.StartReading
		if volume <= 0 {
			return 0, invalid("end reading %v must exceed start reading %v", sample.EndReading, sample.StartReading)
		}
		return volume, nil
	case MethodTestDial:
		return ImperialVolumeToMetric(sample.DialVolumeCubicFeet, c)
	default:
		return 0, invalid("unknown measurement method %q", sample.Method)
	}
}
