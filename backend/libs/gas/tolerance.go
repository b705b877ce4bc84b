package gas

import "math"

// ToleranceBand is the accepted deviation between measured and declared net
// heat input.
const ToleranceBand = 0.05

// toleranceEpsilon absorbs float noise at the band edge so that exactly 5%
// stays inside.
const toleranceEpsilon = 1e-9

// ToleranceResult compares a measured net heat input with the appliance
// data plate.
type ToleranceResult struct {
	DeclaredKW       float64 `json:"declared_kw"`
	DeviationPercent float64 `json:"deviation_percent"`
	WithinTolerance  bool    `json:"within_tolerance"`
}

// CheckTolerance reports whether netKW is within ±5% of declaredKW.
// DeviationPercent is signed: negative means the appliance under-fires.
func CheckTolerance(netKW, declaredKW float64) (ToleranceResult, error) {
	if !finite(declaredKW) || declaredKW <= 0 {
		return ToleranceResult{}, invalid("declared rating must be positive, got %v", declaredKW)
	}
	if !finite(netKW) || netKW < 0 {
		return ToleranceResult{}, invalid("net heat input must be a non-negative number, got %v", netKW)
	}

	deviation := (netKW - declaredKW) / declaredKW
	return ToleranceResult{
		DeclaredKW:       declaredKW,
		DeviationPercent: deviation * 100,
		WithinTolerance:  math.Abs(deviation) <= ToleranceBand+toleranceEpsilon,
	}, nil
}
