package gas

// StandardTestDials lists the test dial sizes found on imperial meters, in ft³.
var StandardTestDials = []float64{0.5, 1, 2, 5}

// IsStandardDial reports whether cubicFeet matches a known test dial size.
// Non-standard sizes are still accepted by ComputeRate.
func IsStandardDial(cubicFeet float64) bool {
	for _, d := range StandardTestDials {
		if d == cubicFeet {
			return true
		}
	}
	return false
}
