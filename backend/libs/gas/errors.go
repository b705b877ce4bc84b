package gas

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMeasurement is returned whenever an input cannot produce a
// meaningful result. Callers withhold the result; it is never a fault.
var ErrInvalidMeasurement = errors.New("gas: invalid measurement")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidMeasurement, fmt.Sprintf(format, args...))
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
