package domain

import "math"

// ComputeAmount returns hours * rate rounded half away from zero to whole
// cents. Rounding absorbs binary drift such as 3 * 100.1 = 300.29999999999995.
func ComputeAmount(hours, rate float64) float64 {
	return math.Round(hours*rate*100) / 100
}
