// Package mathutil provides the small numeric helpers shared by the
// analytics processors: clamping, percentage and moment calculations.
package mathutil

import "math"

// Clamp limits v to the [lo, hi] range.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// ClampPercent limits v to the [0, 100] range.
func ClampPercent(v float64) float64 {
	return Clamp(v, 0, 100)
}

// Percent returns part/total as a percentage, zero when total is zero.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(part) / float64(total) * 100
}

// RoundPercent returns part/total as a percentage rounded to the nearest
// integer, zero when total is zero.
func RoundPercent(part, total int) int {
	return int(math.Round(Percent(part, total)))
}

// Mean returns the arithmetic mean of values, zero for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values, zero for
// slices shorter than two elements.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)

	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}

	return math.Sqrt(sumSquares / float64(len(values)))
}
