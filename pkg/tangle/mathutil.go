package tangle

import "math"

func floatPow(a, b float64) float64 { return math.Pow(a, b) }

func floatCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
