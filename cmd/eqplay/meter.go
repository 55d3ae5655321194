//go:build !fastmath

package main

import "math"

// peakDBFS converts a linear peak to dB full scale, floored at -120.
func peakDBFS(peak float64) float64 {
	if peak <= 1e-6 {
		return -120
	}
	return 20 * math.Log10(peak)
}
