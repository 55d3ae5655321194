//go:build fastmath

package main

import "github.com/meko-christian/algo-approx"

const ln10 = 2.302585092994045684017991454684

// peakDBFS converts a linear peak to dB full scale, floored at -120.
func peakDBFS(peak float64) float64 {
	if peak <= 1e-6 {
		return -120
	}
	return 20 * approx.FastLog(peak) / ln10
}
