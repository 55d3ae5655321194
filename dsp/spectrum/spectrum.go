package spectrum

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// split copies the real and imaginary parts of in into separate slices.
func split(in []complex128) (re, im []float64) {
	re = make([]float64, len(in))
	im = make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}

// Magnitude returns |X[k]| for each complex bin.
func Magnitude(in []complex128) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}
	re, im := split(in)
	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns |X[k]|^2 for each complex bin.
func Power(in []complex128) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}
	re, im := split(in)
	vecmath.Power(out, re, im)
	return out
}

// Phase returns arg(X[k]) in radians for each complex bin.
func Phase(in []complex128) []float64 {
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = math.Atan2(imag(c), real(c))
	}
	return out
}
