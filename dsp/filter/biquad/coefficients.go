package biquad

import "math"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
//
// Coefficients is a comparable value; two sets are equal iff all five
// fields are equal.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity is the pass-through section H(z) = 1.
var Identity = Coefficients{B0: 1}

// Equal reports whether c and o hold bit-for-bit the same five values.
func (c Coefficients) Equal(o Coefficients) bool {
	return c == o
}

// IsFinite reports whether none of the coefficients is NaN or infinite.
func (c Coefficients) IsFinite() bool {
	for _, v := range [5]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsIdentity reports whether the section passes its input unchanged.
func (c Coefficients) IsIdentity() bool {
	return c == Identity
}
