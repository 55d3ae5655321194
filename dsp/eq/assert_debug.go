//go:build eqdebug

package eq

import "fmt"

const debugAssertionsEnabled = true

// assertDesignable panics when a frequency or Q reaching the coefficient
// factory could not produce a proper filter.
func assertDesignable(what string, freq, q, sampleRate float64) {
	if !(freq > 0 && freq < sampleRate/2) {
		panic(fmt.Sprintf("eq: %s frequency %g outside (0, %g)", what, freq, sampleRate/2))
	}
	if !(q > 0) {
		panic(fmt.Sprintf("eq: %s Q %g must be positive", what, q))
	}
}
