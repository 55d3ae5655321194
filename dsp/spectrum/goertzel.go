package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Goertzel evaluates a single DFT term over all samples processed since
// the last Reset. Bin is exact for any frequency, not only integer bins;
// leakage from other components still applies unless the input is
// windowed.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	omega      float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates an analyzer for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	g := &Goertzel{frequency: frequency, sampleRate: sampleRate}
	g.omega = 2 * math.Pi * frequency / sampleRate
	g.coeff = 2 * math.Cos(g.omega)
	return g, nil
}

// Frequency returns the analyzed frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// ProcessBlock accumulates a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X|^2 of the accumulated samples.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X|.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}
	return math.Sqrt(p)
}

// Bin returns X = sum x[n]·e^(-jωn) over the accumulated samples.
func (g *Goertzel) Bin() complex128 {
	if g.n == 0 {
		return 0
	}
	y := complex(g.s0, 0) - cmplx.Exp(complex(0, -g.omega))*complex(g.s1, 0)
	return y * cmplx.Exp(complex(0, -g.omega*float64(g.n-1)))
}
