package eq

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

// PeakCoefficients designs peak band 1, 2 or 3 of s. Any other band index
// panics.
func PeakCoefficients(s Settings, sampleRate float64, band int) biquad.Coefficients {
	if band < 1 || band > len(s.Peak) {
		panic(fmt.Sprintf("eq: peak band %d out of range [1,%d]", band, len(s.Peak)))
	}
	b := s.Peak[band-1]
	assertDesignable("peak", b.Freq, b.Q, sampleRate)
	return design.Peak(b.Freq, b.GainDB, b.Q, sampleRate)
}

// LowShelfCoefficients designs the low shelf of s.
func LowShelfCoefficients(s Settings, sampleRate float64) biquad.Coefficients {
	b := s.LowShelf
	assertDesignable("low shelf", b.Freq, b.Q, sampleRate)
	return design.LowShelf(b.Freq, b.GainDB, b.Q, sampleRate)
}

// HighShelfCoefficients designs the high shelf of s.
func HighShelfCoefficients(s Settings, sampleRate float64) biquad.Coefficients {
	b := s.HighShelf
	assertDesignable("high shelf", b.Freq, b.Q, sampleRate)
	return design.HighShelf(b.Freq, b.GainDB, b.Q, sampleRate)
}

// LowCutCoefficients designs the Butterworth high-pass of s as exactly
// slope+1 sections in processing order.
func LowCutCoefficients(s Settings, sampleRate float64) []biquad.Coefficients {
	assertDesignable("low cut", s.LowCut.Freq, s.LowCut.Q, sampleRate)
	return design.ButterworthHP(s.LowCut.Freq, cutSlope(s.LowCut.Slope).Order(), sampleRate)
}

// HighCutCoefficients designs the Butterworth low-pass of s as exactly
// slope+1 sections in processing order.
func HighCutCoefficients(s Settings, sampleRate float64) []biquad.Coefficients {
	assertDesignable("high cut", s.HighCut.Freq, s.HighCut.Q, sampleRate)
	return design.ButterworthLP(s.HighCut.Freq, cutSlope(s.HighCut.Slope).Order(), sampleRate)
}

// cutSlope maps an undefined slope onto the nearest defined one.
func cutSlope(s Slope) Slope {
	switch {
	case s < Slope12:
		return Slope12
	case s > Slope48:
		return Slope48
	}
	return s
}

// Design is the full set of coefficients for one channel chain. Its
// handles are immutable once built and may be installed into any number
// of chains.
type Design struct {
	LowCut    []*biquad.Coefficients
	LowShelf  *biquad.Coefficients
	Peak      [3]*biquad.Coefficients
	HighShelf *biquad.Coefficients
	HighCut   []*biquad.Coefficients

	LowCutSlope  Slope
	HighCutSlope Slope
}

// NewDesign computes every position of s at sampleRate.
func NewDesign(s Settings, sampleRate float64) Design {
	d := Design{
		LowCut:       handles(LowCutCoefficients(s, sampleRate)),
		LowShelf:     handle(LowShelfCoefficients(s, sampleRate)),
		HighShelf:    handle(HighShelfCoefficients(s, sampleRate)),
		HighCut:      handles(HighCutCoefficients(s, sampleRate)),
		LowCutSlope:  cutSlope(s.LowCut.Slope),
		HighCutSlope: cutSlope(s.HighCut.Slope),
	}
	for i := range d.Peak {
		d.Peak[i] = handle(PeakCoefficients(s, sampleRate, i+1))
	}
	return d
}

func handle(c biquad.Coefficients) *biquad.Coefficients {
	return &c
}

func handles(cs []biquad.Coefficients) []*biquad.Coefficients {
	out := make([]*biquad.Coefficients, len(cs))
	for i := range cs {
		out[i] = &cs[i]
	}
	return out
}
