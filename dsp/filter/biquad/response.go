package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) of a biquad
// at the given frequency (Hz) and sample rate (Hz).
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 using a closed-form expression that
// avoids complex exponentials.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	return num / den
}

// MagnitudeDB returns 10*log10(|H(f)|^2).
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns the phase response in radians at the given frequency,
// in [-pi, pi].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// ImpulseResponse returns the first n samples of the section's impulse
// response computed on a scratch stage.
func (c Coefficients) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	s := NewStage(c)
	ir := make([]float64, n)
	ir[0] = s.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = s.ProcessSample(0)
	}
	return ir
}

// MagnitudeSquared returns the stage's current |H(f)|^2. A bypassed stage
// or one without coefficients contributes unity.
func (s *Stage) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	c := s.coeffs.Load()
	if c == nil || s.bypassed.Load() {
		return 1
	}
	return c.MagnitudeSquared(freqHz, sampleRate)
}

// Response returns the stage's current complex response. A bypassed stage
// or one without coefficients contributes 1.
func (s *Stage) Response(freqHz, sampleRate float64) complex128 {
	c := s.coeffs.Load()
	if c == nil || s.bypassed.Load() {
		return 1
	}
	return c.Response(freqHz, sampleRate)
}

// CascadeMagnitudeSquared returns |H(f)|^2 of sections applied in series.
func CascadeMagnitudeSquared(sections []Coefficients, freqHz, sampleRate float64) float64 {
	m := 1.0
	for i := range sections {
		m *= sections[i].MagnitudeSquared(freqHz, sampleRate)
	}
	return m
}

// CascadeMagnitudeDB returns the magnitude of sections applied in series, in dB.
func CascadeMagnitudeDB(sections []Coefficients, freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(CascadeMagnitudeSquared(sections, freqHz, sampleRate))
}
