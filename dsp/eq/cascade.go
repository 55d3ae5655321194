package eq

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

// CutCascade is a fixed series of MaxCutSections stages of which the first
// slope+1 are active. Inactive slots are bypassed and keep their last
// coefficients and state.
type CutCascade struct {
	stages [MaxCutSections]biquad.Stage
}

// Configure installs coeffs into slots 0..slope and bypasses the rest.
// len(coeffs) must equal slope.Sections().
func (c *CutCascade) Configure(coeffs []biquad.Coefficients, slope Slope) {
	hs := make([]*biquad.Coefficients, len(coeffs))
	for i := range coeffs {
		hs[i] = &coeffs[i]
	}
	c.Install(hs, slope)
}

// Install is Configure for prepared, shareable coefficient handles.
func (c *CutCascade) Install(coeffs []*biquad.Coefficients, slope Slope) {
	if !slope.Valid() {
		panic(fmt.Sprintf("eq: invalid cut slope %d", int(slope)))
	}
	n := slope.Sections()
	if len(coeffs) != n {
		panic(fmt.Sprintf("eq: %v cascade needs %d sections, got %d", slope, n, len(coeffs)))
	}

	// Bypass the slots that are going away first, then update and enable
	// the active ones in processing order. An active slot is never bypassed
	// in between.
	for i := n; i < MaxCutSections; i++ {
		c.stages[i].SetBypassed(true)
	}
	for i := 0; i < n; i++ {
		c.stages[i].Install(coeffs[i])
		c.stages[i].SetBypassed(false)
	}
}

// ActiveSections returns the number of slots currently filtering.
func (c *CutCascade) ActiveSections() int {
	n := 0
	for i := range c.stages {
		if !c.stages[i].Bypassed() && c.stages[i].Handle() != nil {
			n++
		}
	}
	return n
}

// Stage returns slot i for inspection.
func (c *CutCascade) Stage(i int) *biquad.Stage {
	return &c.stages[i]
}

// ProcessSample runs x through slots 0..3 in order.
func (c *CutCascade) ProcessSample(x float64) float64 {
	for i := range c.stages {
		x = c.stages[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in-place through every slot.
func (c *CutCascade) ProcessBlock(buf []float64) {
	for i := range c.stages {
		c.stages[i].ProcessBlock(buf)
	}
}

// MagnitudeSquared returns the product of the active slots' |H(f)|^2.
func (c *CutCascade) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	m := 1.0
	for i := range c.stages {
		m *= c.stages[i].MagnitudeSquared(freqHz, sampleRate)
	}
	return m
}

// Reset clears the state of every slot, active or not.
func (c *CutCascade) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}
