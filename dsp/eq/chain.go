package eq

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

// Position names a slot of the channel chain, in processing order.
type Position int

const (
	LowCut Position = iota
	LowShelf
	Peak1
	Peak2
	Peak3
	HighShelf
	HighCut

	NumPositions
)

var positionNames = [NumPositions]string{
	"LowCut", "LowShelf", "Peak1", "Peak2", "Peak3", "HighShelf", "HighCut",
}

func (p Position) String() string {
	if p < 0 || p >= NumPositions {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionNames[p]
}

// ChannelChain is the seven-position filter topology for one channel.
// Its delay state belongs to that channel alone.
type ChannelChain struct {
	lowCut    CutCascade
	lowShelf  biquad.Stage
	peaks     [3]biquad.Stage
	highShelf biquad.Stage
	highCut   CutCascade
}

// ApplySnapshot designs s at sampleRate and installs the result.
func (c *ChannelChain) ApplySnapshot(s Settings, sampleRate float64) {
	c.Install(NewDesign(s, sampleRate))
}

// Install publishes a precomputed design into every position.
func (c *ChannelChain) Install(d Design) {
	c.lowCut.Install(d.LowCut, d.LowCutSlope)
	c.lowShelf.Install(d.LowShelf)
	for i := range c.peaks {
		c.peaks[i].Install(d.Peak[i])
	}
	c.highShelf.Install(d.HighShelf)
	c.highCut.Install(d.HighCut, d.HighCutSlope)
}

// LowCut returns the low-cut cascade.
func (c *ChannelChain) LowCut() *CutCascade { return &c.lowCut }

// HighCut returns the high-cut cascade.
func (c *ChannelChain) HighCut() *CutCascade { return &c.highCut }

// Stage returns the single stage at p. It panics for the cut positions,
// which hold a CutCascade instead.
func (c *ChannelChain) Stage(p Position) *biquad.Stage {
	switch p {
	case LowShelf:
		return &c.lowShelf
	case Peak1, Peak2, Peak3:
		return &c.peaks[p-Peak1]
	case HighShelf:
		return &c.highShelf
	}
	panic(fmt.Sprintf("eq: %v has no single stage", p))
}

// ProcessSample runs x through all positions in order.
func (c *ChannelChain) ProcessSample(x float64) float64 {
	x = c.lowCut.ProcessSample(x)
	x = c.lowShelf.ProcessSample(x)
	for i := range c.peaks {
		x = c.peaks[i].ProcessSample(x)
	}
	x = c.highShelf.ProcessSample(x)
	return c.highCut.ProcessSample(x)
}

// ProcessBlock filters buf in-place. The result equals calling
// ProcessSample on each element, up to floating-point contraction.
func (c *ChannelChain) ProcessBlock(buf []float64) {
	c.lowCut.ProcessBlock(buf)
	c.lowShelf.ProcessBlock(buf)
	for i := range c.peaks {
		c.peaks[i].ProcessBlock(buf)
	}
	c.highShelf.ProcessBlock(buf)
	c.highCut.ProcessBlock(buf)
}

// MagnitudeSquared returns the chain's combined |H(f)|^2 over the
// non-bypassed stages.
func (c *ChannelChain) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	m := c.lowCut.MagnitudeSquared(freqHz, sampleRate)
	m *= c.lowShelf.MagnitudeSquared(freqHz, sampleRate)
	for i := range c.peaks {
		m *= c.peaks[i].MagnitudeSquared(freqHz, sampleRate)
	}
	m *= c.highShelf.MagnitudeSquared(freqHz, sampleRate)
	return m * c.highCut.MagnitudeSquared(freqHz, sampleRate)
}

// Reset clears the delay state of every stage.
func (c *ChannelChain) Reset() {
	c.lowCut.Reset()
	c.lowShelf.Reset()
	for i := range c.peaks {
		c.peaks[i].Reset()
	}
	c.highShelf.Reset()
	c.highCut.Reset()
}
