package response

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/signal"
	"github.com/cwbudde/algo-peq/dsp/spectrum"
	"github.com/cwbudde/algo-peq/dsp/window"
)

// Steady-state tone measurement lengths.
const (
	toneSettleSeconds   = 0.5
	toneAnalysisSeconds = 0.25
	toneMinPeriods      = 16
)

// Gain is the complex response of a processor at one frequency.
type Gain struct {
	Frequency float64
	Magnitude float64
	Phase     float64 // radians, in (-π, π]
}

// DB returns the magnitude in dB.
func (g Gain) DB() float64 { return core.LinearToDB(g.Magnitude) }

// Tone drives p with a unit sine at freqHz, lets it settle and compares
// Hann-windowed Goertzel bins of output and input. Unlike Measure this
// observes the processor in steady state, so it reports phase as well.
func Tone(p BlockProcessor, freqHz, sampleRate float64) (Gain, error) {
	if p == nil {
		return Gain{}, ErrNilProcessor
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Gain{}, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	gen := signal.NewGenerator(core.WithSampleRate(sampleRate))
	cfg := gen.Config()
	src, err := gen.Sine(freqHz, 1)
	if err != nil {
		return Gain{}, fmt.Errorf("response: %w", err)
	}

	settle := cfg.Frames(toneSettleSeconds)
	analysis := max(cfg.Frames(toneAnalysisSeconds), cfg.Frames(toneMinPeriods/freqHz))

	in := make([]float64, settle+analysis)
	src.Fill(in)
	out := make([]float64, len(in))
	copy(out, in)
	p.ProcessBlock(out)

	inBin, err := windowedBin(in[settle:], freqHz, sampleRate)
	if err != nil {
		return Gain{}, err
	}
	outBin, err := windowedBin(out[settle:], freqHz, sampleRate)
	if err != nil {
		return Gain{}, err
	}

	h := outBin / inBin
	return Gain{Frequency: freqHz, Magnitude: cmplx.Abs(h), Phase: cmplx.Phase(h)}, nil
}

func windowedBin(x []float64, freqHz, sampleRate float64) (complex128, error) {
	buf := make([]float64, len(x))
	copy(buf, x)
	window.Apply(window.TypeHann, buf)

	g, err := spectrum.NewGoertzel(freqHz, sampleRate)
	if err != nil {
		return 0, fmt.Errorf("response: %w", err)
	}
	g.ProcessBlock(buf)
	return g.Bin(), nil
}
