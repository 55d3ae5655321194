package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-peq/dsp/spectrum"
)

// Errors returned by Measure.
var (
	ErrInvalidFFTSize    = errors.New("response: FFT size must be a power of two >= 2")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrNilProcessor      = errors.New("response: nil processor")
)

// BlockProcessor filters a buffer in-place. eq.ChannelChain, eq.CutCascade
// and biquad.Stage all satisfy it.
type BlockProcessor interface {
	ProcessBlock(buf []float64)
}

// Response is a measured magnitude spectrum from DC to Nyquist.
type Response struct {
	SampleRate float64
	FFTSize    int

	// Magnitude holds |H| for bins 0..FFTSize/2.
	Magnitude []float64
	// Impulse is the captured impulse response.
	Impulse []float64
}

// Measure feeds a unit impulse of fftSize samples through p and returns its
// magnitude spectrum. The processor's state is advanced; pass a freshly
// reset processor for a clean measurement.
func Measure(p BlockProcessor, fftSize int, sampleRate float64) (*Response, error) {
	if p == nil {
		return nil, ErrNilProcessor
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	ir := make([]float64, fftSize)
	ir[0] = 1
	p.ProcessBlock(ir)

	mag, err := magnitudeSpectrum(ir)
	if err != nil {
		return nil, err
	}

	return &Response{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Magnitude:  mag,
		Impulse:    ir,
	}, nil
}

// magnitudeSpectrum returns |FFT(x)| for the non-negative frequency bins.
func magnitudeSpectrum(x []float64) ([]float64, error) {
	n := len(x)
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	return spectrum.Magnitude(out[:n/2+1]), nil
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (r *Response) BinFrequency(k int) float64 {
	return float64(k) * r.SampleRate / float64(r.FFTSize)
}

// At returns |H(freqHz)| by linear interpolation between bins. Frequencies
// outside [0, Nyquist] are clamped to the edge bins.
func (r *Response) At(freqHz float64) float64 {
	last := len(r.Magnitude) - 1
	pos := freqHz * float64(r.FFTSize) / r.SampleRate
	switch {
	case !(pos > 0):
		return r.Magnitude[0]
	case pos >= float64(last):
		return r.Magnitude[last]
	}
	k := int(pos)
	frac := pos - float64(k)
	return r.Magnitude[k]*(1-frac) + r.Magnitude[k+1]*frac
}

// DB returns At(freqHz) in dB.
func (r *Response) DB(freqHz float64) float64 {
	return 20 * math.Log10(r.At(freqHz))
}

// MaxDeviationDB compares the measurement with an analytic magnitude
// function over the bins in [loHz, hiHz] and returns the largest absolute
// difference in dB.
func (r *Response) MaxDeviationDB(analytic func(freqHz float64) float64, loHz, hiHz float64) float64 {
	worst := 0.0
	for k := range r.Magnitude {
		f := r.BinFrequency(k)
		if f < loHz || f > hiHz {
			continue
		}
		d := math.Abs(20*math.Log10(r.Magnitude[k]) - 20*math.Log10(analytic(f)))
		worst = math.Max(worst, d)
	}
	return worst
}
