package eq

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-peq/dsp/core"
)

var (
	// ErrInvalidSampleRate is returned by Prepare for a non-positive or
	// non-finite sample rate.
	ErrInvalidSampleRate = core.ErrInvalidSampleRate
	// ErrInvalidBlockSize is returned by Prepare for a non-positive block size.
	ErrInvalidBlockSize = core.ErrInvalidBlockSize
)

// Channel selects one side of the stereo pair.
type Channel int

const (
	Left Channel = iota
	Right
)

func (c Channel) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// Engine is a stereo seven-stage equalizer.
//
// Process and ProcessInterleaved belong to the audio goroutine. Prepare
// must not overlap them. UpdateParameters, Restore, Settings and the
// magnitude queries may be called from any other goroutine at any time;
// they serialize among themselves and never block the audio path.
type Engine struct {
	mu       sync.Mutex
	cfg      core.ProcessorConfig
	settings Settings

	chains [2]ChannelChain

	// scratch for ProcessInterleaved, sized by Prepare.
	left, right []float64
}

// NewEngine returns an engine prepared for the configured sample rate and
// block size (48 kHz and 512 by default) holding DefaultSettings. It panics
// if the options do not validate; use Prepare to handle the error.
func NewEngine(opts ...core.ProcessorOption) *Engine {
	cfg := core.ApplyProcessorOptions(opts...)
	e := &Engine{settings: DefaultSettings()}
	if err := e.Prepare(cfg.SampleRate, cfg.BlockSize); err != nil {
		panic("eq: " + err.Error())
	}
	return e
}

// Prepare configures the engine for a new stream. Filter state is cleared,
// and the current settings are designed for sampleRate before it returns.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlockSize}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("eq: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg = cfg
	e.left = make([]float64, maxBlockSize)
	e.right = make([]float64, maxBlockSize)
	for i := range e.chains {
		e.chains[i].Reset()
	}
	e.install()
	return nil
}

// Process filters a block of planar stereo audio in-place. Only the first
// min(len(left), len(right)) samples are processed.
func (e *Engine) Process(left, right []float64) {
	n := min(len(left), len(right))
	e.chains[Left].ProcessBlock(left[:n])
	e.chains[Right].ProcessBlock(right[:n])
}

// ProcessInterleaved filters interleaved stereo frames in-place. A trailing
// half frame is left untouched.
func (e *Engine) ProcessInterleaved(buf []float32) {
	for len(buf) >= 2 {
		n := core.Deinterleave(e.left, e.right, buf)
		if n == 0 {
			return
		}
		e.Process(e.left[:n], e.right[:n])
		core.Interleave(buf, e.left, e.right, n)
		buf = buf[2*n:]
	}
}

// UpdateParameters publishes s to both channels. It reports false, and
// does no work, when s equals the current snapshot.
//
// Values are clamped into their ranges first and frequencies are limited
// below Nyquist, so any input yields finite coefficients. Each channel
// position is swapped atomically; the two channels are updated one after
// the other.
func (e *Engine) UpdateParameters(s Settings) bool {
	s = s.Sanitize(0)

	e.mu.Lock()
	defer e.mu.Unlock()

	if s == e.settings {
		return false
	}
	e.settings = s
	e.install()
	return true
}

// install designs the current settings once and installs the same handles
// into both chains. Callers hold e.mu.
func (e *Engine) install() {
	d := NewDesign(e.settings.Sanitize(e.cfg.SampleRate), e.cfg.SampleRate)
	e.chains[Left].Install(d)
	e.chains[Right].Install(d)
}

// Settings returns the current snapshot, for persistence.
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Restore replaces the current snapshot with one loaded from persistence
// and updates the filters accordingly.
func (e *Engine) Restore(s Settings) {
	e.UpdateParameters(s)
}

// SampleRate returns the rate the filters are designed for.
func (e *Engine) SampleRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.SampleRate
}

// MaxBlockSize returns the block size passed to Prepare.
func (e *Engine) MaxBlockSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.BlockSize
}

// Chain returns the filter chain of one channel.
func (e *Engine) Chain(ch Channel) *ChannelChain {
	if ch != Left && ch != Right {
		panic(fmt.Sprintf("eq: invalid channel %d", int(ch)))
	}
	return &e.chains[ch]
}

// MagnitudeAt returns the combined linear magnitude of the chain at freqHz.
// Both channels share coefficients, so the left chain is representative.
func (e *Engine) MagnitudeAt(freqHz float64) float64 {
	return math.Sqrt(e.chains[Left].MagnitudeSquared(freqHz, e.SampleRate()))
}

// MagnitudeDB returns MagnitudeAt in dB.
func (e *Engine) MagnitudeDB(freqHz float64) float64 {
	return core.PowerToDB(e.chains[Left].MagnitudeSquared(freqHz, e.SampleRate()))
}

// MagnitudeResponse evaluates MagnitudeAt for every frequency in freqs
// into dst, which is grown as needed and returned.
func (e *Engine) MagnitudeResponse(freqs, dst []float64) []float64 {
	dst = core.EnsureLen(dst, len(freqs))
	sr := e.SampleRate()
	for i, f := range freqs {
		dst[i] = math.Sqrt(e.chains[Left].MagnitudeSquared(f, sr))
	}
	return dst
}
