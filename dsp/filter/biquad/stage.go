package biquad

import (
	"sync/atomic"

	"github.com/cwbudde/algo-peq/dsp/core"
	archregistry "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
)

// Stage is a single biquad with swappable coefficients, a bypass flag and
// channel-local delay state.
//
// SetCoefficients, Install, SetBypassed and the read accessors may be
// called from any goroutine. ProcessSample, ProcessBlock, Reset and the
// state accessors belong to the single goroutine that owns the audio path.
// Concurrent writers of coefficients must serialize among themselves.
//
// The zero Stage has no coefficients and passes samples through unchanged.
type Stage struct {
	coeffs   atomic.Pointer[Coefficients]
	bypassed atomic.Bool

	d0, d1 float64
}

// NewStage returns a Stage with the given coefficients and zero state.
func NewStage(c Coefficients) *Stage {
	s := &Stage{}
	s.coeffs.Store(&c)
	return s
}

// SetCoefficients installs c for subsequent processing. It reports false
// and leaves the stage untouched when c equals the current set. Delay state
// is never reset.
func (s *Stage) SetCoefficients(c Coefficients) bool {
	if cur := s.coeffs.Load(); cur != nil && *cur == c {
		return false
	}
	s.coeffs.Store(&c)
	return true
}

// Install publishes a prepared coefficient handle. The handle may be shared
// by several stages (one per channel) and must not be modified afterwards.
// It reports false when the stage already holds an equal set, in which case
// the current handle is kept.
func (s *Stage) Install(c *Coefficients) bool {
	if c == nil {
		panic("biquad: Install with nil coefficients")
	}
	if cur := s.coeffs.Load(); cur != nil && (cur == c || *cur == *c) {
		return false
	}
	s.coeffs.Store(c)
	return true
}

// Coefficients returns the currently installed set, or Identity if none
// has been installed.
func (s *Stage) Coefficients() Coefficients {
	if c := s.coeffs.Load(); c != nil {
		return *c
	}
	return Identity
}

// Handle returns the installed coefficient handle, or nil.
func (s *Stage) Handle() *Coefficients {
	return s.coeffs.Load()
}

// SetBypassed switches the stage between filtering and pass-through.
// Bypassing leaves the delay state as it is, so re-enabling continues from
// where the filter stopped.
func (s *Stage) SetBypassed(bypassed bool) {
	s.bypassed.Store(bypassed)
}

// Bypassed reports whether the stage currently passes samples through.
func (s *Stage) Bypassed() bool {
	return s.bypassed.Load()
}

// ProcessSample filters one input sample and returns the output.
func (s *Stage) ProcessSample(x float64) float64 {
	c := s.coeffs.Load()
	if c == nil || s.bypassed.Load() {
		return x
	}

	y := c.B0*x + s.d0
	s.d0 = c.B1*x - c.A1*y + s.d1
	s.d1 = c.B2*x - c.A2*y

	return y
}

// ProcessBlock filters buf in-place. The coefficient handle and bypass flag
// are read once, so a whole block is processed with one consistent set.
// Zero-alloc.
func (s *Stage) ProcessBlock(buf []float64) {
	c := s.coeffs.Load()
	if c == nil || s.bypassed.Load() || len(buf) == 0 {
		return
	}

	kernel := processBlockKernel()
	d0, d1 := kernel(archregistry.Coefficients{
		B0: c.B0,
		B1: c.B1,
		B2: c.B2,
		A1: c.A1,
		A2: c.A2,
	}, s.d0, s.d1, buf)

	s.d0 = core.FlushDenormals(d0)
	s.d1 = core.FlushDenormals(d1)
}

// Reset clears the delay line to zero.
func (s *Stage) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Stage) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Stage) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
