package signal

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/cwbudde/algo-peq/dsp/core"
)

// Source produces consecutive blocks of a signal.
type Source interface {
	Fill(dst []float64)
}

// Generator creates deterministic sources from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used by noise sources.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator for the configured sample rate.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// atomicFloat is a float64 readable and writable from different goroutines.
type atomicFloat struct{ bits atomic.Uint64 }

func (f *atomicFloat) Load() float64   { return math.Float64frombits(f.bits.Load()) }
func (f *atomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

// Sine is a phase-continuous sine oscillator.
type Sine struct {
	sampleRate float64
	freq       atomicFloat
	amp        atomicFloat
	phase      float64
}

// Sine returns a sine source starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64) (*Sine, error) {
	if err := checkFreq("sine", freqHz, g.cfg.SampleRate); err != nil {
		return nil, err
	}
	s := &Sine{sampleRate: g.cfg.SampleRate}
	s.freq.Store(freqHz)
	s.amp.Store(amplitude)
	return s, nil
}

// SetFrequency changes the pitch without a phase jump. Values outside
// (0, Nyquist) are ignored.
func (s *Sine) SetFrequency(freqHz float64) {
	if checkFreq("sine", freqHz, s.sampleRate) == nil {
		s.freq.Store(freqHz)
	}
}

// Frequency returns the current frequency in Hz.
func (s *Sine) Frequency() float64 { return s.freq.Load() }

// SetAmplitude changes the output level.
func (s *Sine) SetAmplitude(amplitude float64) { s.amp.Store(amplitude) }

// Fill writes the next len(dst) samples.
func (s *Sine) Fill(dst []float64) {
	step := 2 * math.Pi * s.freq.Load() / s.sampleRate
	amp := s.amp.Load()
	phase := s.phase
	for i := range dst {
		dst[i] = amp * math.Sin(phase)
		phase += step
	}
	s.phase = math.Mod(phase, 2*math.Pi)
}

// Noise is a uniform white-noise source.
type Noise struct {
	rng *rand.Rand
	amp atomicFloat
}

// WhiteNoise returns a noise source in [-amplitude, amplitude) seeded from
// the generator, so equal generators produce equal noise.
func (g *Generator) WhiteNoise(amplitude float64) (*Noise, error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	n := &Noise{rng: rand.New(rand.NewSource(g.seed))}
	n.amp.Store(amplitude)
	return n, nil
}

// SetAmplitude changes the output level.
func (n *Noise) SetAmplitude(amplitude float64) { n.amp.Store(amplitude) }

// Fill writes the next len(dst) samples.
func (n *Noise) Fill(dst []float64) {
	amp := n.amp.Load()
	for i := range dst {
		dst[i] = (n.rng.Float64()*2 - 1) * amp
	}
}

// Sweep is an exponential sine sweep that restarts when it reaches its
// end frequency.
type Sweep struct {
	sampleRate float64
	start, end float64
	length     int
	amp        atomicFloat

	pos   int
	phase float64
}

// LogSweep returns a sweep from startHz to endHz over seconds.
func (g *Generator) LogSweep(startHz, endHz, seconds, amplitude float64) (*Sweep, error) {
	if err := checkFreq("sweep start", startHz, g.cfg.SampleRate); err != nil {
		return nil, err
	}
	if err := checkFreq("sweep end", endHz, g.cfg.SampleRate); err != nil {
		return nil, err
	}
	length := int(seconds * g.cfg.SampleRate)
	if length <= 0 {
		return nil, fmt.Errorf("sweep duration must be > 0: %f", seconds)
	}
	s := &Sweep{sampleRate: g.cfg.SampleRate, start: startHz, end: endHz, length: length}
	s.amp.Store(amplitude)
	return s, nil
}

// SetAmplitude changes the output level.
func (s *Sweep) SetAmplitude(amplitude float64) { s.amp.Store(amplitude) }

// FrequencyAt returns the instantaneous frequency at sample n of a pass.
func (s *Sweep) FrequencyAt(n int) float64 {
	return s.start * math.Pow(s.end/s.start, float64(n)/float64(s.length))
}

// Fill writes the next len(dst) samples.
func (s *Sweep) Fill(dst []float64) {
	amp := s.amp.Load()
	for i := range dst {
		dst[i] = amp * math.Sin(s.phase)
		s.phase += 2 * math.Pi * s.FrequencyAt(s.pos) / s.sampleRate
		s.pos++
		if s.pos >= s.length {
			s.pos = 0
			s.phase = 0
		}
	}
	s.phase = math.Mod(s.phase, 2*math.Pi)
}

func checkFreq(what string, freqHz, sampleRate float64) error {
	if !(sampleRate > 0) {
		return fmt.Errorf("%s sample rate must be > 0: %f", what, sampleRate)
	}
	if !(freqHz > 0) || freqHz >= sampleRate/2 {
		return fmt.Errorf("%s frequency must be in (0, %g): %f", what, sampleRate/2, freqHz)
	}
	return nil
}
