package main

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/dsp/signal"
)

// bytesPerFrame is one stereo frame of float32 little-endian samples.
const bytesPerFrame = 2 * 4

// renderer pulls a mono source through the engine and encodes the stereo
// result for the audio device. Read runs on the device goroutine; volume
// and peak are shared with the UI through atomics.
type renderer struct {
	engine *eq.Engine
	src    signal.Source

	volume atomic.Uint64 // float64 bits
	peak   atomic.Uint64 // float64 bits

	mono   []float64
	frames []float32
}

func newRenderer(e *eq.Engine, src signal.Source, volume float64) *renderer {
	r := &renderer{engine: e, src: src}
	r.SetVolume(volume)
	return r
}

// SetVolume sets the linear output gain, clamped to [0, 2].
func (r *renderer) SetVolume(v float64) {
	r.volume.Store(math.Float64bits(core.Clamp(v, 0, 2)))
}

func (r *renderer) Volume() float64 { return math.Float64frombits(r.volume.Load()) }

// Peak returns the absolute peak of the most recent block after the EQ.
func (r *renderer) Peak() float64 { return math.Float64frombits(r.peak.Load()) }

func (r *renderer) Read(p []byte) (int, error) {
	n := len(p) / bytesPerFrame
	if n == 0 {
		return 0, nil
	}

	r.mono = core.EnsureLen(r.mono, n)
	r.src.Fill(r.mono)
	vecmath.ScaleBlockInPlace(r.mono, r.Volume())

	if cap(r.frames) < 2*n {
		r.frames = make([]float32, 2*n)
	}
	frames := r.frames[:2*n]
	core.Interleave(frames, r.mono, r.mono, n)
	r.engine.ProcessInterleaved(frames)

	var peak float64
	for i, v := range frames {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}
	r.peak.Store(math.Float64bits(peak))
	return n * bytesPerFrame, nil
}
