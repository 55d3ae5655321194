package eq

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-peq/dsp/core"
)

// ParamID identifies one of the equalizer's controls.
type ParamID int

const (
	LowCutFreq ParamID = iota
	LowCutQ
	LowCutSlope
	LowShelfFreq
	LowShelfGain
	LowShelfQ
	Peak1Freq
	Peak1Gain
	Peak1Q
	Peak2Freq
	Peak2Gain
	Peak2Q
	Peak3Freq
	Peak3Gain
	Peak3Q
	HighShelfFreq
	HighShelfGain
	HighShelfQ
	HighCutFreq
	HighCutQ
	HighCutSlope

	numParams
)

// maxFreqRatio bounds designed frequencies below Nyquist.
const maxFreqRatio = 0.49

var (
	// ErrUnknownParam is returned for a ParamID or key outside the layout.
	ErrUnknownParam = errors.New("eq: unknown parameter")
	// ErrOutOfRange is returned for a value outside a parameter's range.
	ErrOutOfRange = errors.New("eq: parameter out of range")
)

// ParamError reports which control failed validation.
type ParamError struct {
	ID    ParamID
	Value float64
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s = %g", e.Err, e.ID, e.Value)
}

func (e *ParamError) Unwrap() error { return e.Err }

// Param describes the range and default of one control.
type Param struct {
	ID      ParamID
	Key     string // stable identifier used by presets and scripts
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

func freqParam(id ParamID, key, name string, def float64) Param {
	return Param{ID: id, Key: key, Name: name, Min: 20, Max: 20000, Step: 1, Default: def}
}

func gainParam(id ParamID, key, name string) Param {
	return Param{ID: id, Key: key, Name: name, Min: -24, Max: 24, Step: 0.5, Default: 0}
}

func qParam(id ParamID, key, name string) Param {
	return Param{ID: id, Key: key, Name: name, Min: 0.1, Max: 10, Step: 0.05, Default: 1}
}

func slopeParam(id ParamID, key, name string) Param {
	return Param{ID: id, Key: key, Name: name, Min: 0, Max: 3, Step: 1, Default: 0}
}

var layout = [numParams]Param{
	freqParam(LowCutFreq, "lowcut_freq", "LowCut Freq", 20),
	qParam(LowCutQ, "lowcut_q", "LowCut Quality"),
	slopeParam(LowCutSlope, "lowcut_slope", "LowCut Slope"),
	freqParam(LowShelfFreq, "lowshelf_freq", "LowShelf Freq", 200),
	gainParam(LowShelfGain, "lowshelf_gain", "LowShelf Gain"),
	qParam(LowShelfQ, "lowshelf_q", "LowShelf Quality"),
	freqParam(Peak1Freq, "peak1_freq", "Peak1 Freq", 750),
	gainParam(Peak1Gain, "peak1_gain", "Peak1 Gain"),
	qParam(Peak1Q, "peak1_q", "Peak1 Quality"),
	freqParam(Peak2Freq, "peak2_freq", "Peak2 Freq", 1500),
	gainParam(Peak2Gain, "peak2_gain", "Peak2 Gain"),
	qParam(Peak2Q, "peak2_q", "Peak2 Quality"),
	freqParam(Peak3Freq, "peak3_freq", "Peak3 Freq", 3000),
	gainParam(Peak3Gain, "peak3_gain", "Peak3 Gain"),
	qParam(Peak3Q, "peak3_q", "Peak3 Quality"),
	freqParam(HighShelfFreq, "highshelf_freq", "HighShelf Freq", 10000),
	gainParam(HighShelfGain, "highshelf_gain", "HighShelf Gain"),
	qParam(HighShelfQ, "highshelf_q", "HighShelf Quality"),
	freqParam(HighCutFreq, "highcut_freq", "HighCut Freq", 20000),
	qParam(HighCutQ, "highcut_q", "HighCut Quality"),
	slopeParam(HighCutSlope, "highcut_slope", "HighCut Slope"),
}

// Layout returns the descriptors of all controls in ParamID order.
func Layout() []Param {
	out := make([]Param, len(layout))
	copy(out, layout[:])
	return out
}

// ParamByKey looks up a control by its Key.
func ParamByKey(key string) (Param, bool) {
	for _, p := range layout {
		if p.Key == key {
			return p, true
		}
	}
	return Param{}, false
}

func lookupParam(id ParamID) (Param, bool) {
	if id < 0 || id >= numParams {
		return Param{}, false
	}
	return layout[id], true
}

func (id ParamID) String() string {
	if p, ok := lookupParam(id); ok {
		return p.Name
	}
	return fmt.Sprintf("ParamID(%d)", int(id))
}

// Validate reports the first control that violates its layout range, or a
// frequency at or above Nyquist for sampleRate. A non-positive sampleRate
// skips the Nyquist check.
func (s Settings) Validate(sampleRate float64) error {
	for _, p := range layout {
		v, _ := s.Get(p.ID)
		if !core.IsFinite(v) || v < p.Min || v > p.Max {
			return &ParamError{ID: p.ID, Value: v, Err: ErrOutOfRange}
		}
		if isFreqParam(p.ID) && sampleRate > 0 && v >= sampleRate/2 {
			return &ParamError{ID: p.ID, Value: v, Err: ErrOutOfRange}
		}
	}
	return nil
}

// Sanitize returns a copy of s with every control clamped into its range.
// Non-finite values fall back to the default, and frequencies are limited
// to 0.49*sampleRate when sampleRate is positive.
func (s Settings) Sanitize(sampleRate float64) Settings {
	out := s
	for _, p := range layout {
		v, _ := s.Get(p.ID)
		if !core.IsFinite(v) {
			v = p.Default
		}
		hi := p.Max
		if isFreqParam(p.ID) && sampleRate > 0 {
			hi = math.Min(hi, maxFreqRatio*sampleRate)
		}
		out.set(p.ID, core.Clamp(v, math.Min(p.Min, hi), hi))
	}
	return out
}

func isFreqParam(id ParamID) bool {
	switch id {
	case LowCutFreq, LowShelfFreq, Peak1Freq, Peak2Freq, Peak3Freq, HighShelfFreq, HighCutFreq:
		return true
	}
	return false
}
