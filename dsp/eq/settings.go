package eq

import "github.com/cwbudde/algo-peq/dsp/core"

// Band holds the controls of a peak or shelf position.
type Band struct {
	Freq   float64 // centre or corner frequency in Hz
	GainDB float64 // boost (+) or cut (-) in dB
	Q      float64
}

// Cut holds the controls of a low-cut or high-cut position.
//
// Q is stored and persisted, but the cascade always uses the canonical
// Butterworth section Qs for the selected slope.
type Cut struct {
	Freq  float64
	Q     float64
	Slope Slope
}

// Settings is a complete, immutable parameter snapshot of the equalizer.
// It is a plain value; copies are independent.
type Settings struct {
	LowCut    Cut
	LowShelf  Band
	Peak      [3]Band
	HighShelf Band
	HighCut   Cut
}

// DefaultSettings returns the snapshot built from each parameter's default.
func DefaultSettings() Settings {
	var s Settings
	for _, p := range layout {
		s.set(p.ID, p.Default)
	}
	return s
}

// Get returns the current value of a single control. Slopes are returned
// as their index (0..3). The second result is false for an unknown id.
func (s Settings) Get(id ParamID) (float64, bool) {
	if p := s.field(id); p != nil {
		return *p, true
	}
	switch id {
	case LowCutSlope:
		return float64(s.LowCut.Slope), true
	case HighCutSlope:
		return float64(s.HighCut.Slope), true
	}
	return 0, false
}

// With returns a copy of s with one control changed. The receiver is
// never modified. Values outside the control's layout range, and
// non-finite values, are rejected with a *ParamError.
func (s Settings) With(id ParamID, value float64) (Settings, error) {
	p, ok := lookupParam(id)
	if !ok {
		return s, &ParamError{ID: id, Value: value, Err: ErrUnknownParam}
	}
	if !core.IsFinite(value) || value < p.Min || value > p.Max {
		return s, &ParamError{ID: id, Value: value, Err: ErrOutOfRange}
	}
	s.set(id, value)
	return s, nil
}

// set writes value into the field for id without range checks.
func (s *Settings) set(id ParamID, value float64) {
	if p := s.field(id); p != nil {
		*p = value
		return
	}
	switch id {
	case LowCutSlope:
		s.LowCut.Slope = slopeFromValue(value)
	case HighCutSlope:
		s.HighCut.Slope = slopeFromValue(value)
	}
}

// field returns a pointer to the float64 backing id, or nil for slopes and
// unknown ids.
func (s *Settings) field(id ParamID) *float64 {
	switch id {
	case LowCutFreq:
		return &s.LowCut.Freq
	case LowCutQ:
		return &s.LowCut.Q
	case LowShelfFreq:
		return &s.LowShelf.Freq
	case LowShelfGain:
		return &s.LowShelf.GainDB
	case LowShelfQ:
		return &s.LowShelf.Q
	case Peak1Freq, Peak2Freq, Peak3Freq:
		return &s.Peak[(id-Peak1Freq)/3].Freq
	case Peak1Gain, Peak2Gain, Peak3Gain:
		return &s.Peak[(id-Peak1Gain)/3].GainDB
	case Peak1Q, Peak2Q, Peak3Q:
		return &s.Peak[(id-Peak1Q)/3].Q
	case HighShelfFreq:
		return &s.HighShelf.Freq
	case HighShelfGain:
		return &s.HighShelf.GainDB
	case HighShelfQ:
		return &s.HighShelf.Q
	case HighCutFreq:
		return &s.HighCut.Freq
	case HighCutQ:
		return &s.HighCut.Q
	}
	return nil
}
