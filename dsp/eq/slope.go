package eq

import "fmt"

// Slope selects the steepness of a cut filter.
type Slope int

const (
	Slope12 Slope = iota // 12 dB/oct, 2nd order
	Slope24              // 24 dB/oct, 4th order
	Slope36              // 36 dB/oct, 6th order
	Slope48              // 48 dB/oct, 8th order
)

// MaxCutSections is the number of stage slots in a CutCascade.
const MaxCutSections = 4

// Valid reports whether s is one of the four defined slopes.
func (s Slope) Valid() bool {
	return s >= Slope12 && s <= Slope48
}

// Order returns the Butterworth filter order for the slope.
func (s Slope) Order() int {
	return 2 * s.Sections()
}

// Sections returns the number of active biquad sections.
func (s Slope) Sections() int {
	return int(s) + 1
}

// DBPerOctave returns the asymptotic attenuation rate.
func (s Slope) DBPerOctave() int {
	return 12 * s.Sections()
}

func (s Slope) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slope(%d)", int(s))
	}
	return fmt.Sprintf("%d dB/oct", s.DBPerOctave())
}

// slopeFromValue rounds a continuous parameter value to a slope and clamps
// it into the defined range.
func slopeFromValue(v float64) Slope {
	switch {
	case v != v || v < 0.5:
		return Slope12
	case v < 1.5:
		return Slope24
	case v < 2.5:
		return Slope36
	default:
		return Slope48
	}
}
