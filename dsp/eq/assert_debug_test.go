//go:build eqdebug

package eq

import "testing"

func TestDebugAssertions_PanicOnDegenerateInput(t *testing.T) {
	s := DefaultSettings()
	s.Peak[2].Freq = 30000

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a peak above Nyquist")
		}
	}()
	PeakCoefficients(s, 48000, 3)
}
