package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	return math.Sqrt(c.MagnitudeSquared(freq, sr))
}

func assertFiniteCoefficients(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	if !c.IsFinite() {
		t.Fatalf("non-finite coefficients: %#v", c)
	}
}

func assertStableSection(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	if !c.Stable() {
		t.Fatalf("unstable section %#v (poles %v)", c, c.Poles())
	}
}

func TestPassDesigners_BasicResponseShape(t *testing.T) {
	sr := 48000.0
	f := 1000.0

	lp := Lowpass(f, DefaultQ, sr)
	if !(mag(lp, 100, sr) > mag(lp, 10000, sr)) {
		t.Fatal("lowpass shape check failed")
	}
	if !almostEqual(mag(lp, 1, sr), 1, 1e-3) {
		t.Fatalf("lowpass DC gain = %v, want ~1", mag(lp, 1, sr))
	}

	hp := Highpass(f, DefaultQ, sr)
	if !(mag(hp, 10000, sr) > mag(hp, 100, sr)) {
		t.Fatal("highpass shape check failed")
	}
	if !almostEqual(mag(hp, sr/2-1, sr), 1, 1e-3) {
		t.Fatalf("highpass Nyquist gain = %v, want ~1", mag(hp, sr/2-1, sr))
	}
}

func TestEQDesigners_BasicBehavior(t *testing.T) {
	sr := 48000.0
	f := 1000.0
	q := 1.0

	peakUp := Peak(f, 6, q, sr)
	peakDown := Peak(f, -6, q, sr)
	if !(mag(peakUp, f, sr) > 1 && mag(peakDown, f, sr) < 1) {
		t.Fatal("peak filter gain check failed")
	}

	ls := LowShelf(500, 6, q, sr)
	if !(mag(ls, 100, sr) > mag(ls, 10000, sr)) {
		t.Fatal("low shelf tilt check failed")
	}

	hs := HighShelf(4000, 6, q, sr)
	if !(mag(hs, 10000, sr) > mag(hs, 100, sr)) {
		t.Fatal("high shelf tilt check failed")
	}
}

func TestPeak_GainAtCentre(t *testing.T) {
	sr := 48000.0
	for _, gain := range []float64{-24, -6, 3, 6, 12, 24} {
		c := Peak(1000, gain, 1, sr)
		got := c.MagnitudeDB(1000, sr)
		if !almostEqual(got, gain, 1e-9) {
			t.Fatalf("gain %v dB: centre magnitude %v dB", gain, got)
		}
		if ph := c.Phase(1000, sr); !almostEqual(ph, 0, 1e-9) {
			t.Fatalf("gain %v dB: centre phase %v rad, want 0", gain, ph)
		}
	}
}

func TestShelves_PlateauGain(t *testing.T) {
	sr := 48000.0

	ls := LowShelf(200, 9, 1, sr)
	if got := ls.MagnitudeDB(5, sr); !almostEqual(got, 9, 0.1) {
		t.Fatalf("low shelf plateau = %v dB, want ~9", got)
	}
	if got := ls.MagnitudeDB(15000, sr); !almostEqual(got, 0, 0.05) {
		t.Fatalf("low shelf far band = %v dB, want ~0", got)
	}

	hs := HighShelf(2000, -9, 1, sr)
	if got := hs.MagnitudeDB(23900, sr); !almostEqual(got, -9, 0.1) {
		t.Fatalf("high shelf plateau = %v dB, want ~-9", got)
	}
	if got := hs.MagnitudeDB(20, sr); !almostEqual(got, 0, 0.05) {
		t.Fatalf("high shelf far band = %v dB, want ~0", got)
	}
}

func TestZeroGainIsExactIdentity(t *testing.T) {
	sr := 44100.0
	for name, c := range map[string]biquad.Coefficients{
		"peak":      Peak(750, 0, 3.3, sr),
		"lowshelf":  LowShelf(200, 0, 0.4, sr),
		"highshelf": HighShelf(10000, 0, 7, sr),
	} {
		if c.B0 != 1 || c.B1 != c.A1 || c.B2 != c.A2 {
			t.Fatalf("%s at 0 dB is not the identity: %#v", name, c)
		}
	}
}

func TestDesigners_ValidateAcrossSampleRates(t *testing.T) {
	for _, sr := range []float64{44100, 48000, 96000, 192000} {
		for _, c := range []biquad.Coefficients{
			Lowpass(1000, 0.707, sr),
			Highpass(1000, 0.707, sr),
			Peak(1000, 3, 1.0, sr),
			Peak(20, 24, 10, sr),
			Peak(20000, -24, 0.1, sr),
			LowShelf(300, 6, 1.0, sr),
			HighShelf(3000, -6, 1.0, sr),
			LowShelf(20, -24, 10, sr),
			HighShelf(20000, 24, 0.1, sr),
		} {
			assertFiniteCoefficients(t, c)
			assertStableSection(t, c)
		}
	}
}

func TestDesigners_NearEdgesStayFinite(t *testing.T) {
	sr := 48000.0
	for _, f := range []float64{1e-6, 0.01, 23999.99} {
		for _, q := range []float64{1e-6, 0.1, 10, 1e6} {
			for _, c := range []biquad.Coefficients{
				Lowpass(f, q, sr),
				Highpass(f, q, sr),
				Peak(f, 24, q, sr),
				LowShelf(f, -24, q, sr),
				HighShelf(f, 24, q, sr),
			} {
				assertFiniteCoefficients(t, c)
			}
		}
	}
}

func TestInvalidInputs_YieldIdentity(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		c    biquad.Coefficients
	}{
		{"lowpass nyquist", Lowpass(24000, 1, 48000)},
		{"highpass zero freq", Highpass(0, 1, 48000)},
		{"peak negative freq", Peak(-10, 6, 1, 48000)},
		{"peak nan gain", Peak(1000, nan, 1, 48000)},
		{"lowshelf zero rate", LowShelf(100, 6, 1, 0)},
		{"highshelf inf freq", HighShelf(math.Inf(1), 6, 1, 48000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.c != biquad.Identity {
				t.Fatalf("got %#v, want identity", tt.c)
			}
		})
	}
}

func TestNonPositiveQFallsBackToDefault(t *testing.T) {
	sr := 48000.0
	if Lowpass(1000, 0, sr) != Lowpass(1000, DefaultQ, sr) {
		t.Fatal("Q=0 did not fall back to DefaultQ")
	}
	if Peak(1000, 6, -1, sr) != Peak(1000, 6, DefaultQ, sr) {
		t.Fatal("Q<0 did not fall back to DefaultQ")
	}
}

func TestDesignersDeterministic(t *testing.T) {
	sr := 96000.0
	for i := 0; i < 3; i++ {
		if Peak(1234.5, 4.5, 2.2, sr) != Peak(1234.5, 4.5, 2.2, sr) {
			t.Fatal("Peak not deterministic")
		}
		a := ButterworthHP(80, 8, sr)
		b := ButterworthHP(80, 8, sr)
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("ButterworthHP section %d not deterministic", j)
			}
		}
	}
}
