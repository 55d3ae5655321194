package response

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

func TestTone_MatchesStageResponse(t *testing.T) {
	const sr = 48000.0
	c := design.Peak(2000, 9, 2, sr)
	for _, f := range []float64{500, 2000, 7000} {
		g, err := Tone(biquad.NewStage(c), f, sr)
		if err != nil {
			t.Fatal(err)
		}
		want := c.Response(f, sr)
		if d := math.Abs(g.DB() - 20*math.Log10(cmplx.Abs(want))); d > 1e-3 {
			t.Fatalf("%v Hz: %.4f dB, deviation %.5f dB", f, g.DB(), d)
		}
		if d := math.Abs(g.Phase - cmplx.Phase(want)); d > 1e-3 {
			t.Fatalf("%v Hz: phase %.5f, want %.5f", f, g.Phase, cmplx.Phase(want))
		}
	}
}

func TestTone_ChainPeakBoost(t *testing.T) {
	const sr = 48000.0
	s, err := eq.DefaultSettings().With(eq.Peak2Freq, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if s, err = s.With(eq.Peak2Gain, 6); err != nil {
		t.Fatal(err)
	}
	var chain eq.ChannelChain
	chain.ApplySnapshot(s, sr)
	analytic := math.Sqrt(chain.MagnitudeSquared(1000, sr))

	g, err := Tone(&chain, 1000, sr)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(g.Magnitude-analytic) > 0.02*analytic {
		t.Fatalf("gain = %v, want %v within 2%%", g.Magnitude, analytic)
	}
	if g.Frequency != 1000 {
		t.Fatalf("Frequency = %v", g.Frequency)
	}
}

func TestTone_InvalidInput(t *testing.T) {
	if _, err := Tone(nil, 1000, 48000); !errors.Is(err, ErrNilProcessor) {
		t.Fatalf("nil processor: %v", err)
	}
	if _, err := Tone(passthrough{}, 1000, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("zero rate: %v", err)
	}
	if _, err := Tone(passthrough{}, 30000, 48000); err == nil {
		t.Fatal("frequency above Nyquist should fail")
	}
}
