package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	sig := DeterministicSine(1000, 48000, 0.5, 480)
	if len(sig) != 480 {
		t.Fatalf("len = %d, want 480", len(sig))
	}
	if sig[0] != 0 {
		t.Fatalf("sig[0] = %v, want 0", sig[0])
	}
	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	if math.Abs(sig[12]-0.5) > 1e-12 {
		t.Fatalf("sig[12] = %v, want 0.5", sig[12])
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1, 256)
	b := DeterministicNoise(42, 1, 256)
	RequireIdentical(t, a, b)

	c := DeterministicNoise(43, 1, 256)
	if d, _ := MaxAbsDiff(a, c); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}
	for i, v := range a {
		if v < -1 || v >= 1 {
			t.Fatalf("index %d: %v outside [-1, 1)", i, v)
		}
	}
}

func TestImpulse(t *testing.T) {
	sig := Impulse(8, 3)
	for i, v := range sig {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("index %d: %v, want %v", i, v, want)
		}
	}
	if RMS(Impulse(4, 10)) != 0 {
		t.Fatal("out-of-range impulse should be silent")
	}
}

func TestInterleaved(t *testing.T) {
	got := Interleaved([]float64{1, 2, 3}, []float64{-1, -2})
	want := []float32{1, -1, 2, -2}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClone(t *testing.T) {
	src := []float64{1, 2}
	dst := Clone(src)
	dst[0] = 9
	if src[0] != 1 {
		t.Fatal("Clone shares backing array")
	}
}
