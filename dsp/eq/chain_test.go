package eq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-peq/internal/testutil"
)

func TestChannelChain_ApplySnapshot(t *testing.T) {
	s := DefaultSettings()
	s.LowShelf.GainDB = -3
	s.Peak[2] = Band{Freq: 5000, GainDB: 2, Q: 0.8}
	s.HighCut.Slope = Slope36

	var c ChannelChain
	c.ApplySnapshot(s, 44100)

	if got, want := c.Stage(LowShelf).Coefficients(), LowShelfCoefficients(s, 44100); got != want {
		t.Fatalf("low shelf = %#v, want %#v", got, want)
	}
	if got, want := c.Stage(Peak3).Coefficients(), PeakCoefficients(s, 44100, 3); got != want {
		t.Fatalf("peak 3 = %#v, want %#v", got, want)
	}
	if n := c.HighCut().ActiveSections(); n != 3 {
		t.Fatalf("high cut sections = %d", n)
	}
	for p := LowShelf; p <= HighShelf; p++ {
		if c.Stage(p).Bypassed() {
			t.Fatalf("%v is bypassed", p)
		}
	}
}

func TestChannelChain_MagnitudeIsProduct(t *testing.T) {
	s := DefaultSettings()
	s.Peak[0] = Band{Freq: 400, GainDB: 6, Q: 1}
	s.HighShelf.GainDB = 6

	var c ChannelChain
	c.ApplySnapshot(s, 48000)

	f := 400.0
	want := c.LowCut().MagnitudeSquared(f, 48000) *
		c.Stage(LowShelf).MagnitudeSquared(f, 48000) *
		c.Stage(Peak1).MagnitudeSquared(f, 48000) *
		c.Stage(Peak2).MagnitudeSquared(f, 48000) *
		c.Stage(Peak3).MagnitudeSquared(f, 48000) *
		c.Stage(HighShelf).MagnitudeSquared(f, 48000) *
		c.HighCut().MagnitudeSquared(f, 48000)
	if got := c.MagnitudeSquared(f, 48000); math.Abs(got-want) > 1e-12 {
		t.Fatalf("MagnitudeSquared = %v, want %v", got, want)
	}
}

func TestChannelChain_Reset(t *testing.T) {
	var c ChannelChain
	c.ApplySnapshot(DefaultSettings(), 48000)
	c.ProcessBlock(testutil.DeterministicNoise(4, 1, 128))
	c.Reset()

	// After a reset the chain behaves like a fresh one.
	var fresh ChannelChain
	fresh.ApplySnapshot(DefaultSettings(), 48000)
	in := testutil.DeterministicNoise(5, 1, 64)
	a, b := testutil.Clone(in), testutil.Clone(in)
	c.ProcessBlock(a)
	fresh.ProcessBlock(b)
	testutil.RequireIdentical(t, a, b)
}

func TestChannelChain_StagePanicsForCuts(t *testing.T) {
	for _, p := range []Position{LowCut, HighCut, NumPositions} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("Stage(%v) did not panic", p)
				}
			}()
			var c ChannelChain
			c.Stage(p)
		}()
	}
}

func TestPositionString(t *testing.T) {
	if Peak2.String() != "Peak2" || HighCut.String() != "HighCut" || Position(-1).String() != "Position(-1)" {
		t.Fatal("unexpected Position strings")
	}
}
