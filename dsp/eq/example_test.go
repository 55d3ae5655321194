package eq_test

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
)

func ExampleEngine() {
	e := eq.NewEngine(core.WithSampleRate(48000), core.WithBlockSize(256))

	s := eq.DefaultSettings()
	s.Peak[0] = eq.Band{Freq: 1000, GainDB: 6, Q: 1}
	s.LowCut = eq.Cut{Freq: 80, Q: 1, Slope: eq.Slope24}
	e.UpdateParameters(s)

	left := make([]float64, 256)
	right := make([]float64, 256)
	e.Process(left, right)

	fmt.Printf("1 kHz: %+.1f dB\n", e.MagnitudeDB(1000))
	fmt.Println("low cut sections:", e.Chain(eq.Left).LowCut().ActiveSections())
	// Output:
	// 1 kHz: +6.0 dB
	// low cut sections: 2
}

func ExampleSettings_With() {
	s, err := eq.DefaultSettings().With(eq.HighCutSlope, 3)
	if err != nil {
		panic(err)
	}
	fmt.Println(s.HighCut.Slope)

	_, err = s.With(eq.Peak1Gain, 40)
	fmt.Println(err)
	// Output:
	// 48 dB/oct
	// eq: parameter out of range: Peak1 Gain = 40
}
