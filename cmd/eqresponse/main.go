// Command eqresponse prints the magnitude response of an equalizer preset.
//
// Usage:
//
//	eqresponse [flags] [preset]
//
// The preset is a TOML file or the name of a builtin preset. Without one
// the neutral default settings are used.
//
// Examples:
//
//	eqresponse vocal
//	eqresponse -set peak1_gain=6 -set lowcut_slope=3
//	eqresponse -rate 44100 -points 48 -measure tone my.toml
//	eqresponse -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/measure/response"
	"github.com/cwbudde/algo-peq/preset"
)

type overrides []string

func (o *overrides) String() string     { return strings.Join(*o, ",") }
func (o *overrides) Set(v string) error { *o = append(*o, v); return nil }

func main() {
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	points := flag.Int("points", 31, "number of log-spaced frequencies between -min and -max")
	minHz := flag.Float64("min", 20, "lowest frequency in Hz")
	maxHz := flag.Float64("max", 20000, "highest frequency in Hz")
	measure := flag.String("measure", "", "also measure the response: impulse (FFT of the impulse response) or tone (steady-state sine per row)")
	fftSize := flag.Int("fft", 65536, "FFT size for -measure impulse (power of two)")
	list := flag.Bool("list", false, "list builtin presets and parameter keys")
	var sets overrides
	flag.Var(&sets, "set", "override a parameter as key=value (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqresponse [flags] [preset]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the magnitude response of an equalizer preset.\n")
		fmt.Fprintf(os.Stderr, "The preset is a TOML file or a builtin name (see -list).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqresponse vocal\n")
		fmt.Fprintf(os.Stderr, "  eqresponse -set peak1_gain=6 -set lowcut_slope=3\n")
		fmt.Fprintf(os.Stderr, "  eqresponse -measure impulse -fft 32768 my.toml\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	p := preset.Preset{Name: "Default", Settings: eq.DefaultSettings()}
	if flag.NArg() > 0 {
		var err error
		if p, err = preset.Resolve(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := preset.ApplyOverrides(p.Settings, sets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if err := s.Validate(*rate); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (clamped below Nyquist)\n", err)
	}

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(*rate))
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	e := eq.NewEngine(core.WithSampleRate(*rate))
	e.UpdateParameters(s)

	freqs := logFrequencies(*minHz, math.Min(*maxHz, 0.49**rate), *points)

	var chain eq.ChannelChain
	chain.ApplySnapshot(s.Sanitize(*rate), *rate)

	var measured func(f float64) (float64, error)
	switch *measure {
	case "":
	case "impulse":
		r, err := response.Measure(&chain, *fftSize, *rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		measured = func(f float64) (float64, error) { return r.DB(f), nil }
	case "tone":
		measured = func(f float64) (float64, error) {
			chain.Reset()
			g, err := response.Tone(&chain, f, *rate)
			return g.DB(), err
		}
	default:
		fmt.Fprintf(os.Stderr, "error: unknown -measure method %q (want impulse or tone)\n", *measure)
		os.Exit(2)
	}

	fmt.Printf("%s @ %g Hz\n\n", p.Name, *rate)
	if err := printTable(e, freqs, measured); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList() {
	fmt.Println("Presets:")
	for _, p := range preset.Builtin() {
		fmt.Printf("  %s\n", p.Name)
	}
	fmt.Println("\nParameters:")
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range eq.Layout() {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t[%g, %g]\tdefault %g\n", p.Key, p.Name, p.Min, p.Max, p.Default)
	}
	_ = tw.Flush()
}

// logFrequencies returns n frequencies spaced evenly on a log scale.
func logFrequencies(lo, hi float64, n int) []float64 {
	if n < 2 || lo <= 0 || hi <= lo {
		return []float64{lo}
	}
	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	return out
}

func printTable(e *eq.Engine, freqs []float64, measured func(float64) (float64, error)) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := "Freq [Hz]\tGain [dB]\t"
	if measured != nil {
		header += "Measured [dB]\tDiff [dB]\t"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	mags := e.MagnitudeResponse(freqs, nil)
	for i, f := range freqs {
		db := core.LinearToDB(mags[i])
		row := fmt.Sprintf("%.1f\t%.2f\t", f, db)
		if measured != nil {
			m, err := measured(f)
			if err != nil {
				return fmt.Errorf("measuring %.1f Hz: %w", f, err)
			}
			row += fmt.Sprintf("%.2f\t%+.3f\t", m, m-db)
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
