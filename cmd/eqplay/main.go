// Command eqplay plays a test signal through the equalizer with live
// keyboard control and optional Lua automation.
//
// Usage:
//
//	eqplay [flags] [preset]
//
// Keys: up/down or j/k select a parameter, left/right or h/l step it
// (H/L ten steps), 0 resets it, r resets everything, [ and ] change the
// volume, q quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/dsp/signal"
	"github.com/cwbudde/algo-peq/internal/automation"
	"github.com/cwbudde/algo-peq/preset"
)

type overrides []string

func (o *overrides) String() string     { return strings.Join(*o, ",") }
func (o *overrides) Set(v string) error { *o = append(*o, v); return nil }

type options struct {
	rate     float64
	block    int
	source   string
	freq     float64
	amp      float64
	volume   float64
	seed     int64
	script   string
	duration time.Duration
	buffer   time.Duration
	poll     time.Duration
	noKeys   bool
	sets     overrides
}

func main() {
	var o options
	flag.Float64Var(&o.rate, "rate", 48000, "sample rate in Hz")
	flag.IntVar(&o.block, "block", 512, "maximum processing block size in frames")
	flag.StringVar(&o.source, "source", "sine", "test signal: sine, noise or sweep")
	flag.Float64Var(&o.freq, "freq", 1000, "sine frequency in Hz")
	flag.Float64Var(&o.amp, "amp", 0.25, "source amplitude")
	flag.Float64Var(&o.volume, "volume", 0.8, "output volume (0..2)")
	flag.Int64Var(&o.seed, "seed", 1, "noise seed")
	flag.StringVar(&o.script, "script", "", "Lua automation script")
	flag.DurationVar(&o.duration, "duration", 0, "stop after this long (0 = until quit)")
	flag.DurationVar(&o.buffer, "buffer", 50*time.Millisecond, "audio device buffer")
	flag.DurationVar(&o.poll, "poll", 10*time.Millisecond, "parameter polling interval")
	flag.BoolVar(&o.noKeys, "nokeys", false, "disable keyboard control")
	flag.Var(&o.sets, "set", "override a parameter as key=value (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqplay [flags] [preset]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a test signal through the equalizer.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqplay -source noise vocal\n")
		fmt.Fprintf(os.Stderr, "  eqplay -source sweep -set lowcut_slope=3 -set lowcut_freq=200\n")
		fmt.Fprintf(os.Stderr, "  eqplay -nokeys -script ramp.lua\n")
	}
	flag.Parse()

	if err := run(o, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options, args []string) error {
	settings := eq.DefaultSettings()
	if len(args) > 0 {
		p, err := preset.Resolve(args[0])
		if err != nil {
			return err
		}
		settings = p.Settings
	}
	settings, err := preset.ApplyOverrides(settings, o.sets)
	if err != nil {
		return err
	}

	stream := []core.ProcessorOption{core.WithSampleRate(o.rate), core.WithBlockSize(o.block)}
	if err := core.ApplyProcessorOptions(stream...).Validate(); err != nil {
		return err
	}
	engine := eq.NewEngine(stream...)
	engine.UpdateParameters(settings)
	params := eq.NewParams(settings)

	src, err := newSource(o)
	if err != nil {
		return err
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if o.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.duration)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() { _ = eq.Watch(ctx, params, engine, o.poll) }()

	rend := newRenderer(engine, src, o.volume)
	out, err := newPlayer(int(o.rate), o.buffer)
	if err != nil {
		return err
	}
	out.Start(rend)
	defer func() { _ = out.Close() }()

	fd := int(os.Stdin.Fd())
	interactive := !o.noKeys && term.IsTerminal(fd)

	var stdout io.Writer = os.Stdout
	if interactive {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer func() { _ = term.Restore(fd, oldState) }()
		stdout = crlfWriter{os.Stdout}
	}

	if o.script != "" {
		runner := automation.New(params, automation.WithOutput(stdout))
		go func() {
			err := runner.RunFile(ctx, o.script)
			if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				fmt.Fprintf(stdout, "script: %v\n", err)
			}
			if !interactive {
				cancel()
			}
		}()
	}

	if !interactive {
		<-ctx.Done()
		return nil
	}
	return keyLoop(ctx, newController(params, rend), rend, stdout)
}

func newSource(o options) (signal.Source, error) {
	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(o.rate)},
		signal.WithSeed(o.seed),
	)
	switch o.source {
	case "sine":
		return gen.Sine(o.freq, o.amp)
	case "noise":
		return gen.WhiteNoise(o.amp)
	case "sweep":
		return gen.LogSweep(20, 20000, 10, o.amp)
	default:
		return nil, fmt.Errorf("unknown source %q (want sine, noise or sweep)", o.source)
	}
}

// keyLoop reads stdin byte by byte and redraws the status line until the
// user quits or ctx is done.
func keyLoop(ctx context.Context, c *controller, r *renderer, w io.Writer) error {
	keys := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(keys)
				return
			}
			if n == 1 {
				keys <- buf[0]
			}
		}
	}()

	redraw := func() { fmt.Fprintf(w, "\r\x1b[K%s", c.Status(r.Peak())) }
	redraw()
	defer fmt.Fprintln(w)

	meter := time.NewTicker(100 * time.Millisecond)
	defer meter.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-meter.C:
			redraw()
		case b, ok := <-keys:
			if !ok {
				return nil
			}
			act, err := c.Key(b)
			if err != nil {
				fmt.Fprintf(w, "\r\x1b[K%v\n", err)
			}
			switch act {
			case actionQuit:
				return nil
			case actionRedraw:
				redraw()
			}
		}
	}
}

// crlfWriter translates LF to CRLF for a terminal in raw mode.
type crlfWriter struct{ w io.Writer }

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}
