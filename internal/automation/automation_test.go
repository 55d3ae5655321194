package automation

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/preset"
)

type fakeClock struct {
	slept []time.Duration
}

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	return ctx.Err()
}

func newTestRunner(t *testing.T) (*Runner, *eq.Params, *fakeClock, *bytes.Buffer) {
	t.Helper()
	params := eq.NewParams(eq.DefaultSettings())
	clock := &fakeClock{}
	var out bytes.Buffer
	return New(params, WithOutput(&out), WithSleeper(clock.sleep)), params, clock, &out
}

func TestRun_SetAndGet(t *testing.T) {
	r, params, _, out := newTestRunner(t)
	err := r.Run(context.Background(), `
set("peak2_gain", -6)
set("lowcut_slope", 3)
print(get("peak2_gain"), get("lowcut_slope"))
`)
	if err != nil {
		t.Fatal(err)
	}
	s := params.Load()
	if s.Peak[1].GainDB != -6 || s.LowCut.Slope != eq.Slope48 {
		t.Fatalf("settings = %+v", s)
	}
	if got := strings.TrimSpace(out.String()); got != "-6\t3" {
		t.Fatalf("output = %q", got)
	}
}

func TestRun_Ramp(t *testing.T) {
	r, params, clock, _ := newTestRunner(t)
	if err := r.Run(context.Background(), `ramp("highshelf_gain", 8, 400, 4)`); err != nil {
		t.Fatal(err)
	}
	if got := params.Load().HighShelf.GainDB; got != 8 {
		t.Fatalf("gain = %v, want 8", got)
	}
	if params.Version() != 4 {
		t.Fatalf("version = %d, want one publication per step", params.Version())
	}
	if len(clock.slept) != 4 || clock.slept[0] != 100*time.Millisecond {
		t.Fatalf("slept = %v", clock.slept)
	}
}

func TestRun_SleepResetPreset(t *testing.T) {
	r, params, clock, _ := newTestRunner(t)
	err := r.Run(context.Background(), `
preset("telephone")
sleep(250)
reset()
set("peak1_freq", 900)
`)
	if err != nil {
		t.Fatal(err)
	}
	want := eq.DefaultSettings()
	want.Peak[0].Freq = 900
	if params.Load() != want {
		t.Fatalf("settings = %+v", params.Load())
	}
	if len(clock.slept) != 1 || clock.slept[0] != 250*time.Millisecond {
		t.Fatalf("slept = %v", clock.slept)
	}
	// preset, reset and set each published once.
	if params.Version() != 3 {
		t.Fatalf("version = %d", params.Version())
	}
}

func TestRun_Keys(t *testing.T) {
	r, _, _, out := newTestRunner(t)
	if err := r.Run(context.Background(), `local k = keys(); print(#k, k[1], k[#k])`); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != "21\tlowcut_freq\thighcut_slope" {
		t.Fatalf("output = %q", got)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", `set("mid_gain", 1)`, "unknown parameter"},
		{"out of range", `set("peak1_gain", 99)`, "out of range"},
		{"unknown preset", `preset("nope")`, "unknown preset"},
		{"negative sleep", `sleep(-1)`, "duration"},
		{"syntax", `set(`, ""},
		{"no file access", `dofile("x.lua")`, ""},
		{"no io library", `io.write("x")`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, params, _, _ := newTestRunner(t)
			err := r.Run(context.Background(), tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
			if params.Version() != 0 {
				t.Fatal("failed script published settings")
			}
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	params := eq.NewParams(eq.DefaultSettings())
	r := New(params)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := r.Run(ctx, `while true do sleep(5) end`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("script did not stop promptly")
	}
}

func TestRunFile(t *testing.T) {
	r, params, _, _ := newTestRunner(t)
	path := filepath.Join(t.TempDir(), "auto.lua")
	if err := os.WriteFile(path, []byte(`set("lowshelf_gain", 4.5)`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.RunFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if params.Load().LowShelf.GainDB != 4.5 {
		t.Fatal("script did not run")
	}
	if err := r.RunFile(context.Background(), path+".missing"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestRun_PresetMatchesBuiltin(t *testing.T) {
	r, params, _, _ := newTestRunner(t)
	if err := r.Run(context.Background(), `preset("Vocal")`); err != nil {
		t.Fatal(err)
	}
	p, _ := preset.Find("Vocal")
	if params.Load() != p.Settings {
		t.Fatal("preset not applied")
	}
}
