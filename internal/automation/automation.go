// Package automation runs Lua scripts that change equalizer parameters
// over time.
//
// Scripts see these globals:
//
//	set(key, value)            change one control, e.g. set("peak1_gain", 6)
//	get(key)                   current value of a control
//	ramp(key, to, ms [, steps]) move a control linearly to a value
//	sleep(ms)                  wait
//	reset()                    restore the default settings
//	preset(name)               load a builtin preset
//	keys()                     table of all control keys
//	print(...)                 write to the runner's output
//
// Only the base, table, string and math libraries are loaded.
package automation

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/preset"
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Runner executes automation scripts against a parameter store.
type Runner struct {
	params *eq.Params
	out    io.Writer
	sleep  Sleeper
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput redirects print. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithSleeper replaces the wall-clock sleep, for tests and offline
// rendering.
func WithSleeper(s Sleeper) Option {
	return func(r *Runner) {
		if s != nil {
			r.sleep = s
		}
	}
}

// New returns a runner that publishes into params.
func New(params *eq.Params, opts ...Option) *Runner {
	r := &Runner{params: params, out: os.Stdout, sleep: sleepContext}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return r.Run(ctx, string(src))
}

// Run executes src until it finishes or ctx is done. Cancellation is
// reported as ctx.Err().
func (r *Runner) Run(ctx context.Context, src string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// The base library brings file loaders along.
	for _, name := range []string{"dofile", "loadfile"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetContext(ctx)
	r.register(ctx, L)

	if err := L.DoString(src); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("automation: %w", err)
	}
	return nil
}

func (r *Runner) register(ctx context.Context, L *lua.LState) {
	fns := map[string]lua.LGFunction{
		"set": func(L *lua.LState) int {
			id := checkParam(L, 1)
			if err := r.params.Set(id, float64(L.CheckNumber(2))); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},
		"get": func(L *lua.LState) int {
			id := checkParam(L, 1)
			v, _ := r.params.Load().Get(id)
			L.Push(lua.LNumber(v))
			return 1
		},
		"sleep": func(L *lua.LState) int {
			if err := r.sleep(ctx, checkDuration(L, 1)); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},
		"ramp": func(L *lua.LState) int {
			id := checkParam(L, 1)
			to := float64(L.CheckNumber(2))
			d := checkDuration(L, 3)
			steps := L.OptInt(4, 32)
			if steps < 1 {
				L.ArgError(4, "steps must be >= 1")
			}
			if err := r.ramp(ctx, id, to, d, steps); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},
		"reset": func(L *lua.LState) int {
			r.params.Replace(eq.DefaultSettings())
			return 0
		},
		"preset": func(L *lua.LState) int {
			name := L.CheckString(1)
			p, ok := preset.Find(name)
			if !ok {
				L.ArgError(1, fmt.Sprintf("unknown preset %q", name))
			}
			r.params.Replace(p.Settings)
			return 0
		},
		"keys": func(L *lua.LState) int {
			t := L.NewTable()
			for _, p := range eq.Layout() {
				t.Append(lua.LString(p.Key))
			}
			L.Push(t)
			return 1
		},
		"print": func(L *lua.LState) int {
			parts := make([]string, L.GetTop())
			for i := range parts {
				parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
			}
			fmt.Fprintln(r.out, strings.Join(parts, "\t"))
			return 0
		},
	}
	for name, fn := range fns {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

// ramp moves id from its current value to `to` in steps equal increments,
// sleeping d/steps between them. Intermediate values are clamped into the
// control's range.
func (r *Runner) ramp(ctx context.Context, id eq.ParamID, to float64, d time.Duration, steps int) error {
	from, _ := r.params.Load().Get(id)
	p := eq.Layout()[id]
	step := d / time.Duration(steps)
	for i := 1; i <= steps; i++ {
		if err := r.sleep(ctx, step); err != nil {
			return err
		}
		v := from + (to-from)*float64(i)/float64(steps)
		v = min(max(v, p.Min), p.Max)
		if err := r.params.Set(id, v); err != nil {
			return err
		}
	}
	return nil
}

func checkParam(L *lua.LState, n int) eq.ParamID {
	key := L.CheckString(n)
	p, ok := eq.ParamByKey(key)
	if !ok {
		L.ArgError(n, fmt.Sprintf("unknown parameter %q", key))
	}
	return p.ID
}

func checkDuration(L *lua.LState, n int) time.Duration {
	ms := float64(L.CheckNumber(n))
	if ms < 0 {
		L.ArgError(n, "duration must be >= 0")
	}
	return time.Duration(ms * float64(time.Millisecond))
}
