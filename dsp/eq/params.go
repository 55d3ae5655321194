package eq

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Params is the control-side parameter store. Writers publish a new
// immutable snapshot with a single pointer swap; readers never lock.
type Params struct {
	mu      sync.Mutex // serializes writers
	cur     atomic.Pointer[Settings]
	version atomic.Uint64
	changed chan struct{}
}

// NewParams returns a store holding s at version 0.
func NewParams(s Settings) *Params {
	p := &Params{changed: make(chan struct{}, 1)}
	p.cur.Store(&s)
	return p
}

// Load returns the latest published snapshot.
func (p *Params) Load() Settings {
	return *p.cur.Load()
}

// Version increases with every published change.
func (p *Params) Version() uint64 {
	return p.version.Load()
}

// Changed returns a channel that receives after one or more publications.
// Notifications coalesce; a receiver should re-read Load.
func (p *Params) Changed() <-chan struct{} {
	return p.changed
}

// Set changes one control. Invalid ids or values are rejected with a
// *ParamError and nothing is published.
func (p *Params) Set(id ParamID, value float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := p.cur.Load().With(id, value)
	if err != nil {
		return err
	}
	p.publish(next)
	return nil
}

// Replace publishes a whole snapshot, for example a loaded preset.
func (p *Params) Replace(s Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publish(s)
}

// Update applies fn to the current snapshot and publishes the result,
// unless fn returns an error.
func (p *Params) Update(fn func(Settings) (Settings, error)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := fn(p.Load())
	if err != nil {
		return err
	}
	p.publish(next)
	return nil
}

// publish stores s and signals watchers. Callers hold p.mu.
func (p *Params) publish(s Settings) {
	if *p.cur.Load() == s {
		return
	}
	p.cur.Store(&s)
	p.version.Add(1)
	select {
	case p.changed <- struct{}{}:
	default:
	}
}

// Updater receives parameter snapshots. *Engine implements it.
type Updater interface {
	UpdateParameters(Settings) bool
}

// Watch forwards the store's snapshots to u until ctx is cancelled. It
// applies the current snapshot immediately, then re-checks the version on
// every change notification and, if interval is positive, on every tick.
// It returns ctx.Err().
func Watch(ctx context.Context, p *Params, u Updater, interval time.Duration) error {
	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}

	last := p.Version()
	u.UpdateParameters(p.Load())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.Changed():
		case <-tick:
		}

		if v := p.Version(); v != last {
			last = v
			u.UpdateParameters(p.Load())
		}
	}
}
