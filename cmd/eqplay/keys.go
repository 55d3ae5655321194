package main

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

type action int

const (
	actionNone action = iota
	actionRedraw
	actionQuit
)

type volumeControl interface {
	SetVolume(v float64)
	Volume() float64
}

// controller maps key presses onto parameter edits. Arrow keys arrive as
// ESC [ A..D and are decoded across calls.
type controller struct {
	params *eq.Params
	vol    volumeControl
	layout []eq.Param
	cursor int
	esc    int
}

func newController(p *eq.Params, vol volumeControl) *controller {
	return &controller{params: p, vol: vol, layout: eq.Layout()}
}

// Current returns the selected parameter descriptor.
func (c *controller) Current() eq.Param { return c.layout[c.cursor] }

func (c *controller) Key(b byte) (action, error) {
	switch c.esc {
	case 1:
		if b == '[' {
			c.esc = 2
			return actionNone, nil
		}
		c.esc = 0
	case 2:
		c.esc = 0
		switch b {
		case 'A':
			return c.move(-1), nil
		case 'B':
			return c.move(1), nil
		case 'C':
			return c.step(1)
		case 'D':
			return c.step(-1)
		}
		return actionNone, nil
	}

	switch b {
	case 0x1b:
		c.esc = 1
		return actionNone, nil
	case 'q', 0x03, 0x04:
		return actionQuit, nil
	case 'k':
		return c.move(-1), nil
	case 'j', '\t':
		return c.move(1), nil
	case 'l', '+', '=':
		return c.step(1)
	case 'h', '-':
		return c.step(-1)
	case 'L', '*':
		return c.step(10)
	case 'H', '/':
		return c.step(-10)
	case '0':
		p := c.Current()
		return actionRedraw, c.params.Set(p.ID, p.Default)
	case 'r':
		c.params.Replace(eq.DefaultSettings())
		return actionRedraw, nil
	case ']':
		c.vol.SetVolume(c.vol.Volume() + 0.05)
		return actionRedraw, nil
	case '[':
		c.vol.SetVolume(c.vol.Volume() - 0.05)
		return actionRedraw, nil
	}
	return actionNone, nil
}

func (c *controller) move(d int) action {
	c.cursor = (c.cursor + d + len(c.layout)) % len(c.layout)
	return actionRedraw
}

// step nudges the selected parameter by n steps, clamped to its range.
func (c *controller) step(n int) (action, error) {
	p := c.Current()
	err := c.params.Update(func(s eq.Settings) (eq.Settings, error) {
		v, _ := s.Get(p.ID)
		v += float64(n) * p.Step
		if v < p.Min {
			v = p.Min
		}
		if v > p.Max {
			v = p.Max
		}
		return s.With(p.ID, v)
	})
	return actionRedraw, err
}

// Status renders a single status line for the selected parameter.
func (c *controller) Status(peak float64) string {
	p := c.Current()
	v, _ := c.params.Load().Get(p.ID)
	value := fmt.Sprintf("%g", v)
	if p.ID == eq.LowCutSlope || p.ID == eq.HighCutSlope {
		value = eq.Slope(int(v)).String()
	}
	return fmt.Sprintf("[%2d/%d] %-18s %-10s vol %.2f  peak %6.1f dBFS",
		c.cursor+1, len(c.layout), p.Name, value, c.vol.Volume(), peakDBFS(peak))
}
