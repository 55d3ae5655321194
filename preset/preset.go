// Package preset stores equalizer settings as TOML files.
//
// A preset file names each position as a table. Omitted tables or keys
// take their default value, unknown keys are rejected:
//
//	name = "Vocal"
//
//	[lowcut]
//	freq = 80.0
//	slope = 24
//
//	[[peak]]
//	freq = 2500.0
//	gain = 3.0
//	q = 1.2
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

// Errors returned when decoding a preset.
var (
	ErrUnknownKey   = errors.New("preset: unknown key")
	ErrTooManyPeaks = errors.New("preset: more than 3 peak tables")
	ErrBadSlope     = errors.New("preset: slope must be 12, 24, 36 or 48")
	ErrInvalid      = errors.New("preset: invalid settings")
)

// FileExt is the extension of preset files.
const FileExt = ".toml"

// Preset is a named settings snapshot.
type Preset struct {
	Name     string
	Settings eq.Settings
}

type bandTable struct {
	Freq *float64 `toml:"freq"`
	Gain *float64 `toml:"gain"`
	Q    *float64 `toml:"q"`
}

type cutTable struct {
	Freq  *float64 `toml:"freq"`
	Q     *float64 `toml:"q"`
	Slope *int     `toml:"slope"` // dB/oct
}

type document struct {
	Name      string      `toml:"name"`
	LowCut    cutTable    `toml:"lowcut"`
	LowShelf  bandTable   `toml:"lowshelf"`
	Peak      []bandTable `toml:"peak"`
	HighShelf bandTable   `toml:"highshelf"`
	HighCut   cutTable    `toml:"highcut"`
}

// Decode reads one preset from r.
func Decode(r io.Reader) (Preset, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Preset{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(names, ", "))
	}
	if len(doc.Peak) > 3 {
		return Preset{}, fmt.Errorf("%w: got %d", ErrTooManyPeaks, len(doc.Peak))
	}

	s := eq.DefaultSettings()
	if err := doc.LowCut.apply(&s.LowCut); err != nil {
		return Preset{}, fmt.Errorf("lowcut: %w", err)
	}
	doc.LowShelf.apply(&s.LowShelf)
	for i := range doc.Peak {
		doc.Peak[i].apply(&s.Peak[i])
	}
	doc.HighShelf.apply(&s.HighShelf)
	if err := doc.HighCut.apply(&s.HighCut); err != nil {
		return Preset{}, fmt.Errorf("highcut: %w", err)
	}

	if err := s.Validate(0); err != nil {
		return Preset{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return Preset{Name: doc.Name, Settings: s}, nil
}

func (b bandTable) apply(dst *eq.Band) {
	if b.Freq != nil {
		dst.Freq = *b.Freq
	}
	if b.Gain != nil {
		dst.GainDB = *b.Gain
	}
	if b.Q != nil {
		dst.Q = *b.Q
	}
}

func (c cutTable) apply(dst *eq.Cut) error {
	if c.Freq != nil {
		dst.Freq = *c.Freq
	}
	if c.Q != nil {
		dst.Q = *c.Q
	}
	if c.Slope != nil {
		slope, ok := slopeFromDB(*c.Slope)
		if !ok {
			return fmt.Errorf("%w: got %d", ErrBadSlope, *c.Slope)
		}
		dst.Slope = slope
	}
	return nil
}

func slopeFromDB(db int) (eq.Slope, bool) {
	if db%12 != 0 {
		return 0, false
	}
	s := eq.Slope(db/12 - 1)
	return s, s.Valid()
}

// Encode writes p to w as TOML. Every key is written, so the file does not
// depend on the defaults of the reading version.
func Encode(w io.Writer, p Preset) error {
	s := p.Settings
	doc := document{
		Name:      p.Name,
		LowCut:    cutDoc(s.LowCut),
		LowShelf:  bandDoc(s.LowShelf),
		HighShelf: bandDoc(s.HighShelf),
		HighCut:   cutDoc(s.HighCut),
	}
	for _, b := range s.Peak {
		doc.Peak = append(doc.Peak, bandDoc(b))
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	return nil
}

func bandDoc(b eq.Band) bandTable {
	return bandTable{Freq: &b.Freq, Gain: &b.GainDB, Q: &b.Q}
}

func cutDoc(c eq.Cut) cutTable {
	db := c.Slope.DBPerOctave()
	return cutTable{Freq: &c.Freq, Q: &c.Q, Slope: &db}
}

// Load reads the preset file at path. A missing name is taken from the
// file name.
func Load(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, err
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), FileExt)
	}
	return p, nil
}

// Save writes p to path, creating parent directories as needed. The file
// is replaced atomically.
func Save(path string, p Preset) error {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
