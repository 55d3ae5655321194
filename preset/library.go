package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

// AppConfigSubdir is the directory below the user config dir that holds
// saved presets.
const AppConfigSubdir = "algo-peq"

// Dir returns the per-user preset directory.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppConfigSubdir, "presets"), nil
}

// List returns the names of the presets stored in dir, sorted. A missing
// directory yields an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), FileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), FileExt))
	}
	sort.Strings(names)
	return names, nil
}

// Path returns the file path of preset name in dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+FileExt)
}

// Builtin returns the factory presets. "Flat" is DefaultSettings.
func Builtin() []Preset {
	flat := eq.DefaultSettings()

	bass := flat
	bass.LowCut = eq.Cut{Freq: 30, Q: 1, Slope: eq.Slope24}
	bass.LowShelf = eq.Band{Freq: 120, GainDB: 6, Q: 0.7}
	bass.Peak[0] = eq.Band{Freq: 350, GainDB: -2, Q: 1.2}

	vocal := flat
	vocal.LowCut = eq.Cut{Freq: 90, Q: 1, Slope: eq.Slope36}
	vocal.Peak[0] = eq.Band{Freq: 250, GainDB: -3, Q: 1.5}
	vocal.Peak[1] = eq.Band{Freq: 3000, GainDB: 3, Q: 1}
	vocal.HighShelf = eq.Band{Freq: 10000, GainDB: 2, Q: 0.7}

	telephone := flat
	telephone.LowCut = eq.Cut{Freq: 300, Q: 1, Slope: eq.Slope48}
	telephone.Peak[1] = eq.Band{Freq: 1500, GainDB: 4, Q: 0.8}
	telephone.HighCut = eq.Cut{Freq: 3400, Q: 1, Slope: eq.Slope48}

	return []Preset{
		{Name: "Flat", Settings: flat},
		{Name: "Bass Boost", Settings: bass},
		{Name: "Vocal", Settings: vocal},
		{Name: "Telephone", Settings: telephone},
	}
}

// Find returns a builtin preset by case-insensitive name.
func Find(name string) (Preset, bool) {
	for _, p := range Builtin() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// ErrNotFound is returned by Resolve when no file or builtin matches.
var ErrNotFound = errors.New("preset: not found")

// Resolve loads nameOrPath as a file if one exists there, and otherwise
// looks it up among the builtin presets.
func Resolve(nameOrPath string) (Preset, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		return Load(nameOrPath)
	}
	if p, ok := Find(nameOrPath); ok {
		return p, nil
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, nameOrPath)
}

// ApplyOverrides applies "key=value" assignments, such as those given on a
// command line, to s in order.
func ApplyOverrides(s eq.Settings, overrides []string) (eq.Settings, error) {
	for _, o := range overrides {
		key, val, ok := strings.Cut(o, "=")
		if !ok {
			return s, fmt.Errorf("preset: override %q is not key=value", o)
		}
		p, ok := eq.ParamByKey(strings.TrimSpace(key))
		if !ok {
			return s, fmt.Errorf("%w: %q", eq.ErrUnknownParam, key)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return s, fmt.Errorf("preset: override %q: %w", o, err)
		}
		if s, err = s.With(p.ID, v); err != nil {
			return s, err
		}
	}
	return s, nil
}
