package targets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/svdload/svd"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets
var ErrTargetNotFound = errors.New("no target information for device")

// All returns the built-in target table.
func All() Targets {
	return targets
}

type Targets []TargetInfo
type TargetInfo struct {
	Series  string            `yaml:"series"`
	Chips   []string          `yaml:"chips"`
	Window  Window            `yaml:"window"`
	Aliases []Alias           `yaml:"aliases"`
	Rename  map[string]string `yaml:"rename"`
}

// Window is the half-open address range [Min, Max) in which aliases exist.
type Window struct {
	Min uint64 `yaml:"min"`
	Max uint64 `yaml:"max"`
}

// An Alias is a second view of a peripheral at a fixed offset from its base
// address, e.g. an atomic set/clear register window.
type Alias struct {
	Suffix  string `yaml:"suffix"`
	Offset  uint64 `yaml:"offset"`
	Comment string `yaml:"comment"`
}

// Applies reports whether aliases must be generated for a block or peripheral
// starting at addr.
func (t TargetInfo) Applies(addr uint64) bool {
	return len(t.Aliases) > 0 && addr >= t.Window.Min && addr < t.Window.Max
}

// StructName returns the structure name to use for the named peripheral.
func (t TargetInfo) StructName(peripheral string) string {
	if name, ok := t.Rename[peripheral]; ok {
		return name
	}
	return peripheral
}

func (t Targets) FindBySeries(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Series == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: series %s", ErrTargetNotFound, name)
}

func (t Targets) FindByChip(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Chips, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: chip %s", ErrTargetNotFound, name)
}

// Lookup finds the target for a device, first by its name and then by its
// series. A device without an entry gets the zero TargetInfo, which applies
// no tweaks.
func (t Targets) Lookup(device *svd.DeviceElement) (TargetInfo, bool) {
	if target, err := t.FindByChip(device.Name); err == nil {
		return target, true
	}
	if len(device.Series) > 0 {
		if target, err := t.FindBySeries(device.Series); err == nil {
			return target, true
		}
	}
	return TargetInfo{}, false
}

// Merge returns a table in which the entries of other take precedence.
func (t Targets) Merge(other Targets) Targets {
	result := make(Targets, 0, len(t)+len(other))
	result = append(result, other...)
	return append(result, t...)
}

// Parse decodes a target table in the format of the built-in one.
func Parse(data []byte) (Targets, error) {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	for i := range t.Elements {
		target := &t.Elements[i]
		target.Series = strings.ToLower(target.Series)
		for j := range target.Chips {
			target.Chips[j] = strings.ToLower(target.Chips[j])
		}
		if len(target.Aliases) > 0 && target.Window.Max <= target.Window.Min {
			return nil, fmt.Errorf("target %s: alias window %#x-%#x is empty", target.Series, target.Window.Min, target.Window.Max)
		}
	}
	return t.Elements, nil
}

// Load reads a user supplied target table from path.
func Load(path string) (Targets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func init() {
	var err error
	if targets, err = Parse(rawTargets); err != nil {
		panic(err)
	}
}
