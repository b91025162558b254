// Package export writes the objects a load pass created into formats other
// tools understand.
package export

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"omibyte.io/svdload/program"
)

var ErrUnknownExporter = errors.New("unknown exporter")

// An Exporter writes a program database, or the parts of it that were not
// imported from a firmware image, to w.
type Exporter interface {
	Export(w io.Writer, db *program.Database) error
}

var exporters = map[string]func() Exporter{
	"ghidra": func() Exporter { return &Ghidra{} },
	"header": func() Exporter { return &Header{} },
	"ld":     func() Exporter { return &LinkerScript{} },
}

// ByName returns the exporter registered under name.
func ByName(name string) (Exporter, error) {
	if fn, ok := exporters[strings.ToLower(name)]; ok {
		return fn(), nil
	}
	return nil, fmt.Errorf("%w: %s (have %s)", ErrUnknownExporter, name, strings.Join(Names(), ", "))
}

// Names lists the registered exporters in alphabetical order.
func Names() []string {
	names := maps.Keys(exporters)
	slices.Sort(names)
	return names
}

// A placement is a structure applied at a labeled address.
type placement struct {
	Label     *program.Symbol
	Structure *program.Structure
}

func createdBlocks(db *program.Database) []*program.MemoryBlock {
	var result []*program.MemoryBlock
	for _, b := range db.Memory.Blocks() {
		if b.Source != program.Imported {
			result = append(result, b)
		}
	}
	return result
}

func createdLabels(db *program.Database) []*program.Symbol {
	var result []*program.Symbol
	for _, s := range db.Symbols.Labels() {
		if s.Source == program.UserDefined {
			result = append(result, s)
		}
	}
	return result
}

// placements pairs every created label with the structure defined at its
// address. Labels without a structure are left out.
func placements(db *program.Database) []placement {
	var result []placement
	for _, s := range createdLabels(db) {
		d := db.Listing.DataAt(s.Address)
		if d == nil {
			continue
		}
		if st, ok := d.Type.(*program.Structure); ok {
			result = append(result, placement{Label: s, Structure: st})
		}
	}
	return result
}

var invalidIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]`)

// identifier turns name into a C identifier.
func identifier(name string) string {
	id := invalidIdentifier.ReplaceAllString(name, "_")
	if len(id) == 0 || (id[0] >= '0' && id[0] <= '9') {
		id = "_" + id
	}
	return id
}
