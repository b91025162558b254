// Package memmap reduces peripheral address ranges to a set of
// non-overlapping memory regions.
package memmap

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"omibyte.io/svdload/svd"
)

var ErrEmptyRegion = errors.New("region start must be below its end")

// A Region is the half-open address range [Start, End) claimed by one or more
// peripherals. Parts holds the names of the peripherals in address order.
type Region struct {
	Start uint64
	End   uint64
	Parts []string
}

func NewRegion(name string, start, end uint64) (Region, error) {
	if start >= end {
		return Region{}, fmt.Errorf("%w: %s(%#x:%#x)", ErrEmptyRegion, name, start, end)
	}
	return Region{Start: start, End: end, Parts: []string{name}}, nil
}

// Name joins the names of all peripherals in the region with underscores.
func (r Region) Name() string {
	return strings.Join(r.Parts, "_")
}

func (r Region) Len() uint64 {
	return r.End - r.Start
}

// Overlaps reports whether the two regions share an address or touch.
func (r Region) Overlaps(o Region) bool {
	if o.End < r.Start {
		return false
	}
	if r.End < o.Start {
		return false
	}
	return true
}

func (r Region) String() string {
	return fmt.Sprintf("%s(%#x:%#x)", r.Name(), r.Start, r.End)
}

func (r *Region) absorb(o Region) {
	if o.Start < r.Start {
		r.Start = o.Start
	}
	if o.End > r.End {
		r.End = o.End
	}
	r.Parts = append(r.Parts, o.Parts...)
}

// Reduce sorts regions by start address and merges every region that overlaps
// its predecessor. The input slice is left untouched.
func Reduce(regions []Region) []Region {
	if len(regions) == 0 {
		return nil
	}

	sorted := slices.Clone(regions)
	slices.SortStableFunc(sorted, func(a, b Region) bool {
		return a.Start < b.Start
	})

	result := []Region{sorted[0].clone()}
	for _, region := range sorted[1:] {
		last := &result[len(result)-1]
		if region.Overlaps(*last) {
			last.absorb(region)
		} else {
			result = append(result, region.clone())
		}
	}
	return result
}

func (r Region) clone() Region {
	r.Parts = slices.Clone(r.Parts)
	return r
}

// FromDevice returns one region per peripheral spanning its base address to
// the end of its furthest address block. Peripherals without address blocks
// cannot be placed and are reported instead.
func FromDevice(device *svd.DeviceElement) ([]Region, []error) {
	var regions []Region
	var errs []error
	for _, p := range device.Peripherals.Elements {
		start := uint64(p.BaseAddress)
		region, err := NewRegion(p.Name, start, start+p.Extent())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		regions = append(regions, region)
	}
	return regions, errs
}
