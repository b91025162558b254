package svd

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	unresolved = iota
	resolving
	resolved
)

// Resolve copies inherited content into derived peripherals and expands dim
// arrays of registers and clusters into individual elements.
func (d *DeviceElement) Resolve() error {
	peripherals := d.Peripherals.Elements
	state := make([]int, len(peripherals))

	var resolve func(i int) error
	resolve = func(i int) error {
		p := &peripherals[i]
		switch state[i] {
		case resolved:
			return nil
		case resolving:
			return fmt.Errorf("%w: %s", ErrDerivationCycle, p.Name)
		}

		if len(p.DerivedFrom) == 0 {
			state[i] = resolved
			return nil
		}

		state[i] = resolving
		j, ok := d.Peripherals.Find(p.DerivedFrom)
		if !ok {
			return fmt.Errorf("%w: %s derives from %s", ErrUnknownBase, p.Name, p.DerivedFrom)
		}
		if err := resolve(j); err != nil {
			return err
		}
		p.inherit(&peripherals[j])
		state[i] = resolved
		return nil
	}

	for i := range peripherals {
		if err := resolve(i); err != nil {
			return err
		}
	}

	for i := range peripherals {
		p := &peripherals[i]
		registers, err := expandRegisters(p.Registers.RegisterElements)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		clusters, err := expandClusters(p.Registers.ClusterElements)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		p.Registers = RegistersElement{
			RegisterElements: registers,
			ClusterElements:  clusters,
		}
	}
	return nil
}

// inherit fills in everything the derived peripheral does not declare itself.
func (p *PeripheralElement) inherit(base *PeripheralElement) {
	if len(p.Description) == 0 {
		p.Description = base.Description
	}
	if len(p.Group) == 0 {
		p.Group = base.Group
	}
	if p.RegisterSize == 0 {
		p.RegisterSize = base.RegisterSize
	}
	if len(p.Access) == 0 {
		p.Access = base.Access
	}
	if len(p.AddressBlocks) == 0 {
		p.AddressBlocks = base.AddressBlocks
	}
	if p.Registers.Empty() && !base.Registers.Empty() {
		p.Registers = base.Registers
		p.InheritsRegisters = true
	}
}

func expandRegisters(registers []RegisterElement) ([]RegisterElement, error) {
	result := make([]RegisterElement, 0, len(registers))
	for _, r := range registers {
		if r.Count == 0 {
			result = append(result, r)
			continue
		}

		indices, err := dimIndices(r.Count, r.DimIndex)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", r.Name, err)
		}
		for k, index := range indices {
			element := r
			element.Name = dimName(r.Name, index)
			element.Description = strings.ReplaceAll(r.Description, "%s", index)
			element.AddressOffset = r.AddressOffset + Integer(k)*r.Increment
			element.Count, element.Increment, element.DimIndex = 0, 0, ""
			result = append(result, element)
		}
	}
	return result, nil
}

func expandClusters(clusters []ClusterElement) ([]ClusterElement, error) {
	result := make([]ClusterElement, 0, len(clusters))
	for _, c := range clusters {
		registers, err := expandRegisters(c.Registers)
		if err != nil {
			return nil, fmt.Errorf("cluster %s: %w", c.Name, err)
		}
		nested, err := expandClusters(c.Clusters)
		if err != nil {
			return nil, fmt.Errorf("cluster %s: %w", c.Name, err)
		}
		c.Registers, c.Clusters = registers, nested

		if c.Count == 0 {
			result = append(result, c)
			continue
		}

		indices, err := dimIndices(c.Count, c.DimIndex)
		if err != nil {
			return nil, fmt.Errorf("cluster %s: %w", c.Name, err)
		}
		for k, index := range indices {
			element := c
			element.Name = dimName(c.Name, index)
			element.Description = strings.ReplaceAll(c.Description, "%s", index)
			element.AddressOffset = c.AddressOffset + Integer(k)*c.Increment
			element.Count, element.Increment, element.DimIndex = 0, 0, ""
			result = append(result, element)
		}
	}
	return result, nil
}

// maxDim bounds the element count of a dim array.
const maxDim = 1 << 16

// dimIndices returns the index strings of a dim array. Without an explicit
// dimIndex the indices are 0 through dim-1.
func dimIndices(dim Integer, index string) ([]string, error) {
	if dim > maxDim {
		return nil, fmt.Errorf("%w: dim %d exceeds %d", ErrDimIndex, uint64(dim), maxDim)
	}
	index = strings.TrimSpace(index)
	if len(index) == 0 {
		indices := make([]string, dim)
		for i := range indices {
			indices[i] = strconv.Itoa(i)
		}
		return indices, nil
	}

	var indices []string
	if lo, hi, ok := strings.Cut(index, "-"); ok && !strings.Contains(index, ",") {
		lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
		if a, err := strconv.Atoi(lo); err == nil {
			b, err := strconv.Atoi(hi)
			if err != nil || b < a {
				return nil, fmt.Errorf("%w: bad range %q", ErrDimIndex, index)
			}
			if b-a+1 != int(dim) {
				return nil, fmt.Errorf("%w: %d indices for dim %d", ErrDimIndex, b-a+1, dim)
			}
			for i := a; i <= b; i++ {
				indices = append(indices, strconv.Itoa(i))
			}
		} else if len(lo) == 1 && len(hi) == 1 && lo[0] <= hi[0] {
			for c := lo[0]; c <= hi[0]; c++ {
				indices = append(indices, string(c))
			}
		} else {
			return nil, fmt.Errorf("%w: bad range %q", ErrDimIndex, index)
		}
	} else {
		for _, s := range strings.Split(index, ",") {
			indices = append(indices, strings.TrimSpace(s))
		}
	}

	if len(indices) != int(dim) {
		return nil, fmt.Errorf("%w: %d indices for dim %d", ErrDimIndex, len(indices), dim)
	}
	return indices, nil
}

// dimName substitutes index into an array name. Both "NAME%s" and the array
// form "NAME[%s]" produce "NAME<index>".
func dimName(name, index string) string {
	switch {
	case strings.Contains(name, "[%s]"):
		return strings.ReplaceAll(name, "[%s]", index)
	case strings.Contains(name, "%s"):
		return strings.ReplaceAll(name, "%s", index)
	default:
		return name + index
	}
}
