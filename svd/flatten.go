package svd

import "golang.org/x/exp/slices"

// FlatRegister is a register with its offset relative to the peripheral base
// and its effective size in bits after inheritance.
type FlatRegister struct {
	Name        string
	Description string
	Offset      uint64
	Size        uint64
}

// FlatRegisters lists every register of the peripheral, including those inside
// clusters, in address offset order. Cluster registers are prefixed with the
// cluster name. Registers without a size take the peripheral's, then
// defaultSize.
func (p *PeripheralElement) FlatRegisters(defaultSize uint64) []FlatRegister {
	size := defaultSize
	if p.RegisterSize > 0 {
		size = uint64(p.RegisterSize)
	}
	return appendAddressable(nil, "", 0, size, p.Registers.RegisterElements, p.Registers.ClusterElements)
}

// appendAddressable flattens registers and clusters sorted together by their
// offset. Elements sharing an offset keep their declaration order, registers
// first.
func appendAddressable(result []FlatRegister, prefix string, base, size uint64, registers []RegisterElement, clusters []ClusterElement) []FlatRegister {
	objs := make([]Addressable, 0, len(registers)+len(clusters))
	for _, r := range registers {
		objs = append(objs, r)
	}
	for _, c := range clusters {
		objs = append(objs, c)
	}
	slices.SortStableFunc(objs, func(a, b Addressable) bool {
		return a.GetAddressOffset() < b.GetAddressOffset()
	})

	for _, obj := range objs {
		switch obj := obj.(type) {
		case RegisterElement:
			result = appendRegister(result, prefix, base, size, obj)
		case ClusterElement:
			result = appendCluster(result, prefix, base, size, obj)
		}
	}
	return result
}

func appendRegister(result []FlatRegister, prefix string, base, size uint64, r RegisterElement) []FlatRegister {
	flat := FlatRegister{
		Name:        prefix + r.Name,
		Description: r.Description,
		Offset:      base + uint64(r.AddressOffset),
		Size:        size,
	}
	if r.Size > 0 {
		flat.Size = uint64(r.Size)
	}
	return append(result, flat)
}

func appendCluster(result []FlatRegister, prefix string, base, size uint64, c ClusterElement) []FlatRegister {
	if c.RegisterSize > 0 {
		size = uint64(c.RegisterSize)
	}
	return appendAddressable(result, prefix+c.Name+"_", base+uint64(c.AddressOffset), size, c.Registers, c.Clusters)
}
