package program

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Data is a data type applied at an address.
type Data struct {
	Address Address
	Type    DataType
}

func (d *Data) End() Address {
	return d.Address.Add(d.Type.Len())
}

// Listing holds the defined data of a program.
type Listing struct {
	memory *Memory
	data   []*Data
}

// CreateData applies dt at addr. The whole range must be backed by memory and
// must not intersect previously defined data.
func (l *Listing) CreateData(addr Address, dt DataType) (*Data, error) {
	n := dt.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: %s has no size", ErrInvalidLength, dt.Name())
	}
	if !l.memory.Contains(addr, n) {
		return nil, fmt.Errorf("%w: %s at %s", ErrNoMemory, dt.Name(), addr)
	}

	d := &Data{Address: addr, Type: dt}
	i := slices.IndexFunc(l.data, func(e *Data) bool {
		return e.Address >= addr
	})
	if i < 0 {
		i = len(l.data)
	}
	if i > 0 && l.data[i-1].End() > addr {
		return nil, l.conflict(d, l.data[i-1])
	}
	if i < len(l.data) && l.data[i].Address < d.End() {
		return nil, l.conflict(d, l.data[i])
	}

	l.data = slices.Insert(l.data, i, d)
	return d, nil
}

func (l *Listing) conflict(d, existing *Data) error {
	return &ConflictError{
		Err:      ErrDataConflict,
		Name:     fmt.Sprintf("%s@%s", d.Type.Name(), d.Address),
		Existing: fmt.Sprintf("%s@%s", existing.Type.Name(), existing.Address),
	}
}

// DataAt returns the data starting at addr, or nil.
func (l *Listing) DataAt(addr Address) *Data {
	for _, d := range l.data {
		if d.Address == addr {
			return d
		}
	}
	return nil
}

// Data returns all defined data in address order.
func (l *Listing) Data() []*Data {
	return l.data
}
