package program

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// A DataType describes the layout of a value in memory.
type DataType interface {
	Name() string
	Len() uint64
}

// A Primitive is a fixed-size unsigned integer type.
type Primitive struct {
	name  string
	size  uint64
	ctype string
}

var (
	Byte             = &Primitive{"byte", 1, "uint8_t"}
	UnsignedShort    = &Primitive{"ushort", 2, "uint16_t"}
	UnsignedInteger  = &Primitive{"uint", 4, "uint32_t"}
	UnsignedLongLong = &Primitive{"ulonglong", 8, "uint64_t"}
)

func (p *Primitive) Name() string  { return p.name }
func (p *Primitive) Len() uint64   { return p.size }
func (p *Primitive) CType() string { return p.ctype }

// A Pointer refers to a value of type Elem.
type Pointer struct {
	Elem DataType
	size uint64
}

func NewPointer(elem DataType, size uint64) *Pointer {
	return &Pointer{Elem: elem, size: size}
}

func (p *Pointer) Name() string { return p.Elem.Name() + " *" }
func (p *Pointer) Len() uint64  { return p.size }

// A Component is a named field of a Structure.
type Component struct {
	Offset  uint64
	Type    DataType
	Name    string
	Comment string
}

func (c Component) End() uint64 {
	return c.Offset + c.Type.Len()
}

// A Structure has a fixed length; bytes not covered by a component are
// undefined.
type Structure struct {
	name       string
	length     uint64
	components []Component
}

func NewStructure(name string, length uint64) *Structure {
	return &Structure{name: name, length: length}
}

func (s *Structure) Name() string { return s.name }
func (s *Structure) Len() uint64  { return s.length }

// Components returns the defined components ordered by offset.
func (s *Structure) Components() []Component {
	return s.components
}

// ComponentAt returns the component covering offset off.
func (s *Structure) ComponentAt(off uint64) (Component, bool) {
	for _, c := range s.components {
		if c.Offset <= off && off < c.End() {
			return c, true
		}
	}
	return Component{}, false
}

// ReplaceAtOffset places a component of type dt at offset off. A component
// already covering off is removed first. The new component may only consume
// undefined bytes after that.
func (s *Structure) ReplaceAtOffset(off uint64, dt DataType, name, comment string) error {
	if dt.Len() == 0 || off > s.length || dt.Len() > s.length-off {
		return fmt.Errorf("%w: %s at %#x (%d bytes) in %s (%d bytes)", ErrOutOfBounds, name, off, dt.Len(), s.name, s.length)
	}
	end := off + dt.Len()

	components := make([]Component, 0, len(s.components)+1)
	for _, c := range s.components {
		if c.Offset <= off && off < c.End() {
			continue
		}
		if c.Offset < end && off < c.End() {
			return fmt.Errorf("%w: %s at %#x overlaps %s at %#x in %s", ErrComponentConflict, name, off, c.Name, c.Offset, s.name)
		}
		components = append(components, c)
	}

	i := slices.IndexFunc(components, func(c Component) bool {
		return c.Offset > off
	})
	if i < 0 {
		i = len(components)
	}
	s.components = slices.Insert(components, i, Component{Offset: off, Type: dt, Name: name, Comment: comment})
	return nil
}
