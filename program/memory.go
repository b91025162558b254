package program

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// A Perm represents the access allowed to a MemoryBlock. Volatile marks memory
// whose contents may change outside of program control, such as I/O.
type Perm uint8

const (
	Read Perm = 1 << iota
	Write
	Exec
	Volatile
)

func (p Perm) String() string {
	var b strings.Builder
	for _, f := range []struct {
		bit Perm
		c   byte
	}{{Read, 'r'}, {Write, 'w'}, {Exec, 'x'}, {Volatile, 'v'}} {
		if p&f.bit != 0 {
			b.WriteByte(f.c)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// A MemoryBlock is a contiguous named range of the address space.
type MemoryBlock struct {
	Name    string
	Start   Address
	Length  uint64
	Perm    Perm
	Comment string
	Source  SourceType

	// Contents of the block for initialized blocks, nil otherwise.
	Data []byte
}

// End returns the address of the byte just beyond the block.
func (b *MemoryBlock) End() Address {
	return b.Start.Add(b.Length)
}

func (b *MemoryBlock) Initialized() bool {
	return b.Data != nil
}

func (b *MemoryBlock) String() string {
	return fmt.Sprintf("%s(%s:%s)", b.Name, b.Start, b.End())
}

// Memory holds the non-overlapping memory blocks of a program, ordered by
// start address.
type Memory struct {
	blocks []*MemoryBlock
}

// CreateUninitializedBlock adds a block without contents. It fails with a
// *ConflictError if the range intersects an existing block.
func (m *Memory) CreateUninitializedBlock(name string, start Address, length uint64) (*MemoryBlock, error) {
	return m.add(&MemoryBlock{Name: name, Start: start, Length: length})
}

// CreateInitializedBlock adds a block holding a copy of data.
func (m *Memory) CreateInitializedBlock(name string, start Address, data []byte) (*MemoryBlock, error) {
	return m.add(&MemoryBlock{Name: name, Start: start, Length: uint64(len(data)), Data: slices.Clone(data)})
}

func (m *Memory) add(block *MemoryBlock) (*MemoryBlock, error) {
	if block.Length == 0 {
		return nil, fmt.Errorf("%w: block %s is empty", ErrInvalidLength, block.Name)
	}
	if block.End() < block.Start {
		return nil, fmt.Errorf("%w: block %s wraps the address space", ErrInvalidLength, block.Name)
	}

	i, _ := slices.BinarySearchFunc(m.blocks, block.Start, func(b *MemoryBlock, a Address) int {
		switch {
		case b.Start < a:
			return -1
		case b.Start > a:
			return 1
		}
		return 0
	})
	if i > 0 && m.blocks[i-1].End() > block.Start {
		return nil, &ConflictError{Err: ErrMemoryConflict, Name: block.String(), Existing: m.blocks[i-1].String()}
	}
	if i < len(m.blocks) && m.blocks[i].Start < block.End() {
		return nil, &ConflictError{Err: ErrMemoryConflict, Name: block.String(), Existing: m.blocks[i].String()}
	}

	m.blocks = slices.Insert(m.blocks, i, block)
	return block, nil
}

// Blocks returns the blocks in address order.
func (m *Memory) Blocks() []*MemoryBlock {
	return m.blocks
}

// Block returns the block containing a, or nil.
func (m *Memory) Block(a Address) *MemoryBlock {
	for _, b := range m.blocks {
		if b.Start <= a && a < b.End() {
			return b
		}
	}
	return nil
}

// Contains reports whether all n bytes starting at a are backed by blocks.
// Adjacent blocks may together cover the range.
func (m *Memory) Contains(a Address, n uint64) bool {
	end := a.Add(n)
	if end < a {
		return false
	}
	for a < end {
		b := m.Block(a)
		if b == nil {
			return false
		}
		a = b.End()
	}
	return true
}
