package builder

import (
	"omibyte.io/svdload/program"
	"omibyte.io/svdload/svd"
)

// typeForSize picks the primitive matching a register width in bits. Widths
// that are not 8, 16 or 64 bits are treated as 32-bit registers.
func typeForSize(size uint64) *program.Primitive {
	switch size / 8 {
	case 1:
		return program.Byte
	case 2:
		return program.UnsignedShort
	case 8:
		return program.UnsignedLongLong
	default:
		return program.UnsignedInteger
	}
}

// structureSize returns the number of bytes needed to hold every register.
func structureSize(registers []svd.FlatRegister) uint64 {
	var size uint64
	for _, r := range registers {
		if end := r.Offset + typeForSize(r.Size).Len(); end > size {
			size = end
		}
	}
	return size
}
