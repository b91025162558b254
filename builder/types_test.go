package builder

import (
	"testing"

	"omibyte.io/svdload/program"
	"omibyte.io/svdload/svd"
)

func TestTypeForSize(t *testing.T) {
	tests := []struct {
		bits     uint64
		expected *program.Primitive
	}{
		{8, program.Byte},
		{16, program.UnsignedShort},
		{32, program.UnsignedInteger},
		{64, program.UnsignedLongLong},
		{24, program.UnsignedInteger},
		{1, program.UnsignedInteger},
		{128, program.UnsignedInteger},
	}
	for _, test := range tests {
		if actual := typeForSize(test.bits); actual != test.expected {
			t.Errorf("typeForSize(%d) = %s, want %s", test.bits, actual.Name(), test.expected.Name())
		}
	}
}

func TestStructureSize(t *testing.T) {
	registers := []svd.FlatRegister{
		{Name: "CTRL", Offset: 0x0, Size: 32},
		{Name: "STAMP", Offset: 0x8, Size: 64},
		{Name: "FLAG", Offset: 0x4, Size: 8},
	}
	if size := structureSize(registers); size != 0x10 {
		t.Errorf("expected 0x10, got %#x", size)
	}
	if size := structureSize(nil); size != 0 {
		t.Errorf("expected 0, got %#x", size)
	}
}
