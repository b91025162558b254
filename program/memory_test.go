package program

import (
	"errors"
	"testing"
)

func TestCreateBlocks(t *testing.T) {
	var m Memory
	tests := []struct {
		name   string
		start  Address
		length uint64
		err    error
	}{
		{"UART0", 0x40034000, 0x1000, nil},
		{"PLL_SYS", 0x40028000, 0x1000, nil},
		{"UART0_xor", 0x40035000, 0x1000, nil},
		{"overlapAbove", 0x40034800, 0x1000, ErrMemoryConflict},
		{"overlapBelow", 0x40027800, 0x1000, ErrMemoryConflict},
		{"inside", 0x40034100, 0x10, ErrMemoryConflict},
		{"empty", 0x50000000, 0, ErrInvalidLength},
		{"wrap", 0xfffffffffffff000, 0x2000, ErrInvalidLength},
	}

	for _, tc := range tests {
		_, err := m.CreateUninitializedBlock(tc.name, tc.start, tc.length)
		if tc.err == nil && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.err != nil && !errors.Is(err, tc.err) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}

	var conflict *ConflictError
	_, err := m.CreateUninitializedBlock("again", 0x40034000, 4)
	if !errors.As(err, &conflict) || conflict.Existing != "UART0(0x40034000:0x40035000)" {
		t.Errorf("expected conflict with UART0, got %v", err)
	}

	blocks := m.Blocks()
	expected := []string{"PLL_SYS", "UART0", "UART0_xor"}
	if len(blocks) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, blocks)
	}
	for i, b := range blocks {
		if b.Name != expected[i] {
			t.Errorf("block %d: expected %s, got %s", i, expected[i], b.Name)
		}
		if b.Initialized() {
			t.Errorf("block %s should be uninitialized", b.Name)
		}
	}

	if !m.Contains(0x40034ff0, 0x20) {
		t.Error("expected adjacent blocks to cover the range")
	}
	if m.Contains(0x40028ff0, 0x20) {
		t.Error("range crossing into unmapped memory must not be contained")
	}
	if m.Contains(^Address(0)-1, 4) {
		t.Error("range wrapping past the top of the address space must not be contained")
	}
}

func TestPermString(t *testing.T) {
	for _, tc := range []struct {
		perm     Perm
		expected string
	}{
		{0, "----"},
		{Read | Write | Volatile, "rw-v"},
		{Read | Exec, "r-x-"},
	} {
		if s := tc.perm.String(); s != tc.expected {
			t.Errorf("expected %s, got %s", tc.expected, s)
		}
	}
}
