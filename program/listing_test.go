package program

import (
	"errors"
	"testing"
)

func TestCreateData(t *testing.T) {
	db := NewDatabase("test")
	if _, err := db.Memory.CreateUninitializedBlock("UART0", 0x40034000, 0x1000); err != nil {
		t.Fatal(err)
	}

	uart := NewStructure("UART", 0x1c)
	if _, err := db.Listing.CreateData(0x40034000, uart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		addr Address
		dt   DataType
		err  error
	}{
		{"overlapStart", 0x40034000, UnsignedInteger, ErrDataConflict},
		{"overlapTail", 0x40034018, UnsignedLongLong, ErrDataConflict},
		{"before", 0x40033ffc, UnsignedInteger, ErrNoMemory},
		{"afterBlock", 0x40034ffe, UnsignedInteger, ErrNoMemory},
		{"empty", 0x40034100, NewStructure("EMPTY", 0), ErrInvalidLength},
		{"free", 0x4003401c, UnsignedInteger, nil},
	}
	for _, tc := range tests {
		_, err := db.Listing.CreateData(tc.addr, tc.dt)
		if tc.err == nil && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.err != nil && !errors.Is(err, tc.err) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}

	if d := db.Listing.DataAt(0x40034000); d == nil || d.Type != uart {
		t.Errorf("expected UART at base, got %+v", d)
	}
	if n := len(db.Listing.Data()); n != 2 {
		t.Errorf("expected 2 data items, got %d", n)
	}
}
