package program

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

type segment struct {
	vaddr uint32
	data  []byte
	memsz uint32
	flags uint32
}

// writeELF writes a minimal ELF32 ARM executable holding only program
// headers.
func writeELF(t *testing.T, le binary.ByteOrder, segments []segment) string {
	t.Helper()
	const ehsize, phentsize = 52, 32

	var buf bytes.Buffer
	ident := [16]byte{0x7f, 'E', 'L', 'F', 1, 1, 1}
	if le == binary.BigEndian {
		ident[5] = 2
	}
	buf.Write(ident[:])
	binary.Write(&buf, le, uint16(2))  // ET_EXEC
	binary.Write(&buf, le, uint16(40)) // EM_ARM
	binary.Write(&buf, le, uint32(1))
	binary.Write(&buf, le, uint32(0x08000101))
	binary.Write(&buf, le, uint32(ehsize))
	binary.Write(&buf, le, uint32(0))
	binary.Write(&buf, le, uint32(0x05000000))
	binary.Write(&buf, le, uint16(ehsize))
	binary.Write(&buf, le, uint16(phentsize))
	binary.Write(&buf, le, uint16(len(segments)))
	binary.Write(&buf, le, uint16(40))
	binary.Write(&buf, le, uint16(0))
	binary.Write(&buf, le, uint16(0))

	off := uint32(ehsize + phentsize*len(segments))
	for _, s := range segments {
		for _, v := range []uint32{1, off, s.vaddr, s.vaddr, uint32(len(s.data)), s.memsz, s.flags, 4} {
			binary.Write(&buf, le, v)
		}
		off += uint32(len(s.data))
	}
	for _, s := range segments {
		buf.Write(s.data)
	}

	path := filepath.Join(t.TempDir(), "firmware.elf")
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenELF(t *testing.T) {
	const pfX, pfW, pfR = 1, 2, 4
	path := writeELF(t, binary.LittleEndian, []segment{
		{vaddr: 0x08000000, data: []byte{0, 0x10, 0, 0x20, 0x01, 0x01, 0, 0x08}, memsz: 8, flags: pfR | pfX},
		{vaddr: 0x20000000, data: []byte{1, 2, 3, 4}, memsz: 0x100, flags: pfR | pfW},
	})

	db, err := OpenELF(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.Name != "firmware.elf" || db.PointerSize != 4 || db.BigEndian {
		t.Errorf("unexpected database header %q %d %v", db.Name, db.PointerSize, db.BigEndian)
	}

	expected := []struct {
		name        string
		start       Address
		length      uint64
		perm        Perm
		initialized bool
	}{
		{"segment_0", 0x08000000, 8, Read | Exec, true},
		{"segment_1", 0x20000000, 4, Read | Write, true},
		{"segment_1.bss", 0x20000004, 0xfc, Read | Write, false},
	}
	blocks := db.Memory.Blocks()
	if len(blocks) != len(expected) {
		t.Fatalf("expected %d blocks, got %v", len(expected), blocks)
	}
	for i, b := range blocks {
		e := expected[i]
		if b.Name != e.name || b.Start != e.start || b.Length != e.length || b.Perm != e.perm || b.Initialized() != e.initialized {
			t.Errorf("block %d: expected %+v, got %s %s %d %s %v", i, e, b.Name, b.Start, b.Length, b.Perm, b.Initialized())
		}
		if b.Source != Imported {
			t.Errorf("block %s: expected IMPORTED source, got %s", b.Name, b.Source)
		}
	}
	if !bytes.Equal(blocks[1].Data, []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected segment contents %v", blocks[1].Data)
	}
	if n := len(db.Symbols.Labels()); n != 0 {
		t.Errorf("expected no labels without a symbol table, got %d", n)
	}
}

func TestOpenELFBigEndian(t *testing.T) {
	path := writeELF(t, binary.BigEndian, []segment{
		{vaddr: 0x00000000, data: []byte{0, 0, 0, 0}, memsz: 4, flags: 4},
	})

	db, err := OpenELF(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.BigEndian {
		t.Error("expected a big endian database")
	}
}

func TestOpenELFMissing(t *testing.T) {
	if _, err := OpenELF(filepath.Join(t.TempDir(), "missing.elf")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
