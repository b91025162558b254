package program

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"path/filepath"
)

// OpenELF creates a database from an ELF image. Loadable segments become
// memory blocks and symbol table entries become global labels.
func OpenELF(path string) (*Database, error) {
	e, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer e.Close()

	db := NewDatabase(filepath.Base(path))
	if e.Class == elf.ELFCLASS64 {
		db.PointerSize = 8
	}
	db.BigEndian = e.Data == elf.ELFDATA2MSB

	for i, prog := range e.Progs {
		if prog.Type != elf.PT_LOAD || prog.Memsz == 0 {
			continue
		}
		if err := db.readLoad(i, prog); err != nil {
			return nil, err
		}
	}

	if err := db.readSymbols(e); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *Database) readLoad(i int, prog *elf.Prog) error {
	var perm Perm
	if prog.Flags&elf.PF_R != 0 {
		perm |= Read
	}
	if prog.Flags&elf.PF_W != 0 {
		perm |= Write
	}
	if prog.Flags&elf.PF_X != 0 {
		perm |= Exec
	}

	name := fmt.Sprintf("segment_%d", i)
	start := Address(prog.Vaddr)
	if prog.Filesz > 0 {
		data, err := io.ReadAll(prog.Open())
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		b, err := db.Memory.CreateInitializedBlock(name, start, data)
		if err != nil {
			return err
		}
		b.Perm, b.Source = perm, Imported
	}
	if prog.Filesz < prog.Memsz {
		// The remainder is zero-filled at run time.
		b, err := db.Memory.CreateUninitializedBlock(name+".bss", start.Add(prog.Filesz), prog.Memsz-prog.Filesz)
		if err != nil {
			return err
		}
		b.Perm, b.Source = perm, Imported
	}
	return nil
}

func (db *Database) readSymbols(e *elf.File) error {
	syms, err := e.Symbols()
	if errors.Is(err, elf.ErrNoSymbols) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read symbols: %w", err)
	}

	for _, sym := range syms {
		typ := elf.ST_TYPE(sym.Info)
		if typ != elf.STT_FUNC && typ != elf.STT_OBJECT && typ != elf.STT_NOTYPE {
			continue
		}
		// ARM mapping symbols ($a, $t, $d) mark code and data, not names.
		if len(sym.Name) == 0 || sym.Name[0] == '$' || sym.Section == elf.SHN_UNDEF || checkName(sym.Name) != nil {
			continue
		}
		addr := sym.Value
		if e.Machine == elf.EM_ARM && typ == elf.STT_FUNC {
			// Drop the Thumb bit.
			addr &^= 1
		}
		if _, err := db.Symbols.CreateLabel(Address(addr), sym.Name, nil, Imported); err != nil {
			return err
		}
	}
	return nil
}
