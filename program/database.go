// Package program is an in-memory program database: the memory map, data
// types, symbols and defined data of a firmware image under analysis.
package program

// Database is a program under analysis.
type Database struct {
	Name        string
	PointerSize uint64
	BigEndian   bool

	Memory    *Memory
	DataTypes *DataTypeManager
	Symbols   *SymbolTable
	Listing   *Listing
}

// NewDatabase returns an empty little-endian program with 32-bit pointers.
func NewDatabase(name string) *Database {
	memory := &Memory{}
	return &Database{
		Name:        name,
		PointerSize: 4,
		Memory:      memory,
		DataTypes:   &DataTypeManager{},
		Symbols:     &SymbolTable{},
		Listing:     &Listing{memory: memory},
	}
}
