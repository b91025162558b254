package export

import (
	"bufio"
	"fmt"
	"io"

	"omibyte.io/svdload/program"
)

// LinkerScript writes a GNU ld fragment defining one symbol per peripheral.
// The peripheral memory map is included as a comment for reference since the
// regions must not be used for allocation.
type LinkerScript struct{}

func (l *LinkerScript) Export(w io.Writer, db *program.Database) error {
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "/* %s peripherals. Generated by svdload, do not edit.\n", db.Name)
	fmt.Fprintln(out, " *")
	fmt.Fprintln(out, " * MEMORY")
	fmt.Fprintln(out, " * {")
	for _, b := range createdBlocks(db) {
		fmt.Fprintf(out, " *\t%s (rw) : ORIGIN = %#08x, LENGTH = %#x\n", identifier(b.Name), uint64(b.Start), b.Length)
	}
	fmt.Fprintln(out, " * }")
	fmt.Fprintln(out, " */")
	fmt.Fprintln(out)

	for _, s := range createdLabels(db) {
		fmt.Fprintf(out, "PROVIDE(%s = %#08x);\n", identifier(s.Name), uint64(s.Address))
	}
	return out.Flush()
}
