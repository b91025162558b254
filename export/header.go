package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"omibyte.io/svdload/program"
)

// Header writes a C header with one packed struct per register block and a
// pointer macro per peripheral.
type Header struct{}

func (h *Header) Export(w io.Writer, db *program.Database) error {
	out := bufio.NewWriter(w)
	guard := strings.ToUpper(identifier(db.Name)) + "_PERIPHERALS_H"

	fmt.Fprintf(out, "/* %s peripherals. Generated by svdload, do not edit. */\n\n", db.Name)
	fmt.Fprintf(out, "#ifndef %s\n#define %s\n\n#include <stdint.h>\n\n", guard, guard)

	for _, s := range db.DataTypes.Structures() {
		writeStruct(out, s)
	}

	for _, p := range placements(db) {
		fmt.Fprintf(out, "#define %s ((%s_t *)%#x)\n", identifier(p.Label.Name), identifier(p.Structure.Name()), uint64(p.Label.Address))
	}

	fmt.Fprintf(out, "\n#endif /* %s */\n", guard)
	return out.Flush()
}

func writeStruct(w io.Writer, s *program.Structure) {
	fmt.Fprintln(w, "typedef struct __attribute__((packed)) {")

	var off uint64
	for _, c := range s.Components() {
		if c.Offset > off {
			fmt.Fprintf(w, "\tuint8_t reserved_%#x[%#x];\n", off, c.Offset-off)
		}
		fmt.Fprintf(w, "\tvolatile %s %s;", ctype(c.Type), identifier(c.Name))
		if len(c.Comment) > 0 {
			fmt.Fprintf(w, " /* %s */", strings.ReplaceAll(c.Comment, "*/", "* /"))
		}
		fmt.Fprintln(w)
		off = c.End()
	}
	if s.Len() > off {
		fmt.Fprintf(w, "\tuint8_t reserved_%#x[%#x];\n", off, s.Len()-off)
	}

	fmt.Fprintf(w, "} %s_t;\n\n", identifier(s.Name()))
}

func ctype(dt program.DataType) string {
	switch t := dt.(type) {
	case *program.Primitive:
		return t.CType()
	case *program.Structure:
		return identifier(t.Name()) + "_t"
	default:
		return fmt.Sprintf("uint8_t /* %s */", dt.Name())
	}
}
