package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"omibyte.io/svdload/program"
)

// Ghidra writes a Python script that replays the load pass inside Ghidra's
// script manager against the currently open program.
type Ghidra struct{}

var ghidraTypes = map[*program.Primitive]string{
	program.Byte:             "ByteDataType()",
	program.UnsignedShort:    "UnsignedShortDataType()",
	program.UnsignedInteger:  "UnsignedIntegerDataType()",
	program.UnsignedLongLong: "UnsignedLongLongDataType()",
}

const ghidraPrelude = `from ghidra.program.model.data import ByteDataType, UnsignedShortDataType, \
    UnsignedIntegerDataType, UnsignedLongLongDataType, StructureDataType, \
    PointerDataType, DataTypeConflictHandler
from ghidra.program.model.mem import MemoryConflictException
from ghidra.program.model.symbol import SourceType
from ghidra.util.exception import DuplicateNameException

space = currentProgram.getAddressFactory().getDefaultAddressSpace()
memory = currentProgram.getMemory()
dtm = currentProgram.getDataTypeManager()
symtbl = currentProgram.getSymbolTable()
listing = currentProgram.getListing()
structs = {}


def block(name, start, length, comment):
    try:
        b = memory.createUninitializedBlock(name, space.getAddress(start), length, False)
    except MemoryConflictException as e:
        print("Failed to generate due to conflict in memory block for: " + name)
        return
    except Exception as e:
        print("Failed to generate memory block for: " + name)
        return
    b.setRead(True)
    b.setWrite(True)
    b.setExecute(False)
    b.setVolatile(True)
    b.setComment(comment)


def namespace(name):
    try:
        return symtbl.createNameSpace(None, name, SourceType.ANALYSIS)
    except DuplicateNameException:
        return symtbl.getNamespace(name, None)


def struct(name, length, fields):
    s = StructureDataType(name, length)
    for offset, dt, field, comment in fields:
        s.replaceAtOffset(offset, dt, dt.getLength(), field, comment)
    s = dtm.addDataType(s, DataTypeConflictHandler.REPLACE_HANDLER)
    dtm.addDataType(PointerDataType(s, %d), DataTypeConflictHandler.REPLACE_HANDLER)
    structs[name] = s


def peripheral(name, address, ns, struct_name):
    try:
        symtbl.createLabel(space.getAddress(address), name, ns, SourceType.USER_DEFINED)
        listing.createData(space.getAddress(address), structs[struct_name])
    except Exception as e:
        print("Failed to generate peripheral " + name)


`

func (g *Ghidra) Export(w io.Writer, db *program.Database) error {
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "# Replays the svdload annotations for %s.\n", db.Name)
	fmt.Fprintf(out, "# @category svdload\n\n")
	fmt.Fprintf(out, ghidraPrelude, db.PointerSize)

	for _, b := range createdBlocks(db) {
		fmt.Fprintf(out, "block(%s, %#x, %#x, %s)\n", pyString(b.Name), uint64(b.Start), b.Length, pyString(b.Comment))
	}
	fmt.Fprintln(out)

	for _, s := range db.DataTypes.Structures() {
		fmt.Fprintf(out, "struct(%s, %#x, [\n", pyString(s.Name()), s.Len())
		for _, c := range s.Components() {
			fmt.Fprintf(out, "    (%#x, %s, %s, %s),\n", c.Offset, ghidraType(c.Type), pyString(c.Name), pyComment(c.Comment))
		}
		fmt.Fprintln(out, "])")
	}
	fmt.Fprintln(out)

	namespaces := map[*program.Namespace]string{}
	for _, p := range placements(db) {
		ns, ok := namespaces[p.Label.Namespace]
		if !ok {
			ns = "None"
			if p.Label.Namespace != nil {
				ns = fmt.Sprintf("ns%d", len(namespaces))
				fmt.Fprintf(out, "%s = namespace(%s)\n", ns, pyString(p.Label.Namespace.Name))
			}
			namespaces[p.Label.Namespace] = ns
		}
		fmt.Fprintf(out, "peripheral(%s, %#x, %s, %s)\n", pyString(p.Label.Name), uint64(p.Label.Address), ns, pyString(p.Structure.Name()))
	}
	return out.Flush()
}

func ghidraType(dt program.DataType) string {
	switch t := dt.(type) {
	case *program.Primitive:
		if name, ok := ghidraTypes[t]; ok {
			return name
		}
	case *program.Structure:
		return fmt.Sprintf("structs[%s]", pyString(t.Name()))
	}
	return "UnsignedIntegerDataType()"
}

// pyString quotes s as a Python unicode literal.
func pyString(s string) string {
	return "u" + strconv.QuoteToASCII(s)
}

func pyComment(s string) string {
	if len(s) == 0 {
		return "None"
	}
	return pyString(s)
}
