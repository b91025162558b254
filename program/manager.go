package program

// A ConflictHandler decides what AddDataType does when a type with the same
// name already exists.
type ConflictHandler int

const (
	// ReplaceHandler replaces the existing type.
	ReplaceHandler ConflictHandler = iota
	// KeepHandler keeps the existing type and returns it.
	KeepHandler
)

// DataTypeManager owns the named data types of a program.
type DataTypeManager struct {
	types map[string]DataType
	order []string
}

// AddDataType registers dt under its name and returns the type now stored
// under that name.
func (m *DataTypeManager) AddDataType(dt DataType, handler ConflictHandler) DataType {
	if m.types == nil {
		m.types = make(map[string]DataType)
	}

	name := dt.Name()
	if existing, ok := m.types[name]; ok {
		if handler == KeepHandler {
			return existing
		}
		m.types[name] = dt
		return dt
	}

	m.types[name] = dt
	m.order = append(m.order, name)
	return dt
}

func (m *DataTypeManager) DataType(name string) (DataType, bool) {
	dt, ok := m.types[name]
	return dt, ok
}

// All returns the data types in the order they were first added.
func (m *DataTypeManager) All() []DataType {
	result := make([]DataType, 0, len(m.order))
	for _, name := range m.order {
		result = append(result, m.types[name])
	}
	return result
}

// Structures returns the structure types in the order they were first added.
func (m *DataTypeManager) Structures() []*Structure {
	var result []*Structure
	for _, dt := range m.All() {
		if s, ok := dt.(*Structure); ok {
			result = append(result, s)
		}
	}
	return result
}
