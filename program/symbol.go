package program

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// SourceType records who created a symbol or block.
type SourceType int

const (
	Default SourceType = iota
	Analysis
	Imported
	UserDefined
)

func (s SourceType) String() string {
	return [...]string{
		"DEFAULT",
		"ANALYSIS",
		"IMPORTED",
		"USER_DEFINED",
	}[s]
}

// A Namespace groups symbols. The global namespace is nil.
type Namespace struct {
	Name   string
	Parent *Namespace
	Source SourceType
}

// Path returns the namespace path joined with "::".
func (n *Namespace) Path() string {
	if n == nil {
		return ""
	}
	if n.Parent == nil {
		return n.Name
	}
	return n.Parent.Path() + "::" + n.Name
}

type Symbol struct {
	Name      string
	Address   Address
	Namespace *Namespace
	Source    SourceType
}

// FullName returns the name qualified by its namespace path.
func (s *Symbol) FullName() string {
	if s.Namespace == nil {
		return s.Name
	}
	return s.Namespace.Path() + "::" + s.Name
}

type SymbolTable struct {
	namespaces []*Namespace
	labels     []*Symbol
}

// Namespace returns the namespace called name inside parent, or nil.
func (t *SymbolTable) Namespace(name string, parent *Namespace) *Namespace {
	for _, ns := range t.namespaces {
		if ns.Name == name && ns.Parent == parent {
			return ns
		}
	}
	return nil
}

func (t *SymbolTable) CreateNamespace(parent *Namespace, name string, source SourceType) (*Namespace, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if t.Namespace(name, parent) != nil {
		return nil, fmt.Errorf("%w: namespace %s", ErrDuplicateName, name)
	}
	ns := &Namespace{Name: name, Parent: parent, Source: source}
	t.namespaces = append(t.namespaces, ns)
	return ns, nil
}

// CreateLabel adds a label at addr. Creating a label that already exists
// returns the existing symbol.
func (t *SymbolTable) CreateLabel(addr Address, name string, ns *Namespace, source SourceType) (*Symbol, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	i, found := slices.BinarySearchFunc(t.labels, &Symbol{Name: name, Address: addr}, compareSymbols)
	for ; found && i < len(t.labels); i++ {
		s := t.labels[i]
		if s.Address != addr || s.Name != name {
			break
		}
		if s.Namespace == ns {
			return s, nil
		}
	}

	s := &Symbol{Name: name, Address: addr, Namespace: ns, Source: source}
	t.labels = slices.Insert(t.labels, i, s)
	return s, nil
}

// Labels returns all labels ordered by address and name.
func (t *SymbolTable) Labels() []*Symbol {
	return t.labels
}

// LabelsAt returns the labels at addr.
func (t *SymbolTable) LabelsAt(addr Address) []*Symbol {
	var result []*Symbol
	for _, s := range t.labels {
		if s.Address == addr {
			result = append(result, s)
		}
	}
	return result
}

// Lookup finds a label by name in ns.
func (t *SymbolTable) Lookup(name string, ns *Namespace) (*Symbol, bool) {
	for _, s := range t.labels {
		if s.Name == name && s.Namespace == ns {
			return s, true
		}
	}
	return nil, false
}

func compareSymbols(a, b *Symbol) int {
	switch {
	case a.Address < b.Address:
		return -1
	case a.Address > b.Address:
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}

func checkName(name string) error {
	if len(name) == 0 || strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
