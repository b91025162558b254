package program

import (
	"errors"
	"testing"
)

func TestSymbolTable(t *testing.T) {
	var st SymbolTable

	ns, err := st.CreateNamespace(nil, "Peripherals", Analysis)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateNamespace(nil, "Peripherals", Analysis); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if st.Namespace("Peripherals", nil) != ns {
		t.Error("namespace lookup failed")
	}

	for _, l := range []struct {
		addr Address
		name string
	}{
		{0x40038000, "UART1"},
		{0x40034000, "UART0"},
		{0x40035000, "UART0_xor"},
	} {
		if _, err := st.CreateLabel(l.addr, l.name, ns, UserDefined); err != nil {
			t.Fatalf("%s: %v", l.name, err)
		}
	}

	again, err := st.CreateLabel(0x40034000, "UART0", ns, UserDefined)
	if err != nil {
		t.Fatal(err)
	}
	if again.FullName() != "Peripherals::UART0" {
		t.Errorf("unexpected full name %s", again.FullName())
	}
	if _, err := st.CreateLabel(0x40034000, "UART0", nil, Imported); err != nil {
		t.Fatal(err)
	}

	labels := st.Labels()
	expected := []string{"UART0", "UART0", "UART0_xor", "UART1"}
	if len(labels) != len(expected) {
		t.Fatalf("expected %d labels, got %d", len(expected), len(labels))
	}
	for i, s := range labels {
		if s.Name != expected[i] {
			t.Errorf("label %d: expected %s, got %s", i, expected[i], s.Name)
		}
	}
	if n := len(st.LabelsAt(0x40034000)); n != 2 {
		t.Errorf("expected 2 labels at UART0, got %d", n)
	}
	if s, ok := st.Lookup("UART1", ns); !ok || s.Address != 0x40038000 {
		t.Errorf("lookup UART1 failed: %+v", s)
	}

	for _, name := range []string{"", "has space"} {
		if _, err := st.CreateLabel(0, name, ns, UserDefined); !errors.Is(err, ErrInvalidName) {
			t.Errorf("%q: expected ErrInvalidName, got %v", name, err)
		}
	}
}
