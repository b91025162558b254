package program

import "fmt"

// An Address is a location in the program's default address space.
type Address uint64

// Add adds x to address a.
func (a Address) Add(x uint64) Address {
	return a + Address(x)
}

func (a Address) String() string {
	return fmt.Sprintf("%#08x", uint64(a))
}
