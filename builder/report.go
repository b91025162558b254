package builder

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"omibyte.io/svdload/memmap"
	"omibyte.io/svdload/program"
)

// A Report lists what a Build call created and what it could not create.
type Report struct {
	Device string

	// Original holds one region per peripheral, Regions the merged result.
	Original []memmap.Region
	Regions  []memmap.Region

	Blocks     []*program.MemoryBlock
	Structures []*program.Structure
	Labels     []*program.Symbol

	// Skipped names the peripherals without registers.
	Skipped []string

	Failures []error
}

// Err joins all recorded failures. It is nil when there were none.
func (r *Report) Err() error {
	return errors.Join(r.Failures...)
}

// Summary writes a short table of the created objects.
func (r *Report) Summary(w io.Writer) error {
	t := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintf(t, "device\t%s\n", r.Device)
	fmt.Fprintf(t, "regions\t%d (from %d peripherals)\n", len(r.Regions), len(r.Original))
	fmt.Fprintf(t, "blocks\t%d\n", len(r.Blocks))
	fmt.Fprintf(t, "structures\t%d\n", len(r.Structures))
	fmt.Fprintf(t, "labels\t%d\n", len(r.Labels))
	fmt.Fprintf(t, "skipped\t%d\n", len(r.Skipped))
	fmt.Fprintf(t, "failures\t%d\n", len(r.Failures))
	return t.Flush()
}
