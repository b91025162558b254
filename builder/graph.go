package builder

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"omibyte.io/svdload/svd"
)

// derivationOrder returns the indices of the peripherals ordered so that every
// derivedFrom base comes before the peripherals derived from it. The result
// only depends on the document, never on map iteration.
func derivationOrder(peripherals []svd.PeripheralElement) ([]int, error) {
	g := simple.NewDirectedGraph()
	index := make(map[string]int64, len(peripherals))
	for i, p := range peripherals {
		g.AddNode(simple.Node(i))
		if _, ok := index[p.Name]; !ok {
			index[p.Name] = int64(i)
		}
	}

	for i, p := range peripherals {
		if len(p.DerivedFrom) == 0 {
			continue
		}
		base, ok := index[p.DerivedFrom]
		if !ok || base == int64(i) {
			// A missing base is reported by svd.Resolve. Nothing to order.
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(base), simple.Node(i)))
	}

	sorted, err := topo.SortStabilized(g, byID)
	if err != nil {
		var names []string
		if cycles, ok := err.(topo.Unorderable); ok {
			for _, component := range cycles {
				for _, n := range component {
					names = append(names, peripherals[n.ID()].Name)
				}
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrDerivationCycle, strings.Join(names, ", "))
	}

	order := make([]int, 0, len(sorted))
	for _, n := range sorted {
		order = append(order, int(n.ID()))
	}
	return order, nil
}

func byID(nodes []graph.Node) {
	slices.SortFunc(nodes, func(a, b graph.Node) bool {
		return a.ID() < b.ID()
	})
}
