package transform

import (
	"github.com/neurokit/morph/pkg/morph"
)

// StripCompartments removes every node whose compartment type is in
// types and rebuilds. Compartments form contiguous subtrees in a
// well-formed reconstruction, so stripping whole types leaves no
// orphans; a kept node whose parent was stripped fails the rebuild
// with DANGLING_PARENT rather than producing a broken tree.
func StripCompartments(m *morph.Morphology, types ...int) (*morph.Morphology, error) {
	strip := make(map[int]bool, len(types))
	for _, t := range types {
		strip[t] = true
	}
	var records []morph.Node
	for _, n := range m.Records() {
		if !strip[n.Type] {
			records = append(records, n)
		}
	}
	return morph.New(records)
}
