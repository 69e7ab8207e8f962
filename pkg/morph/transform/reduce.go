package transform

import (
	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
	"github.com/neurokit/morph/pkg/morph/traverse"
)

// Reduce collapses a morphology to its irreducible skeleton: only
// roots, branch points (more than one child) and leaves survive, with
// parent pointers re-linked to skip the removed chain nodes. The
// terminal node of every root path is marked as soma.
//
// Soma resolution: the soma node if one exists, otherwise the unique
// root; zero or several roots without a soma fail with AMBIGUOUS_SOMA.
//
// The set of leaf IDs in the result equals the set of leaf IDs in the
// input; node records are reused with only parent and type rewritten.
func Reduce(m *morph.Morphology) (*morph.Morphology, error) {
	work := m.Clone()

	irreducible := make(map[int]bool)
	var leaves []*morph.Node
	for _, n := range work.Nodes() {
		switch {
		case work.ChildCount(n.ID) > 1, work.IsLeaf(n.ID), n.IsRoot():
			irreducible[n.ID] = true
		}
		if work.IsLeaf(n.ID) {
			leaves = append(leaves, n)
		}
	}

	soma := work.Soma()
	if soma == nil {
		roots := work.Roots()
		if len(roots) != 1 {
			return nil, errors.New(errors.ErrCodeAmbiguousSoma,
				"cannot resolve soma: no type-1 node and %d roots", len(roots))
		}
		soma = roots[0]
	}
	irreducible[soma.ID] = true

	// Walk every leaf-to-root path, keep only the irreducible nodes on
	// it, and chain them directly. Paths from different leaves overlap
	// above branch points; the overlapping prefixes re-link a node to
	// the same parent every time, so last write wins harmlessly.
	kept := make(map[int]*morph.Node)
	var order []int
	keep := func(n *morph.Node) {
		if _, ok := kept[n.ID]; !ok {
			kept[n.ID] = n
			order = append(order, n.ID)
		}
	}
	for _, leaf := range leaves {
		path, err := traverse.PathToRoot(work, leaf.ID)
		if err != nil {
			return nil, err
		}
		var onPath []*morph.Node
		for _, n := range path {
			if irreducible[n.ID] {
				onPath = append(onPath, n)
			}
		}
		for i := 0; i < len(onPath)-1; i++ {
			if err := work.SetParent(onPath[i].ID, onPath[i+1].ID); err != nil {
				return nil, err
			}
			keep(onPath[i])
		}
		terminal := onPath[len(onPath)-1]
		terminal.Type = morph.TypeSoma
		keep(terminal)
	}

	records := make([]morph.Node, 0, len(order))
	for _, id := range order {
		records = append(records, *kept[id])
	}
	return morph.New(records)
}
