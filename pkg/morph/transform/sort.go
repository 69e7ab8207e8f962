package transform

import (
	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
	"github.com/neurokit/morph/pkg/morph/traverse"
)

// SortIDs produces a new morphology whose node IDs are contiguous
// ascending integers starting at 1, assigned in depth-first pre-order
// beginning from the soma (which always receives id 1), followed by the
// remaining roots in morphology order, each subtree labeled
// contiguously. Parent references are remapped through the old->new
// table; a parent of -1 stays -1.
//
// somaID <= 0 selects the morphology's soma; without one, a single
// root is accepted as the implicit soma and anything else fails with
// AMBIGUOUS_SOMA.
func SortIDs(m *morph.Morphology, somaID int) (*morph.Morphology, error) {
	var start *morph.Node
	if somaID > 0 {
		n, ok := m.Node(somaID)
		if !ok {
			return nil, errors.New(errors.ErrCodeNodeNotFound, "soma node %d not found", somaID)
		}
		start = n
	} else if start = m.Soma(); start == nil {
		roots := m.Roots()
		if len(roots) != 1 {
			return nil, errors.New(errors.ErrCodeAmbiguousSoma,
				"cannot resequence: no soma and %d roots", len(roots))
		}
		start = roots[0]
	}

	// Soma subtree first so the soma lands on id 1, then every other
	// root's subtree. A soma buried under another root would be visited
	// twice; the permutation check below turns that into a hard error
	// instead of silently corrupting labels.
	newIDs := make(map[int]int, m.NodeCount())
	label := 1
	count, err := traverse.DFSRelabel(m, start.ID, label, newIDs)
	if err != nil {
		return nil, err
	}
	label += count
	for _, root := range m.Roots() {
		if _, done := newIDs[root.ID]; done {
			continue
		}
		count, err = traverse.DFSRelabel(m, root.ID, label, newIDs)
		if err != nil {
			return nil, err
		}
		label += count
	}
	if len(newIDs) != m.NodeCount() {
		return nil, errors.New(errors.ErrCodeInternal,
			"relabeled %d of %d nodes", len(newIDs), m.NodeCount())
	}
	seen := make([]bool, m.NodeCount()+1)
	for _, label := range newIDs {
		if label < 1 || label > m.NodeCount() || seen[label] {
			return nil, errors.New(errors.ErrCodeInconsistentTopology,
				"soma %d is not a root: relabeling produced overlapping subtrees", start.ID)
		}
		seen[label] = true
	}

	records := make([]morph.Node, 0, m.NodeCount())
	for _, n := range m.Records() {
		n.ID = newIDs[n.ID]
		if n.Parent != morph.RootParent {
			n.Parent = newIDs[n.Parent]
		}
		records = append(records, n)
	}
	// Emit in ascending new-ID order so serialized output reads 1..N.
	ordered := make([]morph.Node, len(records))
	for _, n := range records {
		ordered[n.ID-1] = n
	}
	return morph.New(ordered)
}
