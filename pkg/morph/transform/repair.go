package transform

import (
	"github.com/neurokit/morph/pkg/morph"
	"github.com/neurokit/morph/pkg/morph/traverse"
)

// RepairSegmentRoots checks every disconnected segment (root other than
// the soma) and re-roots it at its leaf closest to the soma when that
// leaf is strictly closer than the current root. Autotraced segments
// frequently come in rooted at the far end; the closest end is the one
// that should attach toward the soma.
//
// Returns the repaired morphology and whether any segment changed.
// Without a soma there is nothing to measure against: the input is
// returned unchanged and no change is reported.
func RepairSegmentRoots(m *morph.Morphology) (*morph.Morphology, bool, error) {
	soma := m.Soma()
	if soma == nil {
		return m, false, nil
	}

	work := m.Clone()
	var segmentRoots []int
	for _, root := range work.Roots() {
		if root.ID != soma.ID {
			segmentRoots = append(segmentRoots, root.ID)
		}
	}

	changed := false
	for _, rootID := range segmentRoots {
		root, ok := work.Node(rootID)
		if !ok {
			continue
		}
		leaves, err := traverse.Leaves(work, rootID)
		if err != nil {
			return nil, false, err
		}

		closest := root
		closestDist := root.DistanceTo(soma)
		for _, leaf := range leaves {
			// Strict comparison: ties keep the earlier find, so the
			// first-encountered leaf wins among equals.
			if d := leaf.DistanceTo(soma); d < closestDist {
				closestDist = d
				closest = leaf
			}
		}
		if closest.ID == root.ID {
			continue
		}

		rerooted, err := ReRoot(work, closest.ID)
		if err != nil {
			return nil, false, err
		}
		work = rerooted
		soma = work.Soma()
		changed = true
	}
	return work, changed, nil
}
