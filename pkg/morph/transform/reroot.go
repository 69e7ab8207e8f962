package transform

import (
	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
	"github.com/neurokit/morph/pkg/morph/traverse"
)

// ReRoot reverses parent/child direction along the path from the given
// node to its current root, so the node becomes a root (parent -1) and
// the former root becomes its descendant: root->a->b->n turns into
// n->b->a->root. Only nodes on the direct path are touched; subtrees
// hanging off path nodes stay attached to their (now reparented)
// owners.
//
// Fails with NODE_NOT_FOUND for an unknown node and DANGLING_PARENT
// when the walk up hits a broken reference.
func ReRoot(m *morph.Morphology, newRootID int) (*morph.Morphology, error) {
	work := m.Clone()
	n, ok := work.Node(newRootID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node %d not found", newRootID)
	}

	// Walk up via parent links; each visited node's new parent is the
	// previously visited one, the first getting -1.
	newParents := make(map[int]int)
	var pathOrder []int
	prev := morph.RootParent
	for {
		newParents[n.ID] = prev
		pathOrder = append(pathOrder, n.ID)
		prev = n.ID
		if n.IsRoot() {
			break
		}
		parent, ok := work.Node(n.Parent)
		if !ok {
			return nil, errors.New(errors.ErrCodeDanglingParent, "node %d: parent %d not found", n.ID, n.Parent)
		}
		n = parent
	}

	for _, id := range pathOrder {
		if err := work.SetParent(id, newParents[id]); err != nil {
			return nil, err
		}
	}
	return morph.New(work.Records())
}

// RestructureSegment is the general re-rooting operation: it promotes
// newRootID to the root of its segment and attaches it under
// newRootsParent (-1 for a free root, or the ID of an external node the
// segment is being grafted onto).
//
// When the segment's current root is a soma node and overwriteSoma is
// false the morphology is returned unchanged with an advisory
// SOMA_PROTECTED error. Every node on the up-path is expected to have
// exactly one child that is itself on the up-path; zero or several is a
// fatal INCONSISTENT_TOPOLOGY, except for the first up-path node,
// whose only path child is the new root itself and which is therefore
// force-linked to it.
func RestructureSegment(m *morph.Morphology, newRootID, newRootsParent int, overwriteSoma bool) (*morph.Morphology, error) {
	work := m.Clone()
	newRoot, ok := work.Node(newRootID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node %d not found", newRootID)
	}

	fullPath, err := traverse.PathToRoot(work, newRootID)
	if err != nil {
		return nil, err
	}
	pathUp := fullPath[1:] // root-ward, excluding the new root itself

	subtree, _, err := traverse.BFSSubtree(work, newRootID)
	if err != nil {
		return nil, err
	}
	// A node both below and above the new root means the parent
	// relation loops; the constructor should have caught it.
	below := make(map[int]bool, len(subtree))
	for _, n := range subtree {
		if n.ID != newRootID {
			below[n.ID] = true
		}
	}
	for _, n := range pathUp {
		if below[n.ID] {
			return nil, errors.New(errors.ErrCodeInconsistentTopology,
				"node %d is both ancestor and descendant of %d", n.ID, newRootID)
		}
	}

	if len(pathUp) == 0 {
		// Already a root: only the attachment point changes.
		if err := work.SetParent(newRootID, newRootsParent); err != nil {
			return nil, err
		}
		return morph.New(work.Records())
	}

	currentRoot := pathUp[len(pathUp)-1]
	if !overwriteSoma && currentRoot.IsSoma() {
		return m, errors.New(errors.ErrCodeSomaProtected,
			"segment root %d is a soma node", currentRoot.ID)
	}

	onPath := make(map[int]bool, len(pathUp))
	for _, n := range pathUp {
		onPath[n.ID] = true
	}

	for i, n := range pathUp {
		var inPath []*morph.Node
		for _, c := range work.Children(n.ID) {
			if onPath[c.ID] {
				inPath = append(inPath, c)
			}
		}
		if i == 0 && len(inPath) == 0 {
			// The up-path excludes the new root, so its parent never
			// has a qualifying child; link it back to the new root.
			inPath = []*morph.Node{newRoot}
		}
		if len(inPath) != 1 {
			return nil, errors.New(errors.ErrCodeInconsistentTopology,
				"up-path node %d has %d qualifying children, expected 1", n.ID, len(inPath))
		}
		if err := work.SetParent(n.ID, inPath[0].ID); err != nil {
			return nil, err
		}
	}
	if err := work.SetParent(newRootID, newRootsParent); err != nil {
		return nil, err
	}
	return morph.New(work.Records())
}
