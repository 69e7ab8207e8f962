// Package traverse provides traversal primitives over a morphology:
// root-path extraction, breadth-first subtree collection, and
// depth-first relabeling.
//
// All traversals follow stored child order (insertion order), never a
// geometric sort, so repeated runs over identically-ordered input
// produce identical visit sequences.
package traverse

import (
	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
)

// PathToRoot returns the ordered node sequence from the given node up
// to and including its root, following parent pointers. The start node
// is the first element. Fails with NODE_NOT_FOUND for an unknown start
// and DANGLING_PARENT when a parent reference does not resolve.
func PathToRoot(m *morph.Morphology, id int) ([]*morph.Node, error) {
	n, ok := m.Node(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node %d not found", id)
	}
	path := []*morph.Node{n}
	for !n.IsRoot() {
		parent, ok := m.Node(n.Parent)
		if !ok {
			return nil, errors.New(errors.ErrCodeDanglingParent, "node %d: parent %d not found", n.ID, n.Parent)
		}
		path = append(path, parent)
		n = parent
	}
	return path, nil
}

// BFSSubtree collects the subtree below the given node breadth-first.
// The start node is the first element of the returned order; depths
// maps each visited node ID to its breadth-first depth (start = 0).
func BFSSubtree(m *morph.Morphology, id int) ([]*morph.Node, map[int]int, error) {
	n, ok := m.Node(id)
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeNodeNotFound, "node %d not found", id)
	}
	depths := map[int]int{n.ID: 0}
	order := []*morph.Node{n}
	for i := 0; i < len(order); i++ {
		cur := order[i]
		for _, child := range m.Children(cur.ID) {
			depths[child.ID] = depths[cur.ID] + 1
			order = append(order, child)
		}
	}
	return order, depths, nil
}

// DFSRelabel assigns new sequential IDs in depth-first pre-order
// starting at startLabel to the given node and its entire subtree,
// recording old ID -> new ID into idMap. Returns the number of nodes
// labeled so the caller can advance the label counter before relabeling
// the next disjoint subtree.
func DFSRelabel(m *morph.Morphology, id, startLabel int, idMap map[int]int) (int, error) {
	if _, ok := m.Node(id); !ok {
		return 0, errors.New(errors.ErrCodeNodeNotFound, "node %d not found", id)
	}
	label := startLabel
	stack := []int{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		idMap[cur] = label
		label++
		children := m.Children(cur)
		// push in reverse so stored child order is visited first
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i].ID)
		}
	}
	return label - startLabel, nil
}

// Leaves returns the nodes of the subtree below id that have no
// children, in breadth-first encounter order.
func Leaves(m *morph.Morphology, id int) ([]*morph.Node, error) {
	order, _, err := BFSSubtree(m, id)
	if err != nil {
		return nil, err
	}
	var leaves []*morph.Node
	for _, n := range order {
		if m.IsLeaf(n.ID) {
			leaves = append(leaves, n)
		}
	}
	return leaves, nil
}
