package morph

import (
	"github.com/neurokit/morph/pkg/errors"
)

// Morphology is a set of nodes forming one or more rooted trees via the
// parent relation. Node IDs are unique, every non-root parent reference
// resolves to an existing node, and the parent relation is acyclic.
// Several roots at once are legal: repair operations pass through
// multi-rooted transient states.
//
// The zero value is not usable - use New to build a validated instance.
// Morphology is not safe for concurrent mutation; treat every
// transformation as exclusive-access (snapshot in, new tree out).
type Morphology struct {
	nodes    map[int]*Node
	order    []int         // node IDs in insertion order
	children map[int][]int // parent ID -> child IDs, insertion order
}

// New builds a Morphology from a flat node collection. The slice order
// defines iteration order for Nodes, Roots and child lists, which keeps
// traversal-based relabeling deterministic for identical input ordering.
//
// Construction validates the tree invariants and fails with
// DUPLICATE_NODE, INVALID_INPUT (non-positive ID), DANGLING_PARENT or
// CYCLE_DETECTED. Nodes are copied; the caller's slice is not aliased.
func New(nodes []Node) (*Morphology, error) {
	m := &Morphology{
		nodes:    make(map[int]*Node, len(nodes)),
		order:    make([]int, 0, len(nodes)),
		children: make(map[int][]int),
	}
	for _, n := range nodes {
		if n.ID <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node ID %d must be positive", n.ID)
		}
		if _, exists := m.nodes[n.ID]; exists {
			return nil, errors.New(errors.ErrCodeDuplicateNode, "duplicate node ID %d", n.ID)
		}
		node := n
		m.nodes[node.ID] = &node
		m.order = append(m.order, node.ID)
	}
	for _, id := range m.order {
		n := m.nodes[id]
		if n.Parent == RootParent {
			continue
		}
		if _, ok := m.nodes[n.Parent]; !ok {
			return nil, errors.New(errors.ErrCodeDanglingParent, "node %d: parent %d not found", n.ID, n.Parent)
		}
		m.children[n.Parent] = append(m.children[n.Parent], n.ID)
	}
	if err := m.checkAcyclic(); err != nil {
		return nil, err
	}
	return m, nil
}

// checkAcyclic walks every node up its parent chain with path marking.
// A node revisited on the current walk means the parent relation loops.
func (m *Morphology) checkAcyclic() error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[int]int, len(m.nodes))
	for _, id := range m.order {
		cur := id
		for color[cur] == white && cur != RootParent {
			color[cur] = gray
			cur = m.nodes[cur].Parent
		}
		if cur != RootParent && color[cur] == gray {
			return errors.New(errors.ErrCodeCycle, "parent chain of node %d loops at node %d", id, cur)
		}
		// blacken the walked prefix
		cur = id
		for cur != RootParent && color[cur] == gray {
			color[cur] = black
			cur = m.nodes[cur].Parent
		}
	}
	return nil
}

// Nodes returns all nodes in insertion order. The returned slice holds
// pointers into the morphology's own store: field mutations (except ID)
// are visible to subsequent queries, but Parent changes must go through
// SetParent to keep the child index consistent.
func (m *Morphology) Nodes() []*Node {
	out := make([]*Node, len(m.order))
	for i, id := range m.order {
		out[i] = m.nodes[id]
	}
	return out
}

// Node returns the node with the given ID and true, or nil and false.
func (m *Morphology) Node(id int) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes.
func (m *Morphology) NodeCount() int { return len(m.nodes) }

// Children returns the children of the given node in insertion order.
// Returns nil for leaves and unknown IDs.
func (m *Morphology) Children(id int) []*Node {
	ids := m.children[id]
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Node, len(ids))
	for i, cid := range ids {
		out[i] = m.nodes[cid]
	}
	return out
}

// ChildCount returns the number of children of the given node.
func (m *Morphology) ChildCount(id int) int { return len(m.children[id]) }

// IsLeaf reports whether the node has no children.
func (m *Morphology) IsLeaf(id int) bool { return len(m.children[id]) == 0 }

// Roots returns all nodes with parent = -1 in insertion order.
func (m *Morphology) Roots() []*Node {
	var roots []*Node
	for _, id := range m.order {
		if n := m.nodes[id]; n.IsRoot() {
			roots = append(roots, n)
		}
	}
	return roots
}

// Soma returns the first node with the soma compartment code, or nil.
// Intermediate repair states may hold zero or several type-1 nodes;
// callers needing a unique soma must check for themselves.
func (m *Morphology) Soma() *Node {
	for _, id := range m.order {
		if n := m.nodes[id]; n.IsSoma() {
			return n
		}
	}
	return nil
}

// SetParent re-links a node under a new parent (or RootParent) and
// updates the child index. Returns NODE_NOT_FOUND when either end does
// not exist. Cycles introduced by re-linking are not detected here;
// rebuild through New (or call Validate) after a mutation batch.
func (m *Morphology) SetParent(id, parent int) error {
	n, ok := m.nodes[id]
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %d not found", id)
	}
	if parent != RootParent {
		if _, ok := m.nodes[parent]; !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "parent %d not found", parent)
		}
	}
	if n.Parent == parent {
		return nil
	}
	if n.Parent != RootParent {
		old := m.children[n.Parent]
		for i, cid := range old {
			if cid == id {
				m.children[n.Parent] = append(old[:i:i], old[i+1:]...)
				break
			}
		}
	}
	n.Parent = parent
	if parent != RootParent {
		m.children[parent] = append(m.children[parent], id)
	}
	return nil
}

// Validate re-checks the construction invariants on the current state.
func (m *Morphology) Validate() error {
	for _, id := range m.order {
		n := m.nodes[id]
		if n.Parent == RootParent {
			continue
		}
		if _, ok := m.nodes[n.Parent]; !ok {
			return errors.New(errors.ErrCodeDanglingParent, "node %d: parent %d not found", n.ID, n.Parent)
		}
	}
	return m.checkAcyclic()
}

// Records returns value copies of all nodes in insertion order.
// This is the rebuild primitive: transformations mutate a clone, then
// construct the result with New(m.Records()) so the validating
// constructor is the only way a tree comes into existence.
func (m *Morphology) Records() []Node {
	out := make([]Node, len(m.order))
	for i, id := range m.order {
		out[i] = *m.nodes[id]
	}
	return out
}

// Clone returns a deep copy sharing no node records with the receiver.
func (m *Morphology) Clone() *Morphology {
	c, err := New(m.Records())
	if err != nil {
		// The receiver already satisfied the invariants.
		panic("morph: clone of valid morphology failed: " + err.Error())
	}
	return c
}

// Centroid returns the mean coordinate over all nodes.
// Returns zeros for an empty morphology.
func (m *Morphology) Centroid() (x, y, z float64) {
	if len(m.order) == 0 {
		return 0, 0, 0
	}
	for _, id := range m.order {
		n := m.nodes[id]
		x += n.X
		y += n.Y
		z += n.Z
	}
	c := float64(len(m.order))
	return x / c, y / c, z / c
}
