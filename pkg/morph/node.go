package morph

import "math"

// SWC compartment type codes. Anything above TypeApicalDendrite is a
// custom compartment; the library treats all non-soma types uniformly.
const (
	TypeUndefined      = 0
	TypeSoma           = 1
	TypeAxon           = 2
	TypeBasalDendrite  = 3
	TypeApicalDendrite = 4
)

// RootParent is the sentinel parent ID marking a root node.
const RootParent = -1

// Node is a single labeled point of a reconstruction: one line of an
// SWC file. Nodes are mutable records referenced by ID; a Morphology
// owns its nodes and hands out pointers into its own store.
type Node struct {
	ID     int     // Unique positive identifier
	Type   int     // Compartment code (1 = soma)
	X      float64 // Coordinate, typically µm or pixels
	Y      float64
	Z      float64
	Radius float64
	Parent int // Parent node ID, RootParent (-1) for roots
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.Parent == RootParent }

// IsSoma reports whether the node carries the soma compartment code.
func (n *Node) IsSoma() bool { return n.Type == TypeSoma }

// SameCoord reports whether two nodes sit at the exact same coordinate.
// Duplicate-soma detection uses exact equality, matching reconstruction
// tools that emit byte-identical coordinates for merged points.
func (n *Node) SameCoord(o *Node) bool {
	return n.X == o.X && n.Y == o.Y && n.Z == o.Z
}

// DistanceTo returns the Euclidean distance between two nodes.
func (n *Node) DistanceTo(o *Node) float64 {
	return distance(n.X, n.Y, n.Z, o.X, o.Y, o.Z)
}

func distance(x1, y1, z1, x2, y2, z2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	dz := z1 - z2
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
