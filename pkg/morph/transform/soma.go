package transform

import (
	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
)

// DefaultChildThreshold is the minimum child count a true soma node is
// expected to have when assigning a soma by degree.
const DefaultChildThreshold = 2

// SomaCandidates returns the nodes achieving the maximum child count,
// provided that maximum meets the threshold. An empty slice means the
// degree heuristic cannot resolve a soma. Candidates keep morphology
// node order, so the first entry is the deterministic tie-break winner.
func SomaCandidates(m *morph.Morphology, childThreshold int) []*morph.Node {
	maxCount := 0
	for _, n := range m.Nodes() {
		if c := m.ChildCount(n.ID); c > maxCount {
			maxCount = c
		}
	}
	if maxCount < childThreshold {
		return nil
	}
	var candidates []*morph.Node
	for _, n := range m.Nodes() {
		if m.ChildCount(n.ID) == maxCount {
			candidates = append(candidates, n)
		}
	}
	return candidates
}

// AssignSoma promotes the given node to the soma compartment and
// rebuilds. Existing type-1 nodes are not demoted.
func AssignSoma(m *morph.Morphology, id int) (*morph.Morphology, error) {
	work := m.Clone()
	n, ok := work.Node(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node %d not found", id)
	}
	n.Type = morph.TypeSoma
	return morph.New(work.Records())
}

// AssignSomaByDegree designates a soma by node degree. A morphology
// that already has exactly one type-1 node is returned unchanged.
// Otherwise the node with the most children becomes the soma, provided
// it has at least childThreshold children; ties are broken by Euclidean
// distance to the coordinate centroid of all nodes, first candidate
// winning residual ties.
//
// When no node meets the threshold the input is returned unchanged with
// an advisory UNRESOLVED_SOMA error.
func AssignSomaByDegree(m *morph.Morphology, childThreshold int) (*morph.Morphology, error) {
	somaCount := 0
	for _, n := range m.Nodes() {
		if n.IsSoma() {
			somaCount++
		}
	}
	if somaCount == 1 {
		return m, nil
	}

	candidates := SomaCandidates(m, childThreshold)
	if len(candidates) == 0 {
		return m, errors.New(errors.ErrCodeUnresolvedSoma,
			"no node has at least %d children", childThreshold)
	}

	chosen := candidates[0]
	if len(candidates) > 1 {
		cx, cy, cz := m.Centroid()
		best := distanceToPoint(chosen, cx, cy, cz)
		for _, cand := range candidates[1:] {
			if d := distanceToPoint(cand, cx, cy, cz); d < best {
				best = d
				chosen = cand
			}
		}
	}
	return AssignSoma(m, chosen.ID)
}

func distanceToPoint(n *morph.Node, x, y, z float64) float64 {
	return n.DistanceTo(&morph.Node{X: x, Y: y, Z: z})
}

// RemoveDuplicateSoma removes nodes coordinate-coincident with the soma
// (regardless of compartment type) and reparents their children onto
// the soma. somaID <= 0 selects the morphology's own soma. Type-1 nodes
// at other coordinates are left alone.
//
// With no duplicates present the pass normalizes instead: the soma is
// resequenced to id 1 when needed, and a soma whose parent is not -1 is
// reported as an advisory inconsistency. The operation is idempotent.
func RemoveDuplicateSoma(m *morph.Morphology, somaID int) (*morph.Morphology, error) {
	work := m.Clone()

	var soma *morph.Node
	if somaID > 0 {
		n, ok := work.Node(somaID)
		if !ok {
			return nil, errors.New(errors.ErrCodeNodeNotFound, "soma node %d not found", somaID)
		}
		soma = n
	} else {
		soma = work.Soma()
		if soma == nil {
			return m, errors.New(errors.ErrCodeUnresolvedSoma, "morphology has no soma node")
		}
	}

	duplicates := make(map[int]bool)
	for _, n := range work.Nodes() {
		if n.ID != soma.ID && n.SameCoord(soma) {
			duplicates[n.ID] = true
		}
	}

	if len(duplicates) == 0 {
		if soma.ID != 1 {
			sorted, err := SortIDs(work, soma.ID)
			if err != nil {
				return nil, err
			}
			work = sorted
			// Resequencing starts at the designated soma, so it is node 1.
			soma, _ = work.Node(1)
		}
		if soma.Parent != morph.RootParent {
			return work, errors.New(errors.ErrCodeInconsistentTopology,
				"soma %d has parent %d, expected -1", soma.ID, soma.Parent)
		}
		return work, nil
	}

	// Children of duplicates that are not duplicates themselves are the
	// soma's real children; adopt them before dropping the duplicates.
	for _, n := range work.Nodes() {
		if duplicates[n.Parent] && !duplicates[n.ID] {
			if err := work.SetParent(n.ID, soma.ID); err != nil {
				return nil, err
			}
		}
	}
	if err := work.SetParent(soma.ID, morph.RootParent); err != nil {
		return nil, err
	}
	soma.Type = morph.TypeSoma

	var records []morph.Node
	for _, n := range work.Records() {
		if !duplicates[n.ID] {
			records = append(records, n)
		}
	}
	merged, err := morph.New(records)
	if err != nil {
		return nil, err
	}

	if s := merged.Soma(); s != nil && s.ID != 1 {
		return SortIDs(merged, s.ID)
	}
	return merged, nil
}
