// Package transform provides restructuring operations over neuron
// morphologies: topology reduction, soma resolution and repair,
// re-rooting, identifier resequencing, and disconnected-segment repair.
//
// # Overview
//
// Automated reconstructions rarely arrive well-formed. Traced segments
// come in disconnected, rooted at the wrong end, with duplicate soma
// points or no soma at all. This package provides the passes that turn
// such output into a canonical tree:
//
//   - [AssignSomaByDegree] picks a soma by child count (centroid
//     tie-break) when no unique type-1 node exists.
//   - [RemoveDuplicateSoma] merges soma-coincident duplicates and
//     normalizes the soma to id 1, parent -1.
//   - [ReRoot] and [RestructureSegment] reverse parent/child direction
//     along a path so an arbitrary node becomes a root.
//   - [RepairSegmentRoots] re-roots disconnected segments whose
//     geometric root is not their topological root.
//   - [SortIDs] resequences identifiers contiguously in depth-first
//     order from the soma.
//   - [Reduce] collapses linear chains into the irreducible skeleton
//     (root, branch points, leaves).
//
// # Isolation
//
// Every operation clones its input before mutating and rebuilds the
// result through the validating constructor; the caller's morphology is
// never altered. Heuristic failures (UNRESOLVED_SOMA, SOMA_PROTECTED)
// are advisory: the input comes back unchanged alongside the
// diagnostic. Structural failures (INCONSISTENT_TOPOLOGY,
// DANGLING_PARENT, AMBIGUOUS_SOMA) abort the call with no partial tree.
package transform
