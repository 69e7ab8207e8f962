// Package morph provides the parent-pointer tree model for neuron
// morphology reconstructions (the SWC node model).
//
// # Overview
//
// A reconstruction is a flat collection of labeled 3D nodes where each
// node stores the ID of its parent (-1 for roots). The Morphology type
// indexes that collection: node lookup by ID, computed child lists, root
// and soma queries. Child links are derived, never stored on the nodes
// themselves, so the only mutable relation is the parent field.
//
// # Basic Usage
//
// Build a morphology from node records with [New]:
//
//	m, err := morph.New([]morph.Node{
//	    {ID: 1, Type: morph.TypeSoma, Parent: -1},
//	    {ID: 2, Type: morph.TypeBasalDendrite, Parent: 1},
//	})
//
// Construction validates the tree invariants (unique IDs, resolvable
// parents, no cycles) and is the only way a Morphology comes into
// existence; restructuring operations mutate a [Morphology.Clone] and
// rebuild through New, so no operation can hand back a corrupt tree.
//
// # Mutation discipline
//
// [Morphology.SetParent] is the one structural mutator; it keeps the
// child index consistent but defers cycle checking to the rebuild.
// Restructuring algorithms live in the transform subpackage; traversal
// primitives in the traverse subpackage.
package morph
