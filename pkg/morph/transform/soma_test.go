package transform

import (
	"testing"

	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
)

func TestSomaCandidates(t *testing.T) {
	// Node 2 has three children, node 6 has one.
	m := mustMorph(t, []morph.Node{
		{ID: 1, Parent: morph.RootParent},
		{ID: 2, Parent: 1},
		{ID: 3, Parent: 2},
		{ID: 4, Parent: 2},
		{ID: 5, Parent: 2},
		{ID: 6, Parent: 3},
		{ID: 7, Parent: 6},
	})

	candidates := SomaCandidates(m, 2)
	if len(candidates) != 1 || candidates[0].ID != 2 {
		t.Errorf("candidates = %v, want [node 2]", candidates)
	}

	if got := SomaCandidates(m, 4); got != nil {
		t.Errorf("candidates above max degree = %v, want nil", got)
	}
}

func TestAssignSomaByDegree(t *testing.T) {
	m := mustMorph(t, []morph.Node{
		{ID: 1, Parent: morph.RootParent},
		{ID: 2, Parent: 1},
		{ID: 3, Parent: 2},
		{ID: 4, Parent: 2},
		{ID: 5, Parent: 2},
	})

	result, err := AssignSomaByDegree(m, DefaultChildThreshold)
	if err != nil {
		t.Fatalf("AssignSomaByDegree: %v", err)
	}
	soma := result.Soma()
	if soma == nil || soma.ID != 2 {
		t.Errorf("soma = %v, want node 2", soma)
	}
	// The input keeps its original types.
	if n, _ := m.Node(2); n.Type != 0 {
		t.Errorf("input node 2 type = %d, want 0", n.Type)
	}
}

func TestAssignSomaByDegreeExistingSoma(t *testing.T) {
	m := mustMorph(t, []morph.Node{
		{ID: 1, Type: morph.TypeSoma, Parent: morph.RootParent},
		{ID: 2, Parent: 1},
		{ID: 3, Parent: 1},
	})

	result, err := AssignSomaByDegree(m, DefaultChildThreshold)
	if err != nil {
		t.Fatalf("AssignSomaByDegree: %v", err)
	}
	if result != m {
		t.Error("morphology with one soma should be returned unchanged")
	}
}

func TestAssignSomaByDegreeUnresolved(t *testing.T) {
	// A bare chain: no node reaches the child threshold.
	m := mustMorph(t, []morph.Node{
		{ID: 1, Parent: morph.RootParent},
		{ID: 2, Parent: 1},
		{ID: 3, Parent: 2},
	})

	result, err := AssignSomaByDegree(m, DefaultChildThreshold)
	if !errors.Is(err, errors.ErrCodeUnresolvedSoma) {
		t.Fatalf("error = %v, want UNRESOLVED_SOMA", err)
	}
	if !errors.IsAdvisory(err) {
		t.Error("UNRESOLVED_SOMA should be advisory")
	}
	if result != m {
		t.Error("unresolved input should be returned unchanged")
	}
}

func TestAssignSomaByDegreeCentroidTieBreak(t *testing.T) {
	// Nodes 1 and 4 both have two children; the extra node below 5
	// pulls the centroid toward node 4's cluster.
	m := mustMorph(t, []morph.Node{
		{ID: 1, X: 0, Y: 0, Parent: morph.RootParent},
		{ID: 2, X: 0, Y: 1, Parent: 1},
		{ID: 3, X: 0, Y: 2, Parent: 1},
		{ID: 4, X: 10, Y: 0, Parent: morph.RootParent},
		{ID: 5, X: 10, Y: 1, Parent: 4},
		{ID: 6, X: 10, Y: 2, Parent: 4},
		{ID: 7, X: 10, Y: 3, Parent: 5},
	})

	result, err := AssignSomaByDegree(m, DefaultChildThreshold)
	if err != nil {
		t.Fatalf("AssignSomaByDegree: %v", err)
	}
	soma := result.Soma()
	if soma == nil || soma.ID != 4 {
		t.Errorf("soma = %v, want node 4 (closer to centroid)", soma)
	}
}

func TestRemoveDuplicateSoma(t *testing.T) {
	// Node 2 sits exactly on the soma; its child 3 must be adopted.
	m := mustMorph(t, []morph.Node{
		{ID: 1, Type: morph.TypeSoma, X: 5, Y: 5, Z: 5, Parent: morph.RootParent},
		{ID: 2, X: 5, Y: 5, Z: 5, Parent: 1},
		{ID: 3, X: 6, Y: 5, Z: 5, Parent: 2},
		{ID: 4, X: 5, Y: 6, Z: 5, Parent: 1},
	})

	result, err := RemoveDuplicateSoma(m, 0)
	if err != nil {
		t.Fatalf("RemoveDuplicateSoma: %v", err)
	}
	if got := result.NodeCount(); got != 3 {
		t.Fatalf("NodeCount = %d, want 3", got)
	}
	if _, ok := result.Node(2); ok {
		t.Error("duplicate node 2 still present")
	}
	n, ok := result.Node(3)
	if !ok {
		t.Fatal("node 3 missing")
	}
	if n.Parent != 1 {
		t.Errorf("node 3 parent = %d, want 1", n.Parent)
	}
	soma := result.Soma()
	if soma == nil || soma.ID != 1 || !soma.IsRoot() {
		t.Errorf("soma = %v, want node 1 at root", soma)
	}
}

func TestRemoveDuplicateSomaIdempotent(t *testing.T) {
	m := mustMorph(t, []morph.Node{
		{ID: 1, Type: morph.TypeSoma, X: 5, Y: 5, Z: 5, Parent: morph.RootParent},
		{ID: 2, X: 5, Y: 5, Z: 5, Parent: 1},
		{ID: 3, X: 6, Y: 5, Z: 5, Parent: 2},
	})

	once, err := RemoveDuplicateSoma(m, 0)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := RemoveDuplicateSoma(once, 0)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if once.NodeCount() != twice.NodeCount() {
		t.Errorf("second pass changed node count: %d -> %d", once.NodeCount(), twice.NodeCount())
	}
	a, b := once.Records(), twice.Records()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("record %d changed on second pass: %v -> %v", i, a[i], b[i])
		}
	}
}

func TestRemoveDuplicateSomaNoSoma(t *testing.T) {
	m := mustMorph(t, []morph.Node{
		{ID: 1, Parent: morph.RootParent},
		{ID: 2, Parent: 1},
	})

	result, err := RemoveDuplicateSoma(m, 0)
	if !errors.Is(err, errors.ErrCodeUnresolvedSoma) {
		t.Fatalf("error = %v, want UNRESOLVED_SOMA", err)
	}
	if result != m {
		t.Error("input without soma should be returned unchanged")
	}
}

func TestRemoveDuplicateSomaResequences(t *testing.T) {
	// No duplicates, but the soma is node 5: the pass normalizes IDs so
	// the soma becomes node 1.
	m := mustMorph(t, []morph.Node{
		{ID: 5, Type: morph.TypeSoma, Parent: morph.RootParent},
		{ID: 6, Parent: 5},
		{ID: 7, Parent: 6},
	})

	result, err := RemoveDuplicateSoma(m, 0)
	if err != nil {
		t.Fatalf("RemoveDuplicateSoma: %v", err)
	}
	soma := result.Soma()
	if soma == nil || soma.ID != 1 {
		t.Fatalf("soma = %v, want node 1", soma)
	}
	for i, n := range result.Nodes() {
		if n.ID != i+1 {
			t.Errorf("node %d ID = %d, want %d", i, n.ID, i+1)
		}
	}
}

func TestRemoveDuplicateSomaUnknownID(t *testing.T) {
	m := mustMorph(t, []morph.Node{{ID: 1, Type: morph.TypeSoma, Parent: morph.RootParent}})
	if _, err := RemoveDuplicateSoma(m, 99); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("error = %v, want NODE_NOT_FOUND", err)
	}
}
