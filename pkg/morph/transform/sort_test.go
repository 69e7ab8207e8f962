package transform

import (
	"testing"

	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
)

func TestSortIDs(t *testing.T) {
	// Soma 10 with children 20 and 30; 40 hangs below 20. The X
	// coordinate carries the original ID through the relabeling.
	m := mustMorph(t, []morph.Node{
		{ID: 10, Type: morph.TypeSoma, X: 10, Parent: morph.RootParent},
		{ID: 20, X: 20, Parent: 10},
		{ID: 30, X: 30, Parent: 10},
		{ID: 40, X: 40, Parent: 20},
	})

	sorted, err := SortIDs(m, 0)
	if err != nil {
		t.Fatalf("SortIDs: %v", err)
	}

	// Depth-first pre-order: 10, 20, 40, 30.
	wantX := map[int]float64{1: 10, 2: 20, 3: 40, 4: 30}
	wantParent := map[int]int{1: morph.RootParent, 2: 1, 3: 2, 4: 1}
	for i, n := range sorted.Nodes() {
		if n.ID != i+1 {
			t.Errorf("position %d has ID %d, want %d", i, n.ID, i+1)
		}
		if n.X != wantX[n.ID] {
			t.Errorf("node %d X = %v, want %v", n.ID, n.X, wantX[n.ID])
		}
		if n.Parent != wantParent[n.ID] {
			t.Errorf("node %d parent = %d, want %d", n.ID, n.Parent, wantParent[n.ID])
		}
	}

	soma := sorted.Soma()
	if soma == nil || soma.ID != 1 {
		t.Errorf("soma = %v, want node 1", soma)
	}
}

func TestSortIDsMultiRoot(t *testing.T) {
	// Soma tree plus a detached segment: the soma subtree labels first,
	// then the remaining root's subtree.
	m := mustMorph(t, []morph.Node{
		{ID: 5, Type: morph.TypeSoma, X: 5, Parent: morph.RootParent},
		{ID: 6, X: 6, Parent: 5},
		{ID: 7, X: 7, Parent: morph.RootParent},
		{ID: 8, X: 8, Parent: 7},
	})

	sorted, err := SortIDs(m, 0)
	if err != nil {
		t.Fatalf("SortIDs: %v", err)
	}
	wantX := map[int]float64{1: 5, 2: 6, 3: 7, 4: 8}
	for _, n := range sorted.Nodes() {
		if n.X != wantX[n.ID] {
			t.Errorf("node %d X = %v, want %v", n.ID, n.X, wantX[n.ID])
		}
	}
	if len(sorted.Roots()) != 2 {
		t.Errorf("roots = %d, want 2", len(sorted.Roots()))
	}
}

func TestSortIDsExplicitSoma(t *testing.T) {
	m := mustMorph(t, []morph.Node{
		{ID: 3, X: 3, Parent: morph.RootParent},
		{ID: 9, X: 9, Parent: 3},
	})

	sorted, err := SortIDs(m, 3)
	if err != nil {
		t.Fatalf("SortIDs: %v", err)
	}
	if n, _ := sorted.Node(1); n.X != 3 {
		t.Errorf("node 1 X = %v, want 3", n.X)
	}
}

func TestSortIDsImplicitRoot(t *testing.T) {
	// No soma, single root: the root is accepted as start.
	m := mustMorph(t, []morph.Node{
		{ID: 7, Parent: morph.RootParent},
		{ID: 8, Parent: 7},
	})
	sorted, err := SortIDs(m, 0)
	if err != nil {
		t.Fatalf("SortIDs: %v", err)
	}
	if n, ok := sorted.Node(1); !ok || !n.IsRoot() {
		t.Errorf("node 1 = %v, want root", n)
	}
}

func TestSortIDsAmbiguous(t *testing.T) {
	m := mustMorph(t, []morph.Node{
		{ID: 1, Parent: morph.RootParent},
		{ID: 2, Parent: morph.RootParent},
	})
	if _, err := SortIDs(m, 0); !errors.Is(err, errors.ErrCodeAmbiguousSoma) {
		t.Errorf("error = %v, want AMBIGUOUS_SOMA", err)
	}
}

func TestSortIDsSomaNotRoot(t *testing.T) {
	// A soma buried under another root would be labeled twice; the
	// operation must fail instead of emitting corrupt IDs.
	m := mustMorph(t, []morph.Node{
		{ID: 1, Parent: morph.RootParent},
		{ID: 2, Type: morph.TypeSoma, Parent: 1},
	})
	if _, err := SortIDs(m, 0); !errors.Is(err, errors.ErrCodeInconsistentTopology) {
		t.Errorf("error = %v, want INCONSISTENT_TOPOLOGY", err)
	}
}
