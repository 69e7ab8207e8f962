package transform

import (
	"testing"

	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
)

func TestStripCompartments(t *testing.T) {
	m := mustMorph(t, []morph.Node{
		{ID: 1, Type: morph.TypeSoma, Parent: morph.RootParent},
		{ID: 2, Type: morph.TypeAxon, Parent: 1},
		{ID: 3, Type: morph.TypeAxon, Parent: 2},
		{ID: 4, Type: morph.TypeBasalDendrite, Parent: 1},
	})

	stripped, err := StripCompartments(m, morph.TypeAxon)
	if err != nil {
		t.Fatalf("StripCompartments: %v", err)
	}
	if got := stripped.NodeCount(); got != 2 {
		t.Fatalf("NodeCount = %d, want 2", got)
	}
	for _, id := range []int{2, 3} {
		if _, ok := stripped.Node(id); ok {
			t.Errorf("axon node %d still present", id)
		}
	}
	if n, ok := stripped.Node(4); !ok || n.Parent != 1 {
		t.Errorf("node 4 = %v, want parent 1", n)
	}
}

func TestStripCompartmentsMultipleTypes(t *testing.T) {
	m := mustMorph(t, []morph.Node{
		{ID: 1, Type: morph.TypeSoma, Parent: morph.RootParent},
		{ID: 2, Type: morph.TypeAxon, Parent: 1},
		{ID: 3, Type: morph.TypeBasalDendrite, Parent: 1},
		{ID: 4, Type: morph.TypeApicalDendrite, Parent: 1},
	})

	stripped, err := StripCompartments(m, morph.TypeAxon, morph.TypeApicalDendrite)
	if err != nil {
		t.Fatalf("StripCompartments: %v", err)
	}
	if got := stripped.NodeCount(); got != 2 {
		t.Errorf("NodeCount = %d, want 2", got)
	}
}

func TestStripCompartmentsOrphans(t *testing.T) {
	// Node 3 survives but its parent is stripped: the rebuild fails
	// rather than emitting a dangling reference.
	m := mustMorph(t, []morph.Node{
		{ID: 1, Type: morph.TypeSoma, Parent: morph.RootParent},
		{ID: 2, Type: morph.TypeAxon, Parent: 1},
		{ID: 3, Type: morph.TypeBasalDendrite, Parent: 2},
	})

	if _, err := StripCompartments(m, morph.TypeAxon); !errors.Is(err, errors.ErrCodeDanglingParent) {
		t.Errorf("error = %v, want DANGLING_PARENT", err)
	}
}

func TestStripCompartmentsNoMatch(t *testing.T) {
	m := mustMorph(t, []morph.Node{
		{ID: 1, Type: morph.TypeSoma, Parent: morph.RootParent},
		{ID: 2, Type: morph.TypeAxon, Parent: 1},
	})

	stripped, err := StripCompartments(m, morph.TypeApicalDendrite)
	if err != nil {
		t.Fatalf("StripCompartments: %v", err)
	}
	if got := stripped.NodeCount(); got != 2 {
		t.Errorf("NodeCount = %d, want 2", got)
	}
}
