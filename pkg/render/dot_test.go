package render

import (
	"strings"
	"testing"

	"github.com/neurokit/morph/pkg/morph"
)

func testMorph(t *testing.T) *morph.Morphology {
	t.Helper()
	m, err := morph.New([]morph.Node{
		{ID: 1, Type: morph.TypeSoma, X: 0, Y: 0, Z: 0, Parent: morph.RootParent},
		{ID: 2, Type: morph.TypeAxon, X: 1, Y: 0, Z: 0, Parent: 1},
		{ID: 3, Type: morph.TypeBasalDendrite, X: 0, Y: 1, Z: 0, Parent: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testMorph(t), Options{})

	if !strings.HasPrefix(dot, "digraph morphology {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	for _, want := range []string{
		`1 [label="1"`,
		`fillcolor="indianred"`,
		`fillcolor="steelblue"`,
		`fillcolor="seagreen"`,
		"1 -> 2;",
		"1 -> 3;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	// Roots produce no incoming edge.
	if strings.Contains(dot, "-> 1;") {
		t.Errorf("root has an incoming edge:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testMorph(t), Options{Detailed: true})
	if !strings.Contains(dot, "type 2") {
		t.Errorf("detailed label missing type:\n%s", dot)
	}
	if !strings.Contains(dot, "(1.0, 0.0, 0.0)") {
		t.Errorf("detailed label missing coordinates:\n%s", dot)
	}
}

func TestToDOTUnknownTypeHasNoColor(t *testing.T) {
	m, err := morph.New([]morph.Node{{ID: 1, Type: 7, Parent: morph.RootParent}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dot := ToDOT(m, Options{})
	if strings.Contains(dot, `1 [label="1", fillcolor=`) {
		t.Errorf("unknown type got a color:\n%s", dot)
	}
}
