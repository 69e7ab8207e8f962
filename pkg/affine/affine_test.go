package affine

import (
	"math"
	"testing"

	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
)

const epsilon = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < epsilon }

func TestPoint(t *testing.T) {
	tests := []struct {
		name      string
		transform *Transform
		in        [3]float64
		want      [3]float64
	}{
		{
			name:      "Identity",
			transform: FromList([12]float64{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}),
			in:        [3]float64{1, 2, 3},
			want:      [3]float64{1, 2, 3},
		},
		{
			name:      "Translation",
			transform: Translation(10, -5, 2),
			in:        [3]float64{1, 2, 3},
			want:      [3]float64{11, -3, 5},
		},
		{
			name:      "Scale",
			transform: Scale(2, 3, 0.5),
			in:        [3]float64{1, 2, 4},
			want:      [3]float64{2, 6, 2},
		},
		{
			name: "RotationZ90",
			transform: FromList([12]float64{
				0, -1, 0,
				1, 0, 0,
				0, 0, 1,
				0, 0, 0,
			}),
			in:   [3]float64{1, 0, 0},
			want: [3]float64{0, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := tt.transform.Point(tt.in[0], tt.in[1], tt.in[2])
			if !near(x, tt.want[0]) || !near(y, tt.want[1]) || !near(z, tt.want[2]) {
				t.Errorf("Point = (%v, %v, %v), want %v", x, y, z, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	m, err := morph.New([]morph.Node{
		{ID: 1, Type: morph.TypeSoma, X: 1, Y: 2, Z: 3, Radius: 5, Parent: morph.RootParent},
		{ID: 2, X: 10, Y: 20, Z: 30, Radius: 0.5, Parent: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	scaled, err := Scale(2, 2, 2).Apply(m)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	n, _ := scaled.Node(2)
	if !near(n.X, 20) || !near(n.Y, 40) || !near(n.Z, 60) {
		t.Errorf("node 2 = (%v, %v, %v), want (20, 40, 60)", n.X, n.Y, n.Z)
	}
	// Topology, type and radius survive untouched.
	if n.Parent != 1 || n.Radius != 0.5 {
		t.Errorf("node 2 parent/radius = %d/%v, want 1/0.5", n.Parent, n.Radius)
	}
	// The input is not mutated.
	if orig, _ := m.Node(2); orig.X != 10 {
		t.Errorf("input node 2 X = %v, want 10", orig.X)
	}
}

func TestNormalizePosition(t *testing.T) {
	m, err := morph.New([]morph.Node{
		{ID: 1, Type: morph.TypeSoma, X: 5, Y: -3, Z: 2, Parent: morph.RootParent},
		{ID: 2, X: 6, Y: -2, Z: 3, Parent: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	normalized, err := NormalizePosition(m)
	if err != nil {
		t.Fatalf("NormalizePosition: %v", err)
	}
	soma := normalized.Soma()
	if !near(soma.X, 0) || !near(soma.Y, 0) || !near(soma.Z, 0) {
		t.Errorf("soma = (%v, %v, %v), want origin", soma.X, soma.Y, soma.Z)
	}
	n, _ := normalized.Node(2)
	if !near(n.X, 1) || !near(n.Y, 1) || !near(n.Z, 1) {
		t.Errorf("node 2 = (%v, %v, %v), want (1, 1, 1)", n.X, n.Y, n.Z)
	}
}

func TestNormalizePositionNoSoma(t *testing.T) {
	m, err := morph.New([]morph.Node{{ID: 1, Parent: morph.RootParent}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := NormalizePosition(m); !errors.Is(err, errors.ErrCodeUnresolvedSoma) {
		t.Errorf("error = %v, want UNRESOLVED_SOMA", err)
	}
}
