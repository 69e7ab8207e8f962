package swc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
)

func TestDecode(t *testing.T) {
	input := `# Exported reconstruction
# id type x y z radius parent

1 1 0.0 0.0 0.0 5.0 -1
2 3 1.5 0 0 0.5 1
3 3 3 0 0 0.5 2
`
	m, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := m.NodeCount(); got != 3 {
		t.Fatalf("NodeCount = %d, want 3", got)
	}
	soma := m.Soma()
	if soma == nil || soma.ID != 1 || soma.Radius != 5.0 {
		t.Errorf("soma = %v, want node 1 with radius 5", soma)
	}
	n, _ := m.Node(2)
	if n.X != 1.5 || n.Type != morph.TypeBasalDendrite || n.Parent != 1 {
		t.Errorf("node 2 = %+v", n)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "ShortLine", input: "1 1 0 0 0 1\n"},
		{name: "LongLine", input: "1 1 0 0 0 1 -1 7\n"},
		{name: "BadID", input: "x 1 0 0 0 1 -1\n"},
		{name: "BadCoordinate", input: "1 1 zero 0 0 1 -1\n"},
		{name: "BadParent", input: "1 1 0 0 0 1 none\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidSWC) {
				t.Errorf("Decode error = %v, want INVALID_SWC", err)
			}
		})
	}
}

func TestDecodeBrokenTree(t *testing.T) {
	// Parses fine but the parent reference dangles.
	input := "1 1 0 0 0 1 -1\n2 3 1 0 0 1 99\n"
	if _, err := Decode(strings.NewReader(input)); !errors.Is(err, errors.ErrCodeDanglingParent) {
		t.Errorf("Decode error = %v, want DANGLING_PARENT", err)
	}
}

func TestEncode(t *testing.T) {
	m, err := morph.New([]morph.Node{
		{ID: 1, Type: 1, X: 0.25, Y: 0, Z: 0, Radius: 5, Parent: -1},
		{ID: 2, Type: 3, X: 1.5, Y: 2, Z: 3, Radius: 0.5, Parent: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var sb strings.Builder
	if err := Encode(&sb, m); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "1 1 0.25 0 0 5 -1\n2 3 1.5 2 3 0.5 1\n"
	if sb.String() != want {
		t.Errorf("Encode = %q, want %q", sb.String(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	input := "1 1 0.1 0.2 0.3 5 -1\n2 2 1 2 3 0.5 1\n3 2 4 5 6 0.5 2\n"
	m, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var sb strings.Builder
	if err := Encode(&sb, m); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if sb.String() != input {
		t.Errorf("round trip = %q, want %q", sb.String(), input)
	}
}

func TestReadWriteFile(t *testing.T) {
	m, err := morph.New([]morph.Node{
		{ID: 1, Type: 1, Radius: 5, Parent: -1},
		{ID: 2, Type: 3, X: 1, Radius: 0.5, Parent: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.swc")
	if err := WriteFile(path, m); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := back.NodeCount(); got != 2 {
		t.Errorf("NodeCount = %d, want 2", got)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("stray temp file %s", e.Name())
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.swc")); err == nil {
		t.Error("ReadFile on missing file should fail")
	}
}
