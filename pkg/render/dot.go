// Package render draws morphologies as node-link diagrams via
// Graphviz. Full reconstructions run to tens of thousands of nodes;
// rendering is mostly useful on the irreducible skeleton produced by
// the transform package.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/neurokit/morph/pkg/morph"
)

// Options configures morphology rendering.
type Options struct {
	// Detailed includes compartment type and coordinates in node
	// labels. When false, only the node ID is shown.
	Detailed bool
}

// Conventional SWC compartment colors.
var typeColors = map[int]string{
	morph.TypeSoma:           "indianred",
	morph.TypeAxon:           "steelblue",
	morph.TypeBasalDendrite:  "seagreen",
	morph.TypeApicalDendrite: "mediumpurple",
}

// ToDOT converts a morphology to Graphviz DOT format, one edge per
// parent link (parent above child). The resulting DOT string can be
// rendered with [RenderSVG] or [RenderPNG].
func ToDOT(m *morph.Morphology, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph morphology {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range m.Nodes() {
		fmt.Fprintf(&buf, "  %d [label=%q%s];\n", n.ID, label(n, opts.Detailed), colorAttr(n))
	}
	buf.WriteString("\n")
	for _, n := range m.Nodes() {
		if !n.IsRoot() {
			fmt.Fprintf(&buf, "  %d -> %d;\n", n.Parent, n.ID)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func label(n *morph.Node, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("%d", n.ID)
	}
	return fmt.Sprintf("%d\ntype %d\n(%.1f, %.1f, %.1f)", n.ID, n.Type, n.X, n.Y, n.Z)
}

func colorAttr(n *morph.Node) string {
	color, ok := typeColors[n.Type]
	if !ok {
		return ""
	}
	return fmt.Sprintf(", fillcolor=%q", color)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
