package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurokit/morph/pkg/render"
	"github.com/neurokit/morph/pkg/swc"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path
	format   string // output format: "svg", "png", "dot"
	detailed bool   // include coordinates and radii in node labels
}

// newRenderCmd creates the render command, which draws a morphology as
// a node-link diagram via Graphviz.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a morphology as a node-link diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRenderFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include coordinates and radii in node labels")

	return cmd
}

// validateRenderFormat checks that the format is svg, png, or dot.
func validateRenderFormat(f string) error {
	switch f {
	case "svg", "png", "dot":
		return nil
	}
	return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", f)
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	m, err := swc.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d nodes", input, m.NodeCount())

	dot := render.ToDOT(m, render.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = render.RenderSVG(ctx, dot)
	case "png":
		data, err = render.RenderPNG(ctx, dot)
	}
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}

	p.done("Render complete")
	printSuccess("Rendered %s", input)
	printFile(out)
	return nil
}
