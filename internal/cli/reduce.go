package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/neurokit/morph/pkg/morph/transform"
	"github.com/neurokit/morph/pkg/swc"
)

// reduceOpts holds the command-line flags for the reduce command.
type reduceOpts struct {
	output string // output file path
}

// newReduceCmd creates the reduce command, which collapses a
// reconstruction to its irreducible skeleton of root, branch, and leaf
// nodes.
func newReduceCmd() *cobra.Command {
	var opts reduceOpts

	cmd := &cobra.Command{
		Use:   "reduce [file]",
		Short: "Collapse a reconstruction to its branching skeleton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>_reduced.swc)")

	return cmd
}

func runReduce(ctx context.Context, input string, opts *reduceOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	m, err := swc.ReadFile(input)
	if err != nil {
		return err
	}
	before := m.NodeCount()

	reduced, err := transform.Reduce(m)
	if err != nil {
		return err
	}
	logger.Debugf("Reduced %d nodes to %d", before, reduced.NodeCount())

	out := outputPath(opts.output, input, "_reduced")
	if err := swc.WriteFile(out, reduced); err != nil {
		return err
	}

	p.done("Reduce complete")
	printSuccess("Reduced %s: %d nodes to %d", input, before, reduced.NodeCount())
	printFile(out)
	return nil
}
