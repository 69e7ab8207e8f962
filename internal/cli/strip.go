package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurokit/morph/pkg/morph/transform"
	"github.com/neurokit/morph/pkg/swc"
)

// stripOpts holds the command-line flags for the strip command.
type stripOpts struct {
	output string // output file path
	types  []int  // compartment types to remove
}

// newStripCmd creates the strip command, which removes all nodes of
// the given compartment types. Removing a type whose nodes still have
// descendants of other types fails, since that would orphan them.
func newStripCmd() *cobra.Command {
	var opts stripOpts

	cmd := &cobra.Command{
		Use:   "strip [file]",
		Short: "Remove compartment types from a reconstruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.types) == 0 {
				return fmt.Errorf("at least one --type is required")
			}
			return runStrip(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>_stripped.swc)")
	cmd.Flags().IntSliceVarP(&opts.types, "type", "t", nil, "compartment type to remove (repeatable, e.g. -t 2 -t 3)")

	return cmd
}

func runStrip(ctx context.Context, input string, opts *stripOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	m, err := swc.ReadFile(input)
	if err != nil {
		return err
	}
	before := m.NodeCount()

	stripped, err := transform.StripCompartments(m, opts.types...)
	if err != nil {
		return err
	}
	logger.Debugf("Stripped %d of %d nodes", before-stripped.NodeCount(), before)

	out := outputPath(opts.output, input, "_stripped")
	if err := swc.WriteFile(out, stripped); err != nil {
		return err
	}

	p.done("Strip complete")
	printSuccess("Stripped %d nodes from %s", before-stripped.NodeCount(), input)
	printFile(out)
	return nil
}
