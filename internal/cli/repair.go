package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/neurokit/morph/pkg/errors"
	"github.com/neurokit/morph/pkg/morph"
	"github.com/neurokit/morph/pkg/morph/transform"
	"github.com/neurokit/morph/pkg/swc"
)

// repairOpts holds the command-line flags for the repair command.
type repairOpts struct {
	output      string // output file path
	threshold   int    // minimum child count for soma candidates
	interactive bool   // pick the soma interactively when ambiguous
	keepIDs     bool   // skip the final ID resequencing pass
}

// newRepairCmd creates the repair command. Repair is the standard
// cleanup pipeline for autotraced reconstructions: resolve the soma by
// branching degree, merge coincident duplicate somas, re-root detached
// segments at the leaf closest to the soma, and resequence IDs.
func newRepairCmd() *cobra.Command {
	opts := repairOpts{threshold: transform.DefaultChildThreshold}

	cmd := &cobra.Command{
		Use:   "repair [file]",
		Short: "Repair an autotraced SWC reconstruction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>_repaired.swc)")
	cmd.Flags().IntVar(&opts.threshold, "soma-threshold", opts.threshold, "minimum child count for soma candidates")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the soma interactively when ambiguous")
	cmd.Flags().BoolVar(&opts.keepIDs, "keep-ids", false, "preserve existing node identifiers")

	return cmd
}

// runRepair executes the repair pipeline on input and writes the result.
func runRepair(ctx context.Context, input string, opts *repairOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	m, err := swc.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d nodes, %d roots", input, m.NodeCount(), len(m.Roots()))

	m, err = resolveSoma(ctx, m, opts)
	if err != nil {
		return err
	}

	soma := m.Soma()
	somaID := 0
	if soma != nil {
		somaID = soma.ID
	}
	m, err = transform.RemoveDuplicateSoma(m, somaID)
	if err != nil && !errors.IsAdvisory(err) {
		return err
	}
	if err != nil {
		printWarning("%s", errors.UserMessage(err))
	}

	m, changed, err := transform.RepairSegmentRoots(m)
	if err != nil {
		return err
	}
	if changed {
		logger.Debug("Re-rooted detached segments")
	}

	if !opts.keepIDs {
		m, err = transform.SortIDs(m, 0)
		if err != nil {
			return err
		}
	}

	out := outputPath(opts.output, input, "_repaired")
	if err := swc.WriteFile(out, m); err != nil {
		return err
	}

	p.done("Repair complete")
	printSuccess("Repaired %s", input)
	printStats(m.NodeCount(), len(m.Roots()))
	printFile(out)
	return nil
}

// resolveSoma ensures the morphology has a soma, either via the degree
// heuristic or, with --interactive, by letting the user pick among the
// candidates.
func resolveSoma(ctx context.Context, m *morph.Morphology, opts *repairOpts) (*morph.Morphology, error) {
	logger := loggerFromContext(ctx)

	if opts.interactive {
		candidates := transform.SomaCandidates(m, opts.threshold)
		if len(candidates) > 1 {
			rows := make([]somaCandidate, len(candidates))
			for i, n := range candidates {
				rows[i] = somaCandidate{Node: n, ChildCount: m.ChildCount(n.ID)}
			}
			id, err := pickSoma(rows)
			if err != nil {
				return nil, err
			}
			if id != 0 {
				logger.Debugf("Soma assigned to node %d", id)
				return transform.AssignSoma(m, id)
			}
			printWarning("No soma selected, falling back to centroid heuristic")
		}
	}

	result, err := transform.AssignSomaByDegree(m, opts.threshold)
	if err != nil && !errors.IsAdvisory(err) {
		return nil, err
	}
	if err != nil {
		printWarning("%s", errors.UserMessage(err))
	}
	return result, nil
}
