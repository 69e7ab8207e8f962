package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurokit/morph/pkg/affine"
	"github.com/neurokit/morph/pkg/calibration"
	"github.com/neurokit/morph/pkg/swc"
)

// scaleOpts holds the command-line flags for the scale command.
type scaleOpts struct {
	output    string // output file path
	specimen  int64  // specimen ID for calibration lookup
	normalize bool   // translate the soma to the origin after scaling
}

// newScaleCmd creates the scale command, which converts a
// reconstruction from pixel to micron units. The lateral scale is fixed
// per rig; the z anisotropy is looked up per specimen from the
// calibration source configured in the config file.
func newScaleCmd() *cobra.Command {
	var opts scaleOpts

	cmd := &cobra.Command{
		Use:   "scale [file]",
		Short: "Convert a reconstruction from pixel to micron units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.specimen == 0 {
				return fmt.Errorf("--specimen is required")
			}
			return runScale(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>_scaled.swc)")
	cmd.Flags().Int64VarP(&opts.specimen, "specimen", "s", 0, "specimen ID for the z-resolution lookup")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", false, "translate the soma to the origin after scaling")

	return cmd
}

func runScale(ctx context.Context, input string, opts *scaleOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	cfg, err := loadConfig(configPathFromContext(ctx))
	if err != nil {
		return err
	}
	src, cleanup, err := openCalibration(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	m, err := swc.ReadFile(input)
	if err != nil {
		return err
	}

	spin := newSpinner(ctx, fmt.Sprintf("Looking up calibration for specimen %d", opts.specimen))
	spin.Start()
	scaled, err := calibration.PixelToMicron(ctx, m, opts.specimen, src)
	spin.Stop()
	if err != nil {
		return err
	}
	logger.Debugf("Scaled %d nodes to microns", scaled.NodeCount())

	if opts.normalize {
		scaled, err = affine.NormalizePosition(scaled)
		if err != nil {
			return err
		}
		logger.Debug("Translated soma to origin")
	}

	out := outputPath(opts.output, input, "_scaled")
	if err := swc.WriteFile(out, scaled); err != nil {
		return err
	}

	p.done("Scale complete")
	printSuccess("Scaled %s (specimen %d)", input, opts.specimen)
	printFile(out)
	return nil
}
