package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/neurokit/morph/pkg/buildinfo"
)

// configKey is the context key for the --config flag value.
const configKey ctxKey = 1

// withConfigPath returns a new context carrying the config file path.
func withConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configKey, path)
}

// configPathFromContext retrieves the --config value, empty when unset.
func configPathFromContext(ctx context.Context) string {
	if p, ok := ctx.Value(configKey).(string); ok {
		return p
	}
	return ""
}

// Execute runs the morph CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (repair,
// reduce, sort, strip, scale, render), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "morph",
		Short:        "Morph restructures neuron reconstructions",
		Long:         `Morph is a CLI tool for cleaning up automated neuron tracings in SWC format: resolving and deduplicating somas, re-rooting broken segments, collapsing reconstructions to their branching skeleton, and converting pixel units to microns.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			ctx = withConfigPath(ctx, configPath)
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/morph/config.toml)")

	root.AddCommand(newRepairCmd())
	root.AddCommand(newReduceCmd())
	root.AddCommand(newSortCmd())
	root.AddCommand(newStripCmd())
	root.AddCommand(newScaleCmd())
	root.AddCommand(newRenderCmd())

	return root.ExecuteContext(ctx)
}

// outputPath derives the output file path: the --output value when set,
// otherwise the input path with suffix inserted before the extension.
func outputPath(output, input, suffix string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + ".swc"
}
