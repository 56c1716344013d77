package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/cyclebench/internal/engine"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// UsageLine is printed when the image argument is missing.
const UsageLine = "usage: cyclebench [flags] <hex_file>"

// NewRootCommand creates the root command. Run IDs for recorded history come
// from UUIDv7Generator.
func NewRootCommand() *cobra.Command {
	return newRootCommand(engine.UUIDv7Generator{})
}

func newRootCommand(runIDs engine.RunIDGenerator) *cobra.Command {
	opts := &RootOptions{}
	simOpts := &SimulateOptions{RootOptions: opts, RunIDs: runIDs}

	cmd := &cobra.Command{
		Use:   "cyclebench <hex_file>",
		Short: "Cycle-driven verification harness for a steppable processor model",
		Long: `Load a program image into the processor model, hold reset, run the clock,
and evaluate the scenario's register and memory checks at their checkpoints.

The process exits 0 when every check passed and 1 otherwise. Without
--scenario the built-in ADDI scenario is used.

Examples:
  cyclebench testdata/addi.hex
  cyclebench --scenario testdata/addi.yaml --vcd - testdata/addi.hex
  cyclebench --db history.db --format json testdata/addi.hex`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return NewExitError(ExitFailure, UsageLine)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitFailure, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(simOpts, args[0], cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Simulation flags
	cmd.Flags().StringVar(&simOpts.Scenario, "scenario", "", "scenario file (.yaml, .yml or .cue); default is the built-in ADDI scenario")
	cmd.Flags().StringVar(&simOpts.VCD, "vcd", "wave.vcd", `waveform output path ("-" disables tracing)`)
	cmd.Flags().Uint64Var(&simOpts.MaxTicks, "max-ticks", 0, "override the scenario's tick ceiling")
	cmd.Flags().StringVar(&simOpts.Database, "db", "", "record the run in this SQLite history database")
	cmd.Flags().StringVar(&simOpts.Color, "color", ColorAuto, "colour the report (auto|always|never)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// newLogger builds the CLI's stderr logger. --verbose lowers the level to
// Debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}
