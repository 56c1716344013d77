package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cyclebench/internal/harness"
)

// ValidationResult is the payload of a successful validate command.
type ValidationResult struct {
	Valid        bool   `json:"valid"`
	Name         string `json:"name"`
	Checkpoints  int    `json:"checkpoints"`
	Checks       int    `json:"checks"`
	MaxTicks     uint64 `json:"max_ticks"`
	ResetCycles  int    `json:"reset_cycles"`
	StopWhenDone bool   `json:"stop_when_done"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario>",
		Short: "Validate a scenario file without simulating",
		Long: `Load a YAML or CUE scenario and check it against the scenario schema:
required fields, register indices, value widths, and that every checkpoint
can fire before the tick ceiling.

Exit codes:
  0 - Scenario is valid
  2 - Scenario could not be read or is invalid`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeScenario, "invalid scenario", err)
	}

	result := ValidationResult{
		Valid:       true,
		Name:        scenario.Name,
		Checkpoints: len(scenario.Checkpoints),
	}
	for _, cp := range scenario.Checkpoints {
		formatter.VerboseLog("Checkpoint %q at %d: %d check(s)", cp.Label, cp.At, len(cp.Checks))
		result.Checks += len(cp.Checks)
	}
	settings := scenario.Settings()
	result.MaxTicks = settings.MaxTicks
	result.ResetCycles = settings.ResetCycles
	result.StopWhenDone = settings.StopWhenDone

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("✓ Scenario %q valid: %d checkpoint(s), %d check(s)",
		result.Name, result.Checkpoints, result.Checks))
}
