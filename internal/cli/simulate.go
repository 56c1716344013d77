package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/cyclebench/internal/dut/rv32"
	"github.com/roach88/cyclebench/internal/engine"
	"github.com/roach88/cyclebench/internal/harness"
	"github.com/roach88/cyclebench/internal/image"
	"github.com/roach88/cyclebench/internal/store"
	"github.com/roach88/cyclebench/internal/trace"
)

// SimulateOptions holds flags for a simulation run.
type SimulateOptions struct {
	*RootOptions
	Scenario string
	VCD      string
	MaxTicks uint64
	Database string
	Color    string

	// RunIDs generates history run IDs. NewRootCommand uses UUIDv7Generator;
	// tests inject a FixedGenerator.
	RunIDs engine.RunIDGenerator
}

// RunOutput is the JSON payload of a simulation run.
type RunOutput struct {
	RunID   string          `json:"run_id,omitempty"`
	Image   string          `json:"image"`
	Loaded  int             `json:"loaded"`
	Verdict harness.Verdict `json:"verdict"`
	Report  *harness.Report `json:"report"`

	// Diagnostics lists trace or history failures that happened after the
	// checks ran. The report is complete either way.
	Diagnostics []CLIError `json:"diagnostics,omitempty"`
}

func runSimulate(opts *SimulateOptions, imagePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Diagnostics go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	if !slices.Contains(ValidColorModes, opts.Color) {
		return formatter.Fail(ExitFailure, ErrCodeFlags,
			fmt.Sprintf("invalid color %q: must be one of %v", opts.Color, ValidColorModes), nil)
	}

	scenario, err := resolveScenario(opts, cmd)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeScenario, "failed to load scenario", err)
	}
	formatter.VerboseLog("Scenario %q: %d checkpoint(s)", scenario.Name, len(scenario.Checkpoints))

	core := rv32.New()
	prog, err := image.LoadFile(imagePath, core.InstructionDepth(), logger)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeImage, "failed to load image", err)
	}
	loaded := prog.Install(core)
	formatter.Info("Loaded %d instructions from %s", loaded, imagePath)
	if prog.Truncated {
		formatter.VerboseLog("Image truncated at %d words", core.InstructionDepth())
	}

	sink, err := openSink(opts.VCD)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeTrace, "failed to open trace", err)
	}

	report, runErr := engine.RunScenario(core, sink, scenario, logger)
	if report == nil {
		return formatter.Fail(ExitFailure, errCodeFor(runErr), "simulation aborted", runErr)
	}

	// The report is always shown once the checks ran. Trace and history
	// failures after that point are diagnostics attached to it.
	var diags []CLIError
	var diagErrs []error
	if runErr != nil {
		diags = append(diags, CLIError{Code: ErrCodeTrace, Message: "trace incomplete", Details: runErr.Error()})
		diagErrs = append(diagErrs, runErr)
	}
	runID, dbErr := recordRun(cmd.Context(), opts, imagePath, report, logger)
	if dbErr != nil {
		diags = append(diags, CLIError{Code: ErrCodeDatabase, Message: "failed to record run", Details: dbErr.Error()})
		diagErrs = append(diagErrs, dbErr)
	}

	if opts.Format == "json" {
		if err := formatter.Success(RunOutput{
			RunID:       runID,
			Image:       imagePath,
			Loaded:      loaded,
			Verdict:     report.Verdict(),
			Report:      report,
			Diagnostics: diags,
		}); err != nil {
			return err
		}
	} else {
		RenderReport(formatter.Writer, report, NewPalette(opts.Color, formatter.Writer))
		if runID != "" {
			formatter.VerboseLog("Recorded run %s in %s", runID, opts.Database)
		}
		for _, d := range diags {
			_ = formatter.Error(d.Code, d.Message, d.Details)
		}
	}

	if len(diags) > 0 {
		return &ExitError{Code: ExitFailure, Message: diags[0].Message, Err: errors.Join(diagErrs...), Reported: true}
	}

	if report.ExitCode() != ExitSuccess {
		return &ExitError{
			Code:     report.ExitCode(),
			Message:  fmt.Sprintf("%d of %d check(s) failed", report.FailedCount, report.Total()),
			Reported: true,
		}
	}
	return nil
}

// resolveScenario loads --scenario or the built-in default and applies the
// --max-ticks override.
func resolveScenario(opts *SimulateOptions, cmd *cobra.Command) (*harness.Scenario, error) {
	scenario := harness.DefaultScenario()
	if opts.Scenario != "" {
		s, err := harness.LoadScenario(opts.Scenario)
		if err != nil {
			return nil, err
		}
		scenario = s
	}

	if cmd.Flags().Changed("max-ticks") {
		scenario.MaxTicks = opts.MaxTicks
		if err := scenario.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --max-ticks: %w", err)
		}
	}
	return scenario, nil
}

func openSink(path string) (trace.Sink, error) {
	if path == "-" || path == "" {
		return trace.Discard{}, nil
	}
	return trace.CreateVCD(path)
}

// recordRun stores the report when --db is set and returns the run ID.
func recordRun(ctx context.Context, opts *SimulateOptions, imagePath string, report *harness.Report, logger *slog.Logger) (string, error) {
	if opts.Database == "" {
		return "", nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = engine.UUIDv7Generator{}
	}
	id := runIDs.Generate()
	if _, err := st.RecordRun(ctx, id, imagePath, report); err != nil {
		return "", err
	}
	logger.Debug("run recorded", "id", id, "db", opts.Database)
	return id, nil
}

func errCodeFor(err error) string {
	if engine.IsTraceError(err) {
		return ErrCodeTrace
	}
	return ErrCodeSimulation
}
