package engine

import (
	"io"
	"log/slog"

	"github.com/roach88/cyclebench/internal/dut"
	"github.com/roach88/cyclebench/internal/harness"
	"github.com/roach88/cyclebench/internal/trace"
)

// Config holds the run parameters.
type Config struct {
	// MaxTicks is the tick ceiling for the free-running phase.
	MaxTicks uint64

	// ResetCycles is the number of full periods reset is held.
	ResetCycles int

	// StopWhenDone ends the run at the first poll after every checkpoint fired.
	StopWhenDone bool

	// Logger receives progress logs. Nil discards them.
	Logger *slog.Logger
}

// ConfigFor builds a Config from a scenario's resolved settings.
func ConfigFor(s *harness.Scenario, logger *slog.Logger) Config {
	set := s.Settings()
	return Config{
		MaxTicks:     set.MaxTicks,
		ResetCycles:  set.ResetCycles,
		StopWhenDone: set.StopWhenDone,
		Logger:       logger,
	}
}

// Run executes one simulation: reset, free run with checkpoint polling, and
// the final trace frame. The DUT must already hold its program.
//
// On a DUT fault the sink is closed and no report is returned. If only the
// final trace write or close fails, the completed report is returned with
// the error.
func Run(d dut.Device, sink trace.Sink, name string, checkpoints []*harness.Checkpoint, cfg Config) (*harness.Report, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	report := harness.NewReport(name)
	seq := NewSequencer(d, sink)
	sched := NewScheduler(checkpoints, harness.NewProbe(d), report, logger)

	if err := seq.Reset(cfg.ResetCycles); err != nil {
		seq.Abort()
		return nil, err
	}
	logger.Info("reset finished, starting execution", "tick", seq.Tick())

	for seq.Tick() < cfg.MaxTicks {
		if cfg.StopWhenDone && sched.Done() {
			break
		}
		if err := seq.Period(); err != nil {
			seq.Abort()
			return nil, err
		}
		sched.Poll(seq.Tick(), seq.High())
	}

	for _, cp := range sched.Pending() {
		report.Missed = append(report.Missed, cp.Label)
		logger.Warn("checkpoint never fired", "label", cp.Label, "at", cp.At, "ticks", seq.Tick())
	}
	report.Ticks = seq.Tick()

	logger.Info("run finished",
		"ticks", report.Ticks,
		"passed", report.PassedCount,
		"failed", report.FailedCount,
	)

	if err := seq.Finish(); err != nil {
		return report, err
	}
	return report, nil
}

// RunScenario builds fresh checkpoints from the scenario and runs them.
func RunScenario(d dut.Device, sink trace.Sink, s *harness.Scenario, logger *slog.Logger) (*harness.Report, error) {
	return Run(d, sink, s.Name, s.Build(), ConfigFor(s, logger))
}
