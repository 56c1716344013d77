package engine

import (
	"io"
	"log/slog"

	"github.com/roach88/cyclebench/internal/harness"
)

// Scheduler fires checkpoints when their trigger time has passed.
type Scheduler struct {
	checkpoints []*harness.Checkpoint
	probe       *harness.Probe
	report      *harness.Report
	logger      *slog.Logger
}

// NewScheduler creates a scheduler that appends fired outcomes to report.
// A nil logger discards output.
func NewScheduler(checkpoints []*harness.Checkpoint, probe *harness.Probe, report *harness.Report, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{
		checkpoints: checkpoints,
		probe:       probe,
		report:      report,
		logger:      logger,
	}
}

// Poll fires every pending checkpoint with At < tick, in storage order,
// provided the clock is low. It returns the number fired.
func (s *Scheduler) Poll(tick uint64, high bool) int {
	if high {
		return 0
	}

	fired := 0
	for _, cp := range s.checkpoints {
		if cp.Fired() || tick <= cp.At {
			continue
		}
		outcome, ok := cp.Fire(tick, s.probe)
		if !ok {
			continue
		}
		s.report.Add(outcome)
		fired++

		s.logger.Info("checkpoint fired",
			"label", cp.Label,
			"at", cp.At,
			"tick", tick,
			"passed", outcome.Passed(),
		)
	}
	return fired
}

// Done reports whether every checkpoint has fired.
func (s *Scheduler) Done() bool {
	for _, cp := range s.checkpoints {
		if !cp.Fired() {
			return false
		}
	}
	return true
}

// Pending returns the checkpoints that have not fired, in storage order.
func (s *Scheduler) Pending() []*harness.Checkpoint {
	var pending []*harness.Checkpoint
	for _, cp := range s.checkpoints {
		if !cp.Fired() {
			pending = append(pending, cp)
		}
	}
	return pending
}
