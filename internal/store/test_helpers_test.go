package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/cyclebench/internal/harness"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestReport builds a two-checkpoint report with one failure.
func createTestReport(scenario string) *harness.Report {
	r := harness.NewReport(scenario)
	r.Add(harness.CheckpointOutcome{
		Label:   "First ADDI test",
		At:      50,
		FiredAt: 52,
		Results: []harness.AssertionResult{
			{Kind: harness.KindRegister, Name: "x1", Expected: 5, Actual: 5, Passed: true},
			{Kind: harness.KindRegister, Name: "x3", Expected: 0xFFFFFFFF, Actual: 0xFFFFFFFE, Passed: false},
		},
	})
	r.Add(harness.CheckpointOutcome{
		Label:   "memory",
		At:      60,
		FiredAt: 62,
		Results: []harness.AssertionResult{
			{Kind: harness.KindMemory, Name: "mem[x5+0]", Expected: 15, Actual: 15, Passed: true},
		},
	})
	r.Ticks = 62
	return r
}
