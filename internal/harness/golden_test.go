package harness

import (
	"testing"

	"github.com/roach88/cyclebench/internal/testutil"
)

func TestGolden_MixedReport(t *testing.T) {
	fake := testutil.NewFakeDUT(16, 256)
	fake.Regs[1] = 5
	fake.Regs[2] = 9
	fake.Regs[5] = 100
	fake.Data[100] = 15
	probe := NewProbe(fake)

	report := NewReport("mixed")
	first := NewCheckpoint("registers", 50,
		RegisterCheck{Register: 1, Expected: 5},
		RegisterCheck{Register: 2, Expected: 10},
	)
	second := NewCheckpoint("memory", 60,
		MemoryCheck{BaseRegister: 5, Expected: 15},
	)
	outcome, _ := first.Fire(52, probe)
	report.Add(outcome)
	outcome, _ = second.Fire(62, probe)
	report.Add(outcome)
	report.Missed = []string{"late"}
	report.Ticks = 62

	AssertGolden(t, "mixed_report", report)
}

func TestGolden_EmptyReport(t *testing.T) {
	report := NewReport("empty")
	AssertGolden(t, "empty_report", report)
}
