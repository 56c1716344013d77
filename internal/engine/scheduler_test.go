package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cyclebench/internal/harness"
	"github.com/roach88/cyclebench/internal/testutil"
)

func newTestScheduler(cps ...*harness.Checkpoint) (*Scheduler, *harness.Report, *testutil.FakeDUT) {
	fake := testutil.NewFakeDUT(16, 16)
	report := harness.NewReport("sched")
	return NewScheduler(cps, harness.NewProbe(fake), report, nil), report, fake
}

func zeroCheck() harness.Assertion {
	return harness.RegisterCheck{Register: 0, Expected: 0}
}

func TestScheduler_NeverFiresWhileHigh(t *testing.T) {
	sched, report, _ := newTestScheduler(harness.NewCheckpoint("a", 10, zeroCheck()))

	assert.Equal(t, 0, sched.Poll(11, true))
	assert.Equal(t, 0, sched.Poll(101, true))
	assert.Empty(t, report.Checkpoints)
	assert.False(t, sched.Done())
}

func TestScheduler_StrictlyAfterTrigger(t *testing.T) {
	cp := harness.NewCheckpoint("a", 10, zeroCheck())
	sched, report, _ := newTestScheduler(cp)

	assert.Equal(t, 0, sched.Poll(10, false), "tick == At is not eligible")
	assert.Equal(t, 1, sched.Poll(12, false))

	require.Len(t, report.Checkpoints, 1)
	assert.Equal(t, uint64(12), report.Checkpoints[0].FiredAt)
	assert.Equal(t, uint64(12), cp.FiredAt())
	assert.True(t, sched.Done())
}

func TestScheduler_FiresOnce(t *testing.T) {
	sched, report, _ := newTestScheduler(harness.NewCheckpoint("a", 10, zeroCheck()))

	sched.Poll(12, false)
	assert.Equal(t, 0, sched.Poll(14, false))
	assert.Equal(t, 0, sched.Poll(16, false))

	assert.Len(t, report.Checkpoints, 1)
	assert.Equal(t, 1, report.PassedCount)
}

func TestScheduler_StorageOrder(t *testing.T) {
	sched, report, _ := newTestScheduler(
		harness.NewCheckpoint("late", 30, zeroCheck()),
		harness.NewCheckpoint("second", 10, zeroCheck()),
		harness.NewCheckpoint("first", 10, zeroCheck()),
	)

	assert.Equal(t, 2, sched.Poll(12, false))
	assert.Equal(t, 1, sched.Poll(40, false))

	var labels []string
	for _, cp := range report.Checkpoints {
		labels = append(labels, cp.Label)
	}
	assert.Equal(t, []string{"second", "first", "late"}, labels)
}

func TestScheduler_Pending(t *testing.T) {
	early := harness.NewCheckpoint("early", 10, zeroCheck())
	late := harness.NewCheckpoint("late", 100, zeroCheck())
	sched, _, _ := newTestScheduler(early, late)

	sched.Poll(12, false)

	assert.False(t, sched.Done())
	assert.Equal(t, []*harness.Checkpoint{late}, sched.Pending())
}

func TestScheduler_SamplesStateAtPoll(t *testing.T) {
	sched, report, fake := newTestScheduler(
		harness.NewCheckpoint("a", 10, harness.RegisterCheck{Register: 1, Expected: 5}),
	)

	fake.Regs[1] = 4
	sched.Poll(10, false)
	fake.Regs[1] = 5
	sched.Poll(12, false)

	require.Len(t, report.Checkpoints, 1)
	assert.True(t, report.Checkpoints[0].Passed())
}
