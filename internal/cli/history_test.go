package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cyclebench/internal/harness"
	"github.com/roach88/cyclebench/internal/store"
)

func seedHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	passing := harness.NewReport("addi")
	passing.Ticks = 102
	failing := harness.NewReport("loop")
	failing.Add(harness.CheckpointOutcome{
		Label:   "end",
		Results: []harness.AssertionResult{{Kind: harness.KindRegister, Name: "x1", Expected: 1}},
	})

	_, err = st.RecordRun(ctx, "run-a", "addi.hex", passing)
	require.NoError(t, err)
	_, err = st.RecordRun(ctx, "run-b", "loop.hex", failing)
	require.NoError(t, err)
	return path
}

func TestHistory_Text(t *testing.T) {
	db := seedHistory(t)

	stdout, _, err := execute(t, "history", "--db", db)
	require.NoError(t, err)

	assert.Contains(t, stdout, "RUN ID")
	assert.Contains(t, stdout, "run-a")
	assert.Contains(t, stdout, "FAILURE")
	assert.Less(t, strings.Index(stdout, "run-b"), strings.Index(stdout, "run-a"), "newest first")
}

func TestHistory_JSONFiltered(t *testing.T) {
	db := seedHistory(t)

	stdout, _, err := execute(t, "history", "--db", db, "--scenario", "loop", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   HistoryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data.Runs, 1)
	assert.Equal(t, "run-b", resp.Data.Runs[0].ID)
	assert.Equal(t, harness.VerdictFailure, resp.Data.Runs[0].Verdict)
	assert.Equal(t, 1, resp.Data.Runs[0].Failed)
}

func TestHistory_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	stdout, _, err := execute(t, "history", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No runs recorded.")
}

func TestHistory_MissingDatabase(t *testing.T) {
	_, stderr, err := execute(t, "history", "--db", filepath.Join(t.TempDir(), "none.db"))

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "database not found")
}

func TestHistory_RequiresDB(t *testing.T) {
	_, _, err := execute(t, "history")
	require.Error(t, err)
}
