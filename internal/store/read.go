package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/cyclebench/internal/harness"
)

// RunSummary is one row of run history.
type RunSummary struct {
	ID       string          `json:"id"`
	Seq      int64           `json:"seq"`
	Scenario string          `json:"scenario"`
	Image    string          `json:"image"`
	Ticks    uint64          `json:"ticks"`
	Passed   int             `json:"passed"`
	Failed   int             `json:"failed"`
	Verdict  harness.Verdict `json:"verdict"`
	Missed   []string        `json:"missed,omitempty"`
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
// If scenario is non-empty only that scenario's runs are listed.
//
// Returns an empty slice (not nil) if no runs match.
func (s *Store) ListRuns(ctx context.Context, scenario string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, scenario, image, ticks, passed, failed, verdict, missed
		FROM runs
		WHERE ? = '' OR scenario = ?
		ORDER BY seq DESC
		LIMIT ?
	`, scenario, scenario, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ReadRun retrieves a single run summary by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (RunSummary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, scenario, image, ticks, passed, failed, verdict, missed
		FROM runs
		WHERE id = ?
	`, id)

	return scanRun(row)
}

// ReadReport rebuilds the report recorded under id, with checkpoints and
// results in their original firing order.
// Returns sql.ErrNoRows if the run does not exist.
func (s *Store) ReadReport(ctx context.Context, id string) (*harness.Report, error) {
	run, err := s.ReadRun(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT checkpoint_index, label, at, fired_at, kind, name, expected, actual, passed
		FROM results
		WHERE run_id = ?
		ORDER BY checkpoint_index ASC, result_index ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	report := harness.NewReport(run.Scenario)
	current := -1
	var outcome harness.CheckpointOutcome
	for rows.Next() {
		var (
			ci               int
			label            string
			at, firedAt      int64
			expected, actual int64
			passed           int
			res              harness.AssertionResult
		)
		if err := rows.Scan(&ci, &label, &at, &firedAt, &res.Kind, &res.Name, &expected, &actual, &passed); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.Expected = uint32(expected)
		res.Actual = uint32(actual)
		res.Passed = passed == 1

		if ci != current {
			if current >= 0 {
				report.Add(outcome)
			}
			current = ci
			outcome = harness.CheckpointOutcome{Label: label, At: uint64(at), FiredAt: uint64(firedAt)}
		}
		outcome.Results = append(outcome.Results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	if current >= 0 {
		report.Add(outcome)
	}

	report.Missed = run.Missed
	report.Ticks = run.Ticks
	return report, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun scans a runs row into a RunSummary.
func scanRun(row rowScanner) (RunSummary, error) {
	var (
		run        RunSummary
		ticks      int64
		verdict    string
		missedJSON string
	)
	if err := row.Scan(
		&run.ID, &run.Seq, &run.Scenario, &run.Image, &ticks,
		&run.Passed, &run.Failed, &verdict, &missedJSON,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunSummary{}, err
		}
		return RunSummary{}, fmt.Errorf("scan run: %w", err)
	}

	missed, err := unmarshalMissed(missedJSON)
	if err != nil {
		return RunSummary{}, err
	}

	run.Ticks = uint64(ticks)
	run.Verdict = harness.Verdict(verdict)
	run.Missed = missed
	return run, nil
}
