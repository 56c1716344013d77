package store

import (
	"context"
	"fmt"

	"github.com/roach88/cyclebench/internal/harness"
)

// RecordRun stores a finished report under id.
//
// The run and all of its results are written in one transaction. The run's
// seq is one past the current maximum, so history order is insert order.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: recording the same id
// twice keeps the first copy and reports inserted=false.
func (s *Store) RecordRun(ctx context.Context, id, image string, r *harness.Report) (inserted bool, err error) {
	missedJSON, err := marshalMissed(r.Missed)
	if err != nil {
		return false, fmt.Errorf("record run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, scenario, image, ticks, passed, failed, verdict, missed)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		r.Scenario,
		image,
		int64(r.Ticks),
		r.PassedCount,
		r.FailedCount,
		string(r.Verdict()),
		missedJSON,
	)
	if err != nil {
		return false, fmt.Errorf("record run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record run: rows affected: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	for ci, cp := range r.Checkpoints {
		for ri, res := range cp.Results {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO results
				(run_id, checkpoint_index, result_index, label, at, fired_at, kind, name, expected, actual, passed)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				id,
				ci,
				ri,
				cp.Label,
				int64(cp.At),
				int64(cp.FiredAt),
				res.Kind,
				res.Name,
				int64(res.Expected),
				int64(res.Actual),
				boolToInt(res.Passed),
			)
			if err != nil {
				return false, fmt.Errorf("record run: result %d.%d: %w", ci, ri, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("record run: commit: %w", err)
	}
	return true, nil
}
