// Package store provides SQLite-backed run history.
//
// Each recorded run keeps its summary (scenario, image, verdict, counters)
// and every assertion result in firing order:
//   - runs: one row per simulation, identified by a UUIDv7 run ID
//   - results: one row per AssertionResult, keyed by (run, checkpoint, index)
//
// # Ordering
//
//   - Runs are ordered by seq, a logical counter assigned at insert, never by
//     wall time
//   - Results are ordered by (checkpoint_index, result_index), which is the
//     firing order of the report they came from
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
