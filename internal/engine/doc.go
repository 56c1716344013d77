// Package engine drives a device under test through time and fires
// checkpoints.
//
// ARCHITECTURE:
//
// Single deterministic loop:
// One goroutine owns the DUT for the whole run. Each iteration advances the
// logical clock by one tick and evaluates the model once. Nothing suspends,
// nothing is cancelled, and nothing else mutates the DUT.
//
// Run phases:
//  1. Reset: hold reset for ResetCycles full periods (2 ticks each)
//  2. Deassert reset
//  3. Free run: one period at a time, polling the scheduler once per period
//     while the clock is low
//  4. Stop when every checkpoint has fired (StopWhenDone) or at MaxTicks
//  5. Emit one final trace frame and close the sink
//
// Every half-cycle is: evaluate, emit trace frame, advance tick. The clock
// level is derived from tick parity (odd ticks are high), so trace frame N
// always carries tick N's post-evaluation state.
//
// CRITICAL PATTERNS:
//
// Fire once:
// A checkpoint is eligible when tick > At and the clock is low. It latches on
// the first eligible poll and is never evaluated again.
//
// Storage order:
// Checkpoints eligible in the same poll fire in the order they are stored.
// The scheduler does not sort.
package engine
