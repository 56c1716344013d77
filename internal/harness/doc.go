// Package harness holds the checking side of a simulation run: scenarios,
// checkpoints, assertions, the state probe, and the report they feed.
//
// The harness never drives the DUT. The engine package owns the clock and
// calls Checkpoint.Fire when a trigger time has passed; everything here is a
// pure function of the DUT state visible through a Probe at that moment.
//
// # Scenario Format
//
// Scenarios are YAML or CUE files:
//
//	name: addi
//	description: "ADDI results reach the register file"
//	max_ticks: 5000       # optional, default 5000
//	reset_cycles: 10      # optional, default 10
//	stop_when_done: true  # optional, default true
//	checkpoints:
//	  - label: "First ADDI test"
//	    at: 50
//	    checks:
//	      - {type: register, reg: 1, expect: 5}
//	      - {type: memory, base: 11, offset: -4, expect: 0xff}
//
// # Check Types
//
//   - register: compares x<reg> against a 32-bit expect
//   - memory: compares the data byte at x<base>+offset against an 8-bit expect
//
// Negative expects are stored as their two's-complement pattern, so
// expect: -1 on a register check means 0xFFFFFFFF.
//
// # Results
//
// Every assertion of a fired checkpoint is evaluated, even after a failure,
// and becomes one AssertionResult in the Report. The verdict is SUCCESS iff
// no result failed.
package harness
