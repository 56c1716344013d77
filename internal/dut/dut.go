// Package dut defines the contract between the verification harness and a
// device under test.
//
// The harness never reaches into a model's internal storage. A model exposes
// its clock and reset inputs, an evaluate operation, and a small set of stable
// accessors for architectural state. Those accessors are split by capability
// so each harness component depends only on what it uses:
//
//   - Device: driven by the clock/reset sequencer (the only mutator)
//   - Introspector: read by the state probe and the trace sink
//   - InstructionStore: written once by the image loader
//
// A DUT instance belongs to exactly one run. Concurrent runs need one
// instance each.
package dut

// RegisterCount is the number of architectural registers (x0..x31).
const RegisterCount = 32

// Introspector exposes read-only architectural state.
//
// Register must accept indices 0..RegisterCount-1. DataByte returns the byte
// held at addr in the data store; behaviour for addresses beyond the model's
// declared depth is model-defined.
type Introspector interface {
	Register(index int) uint32
	DataByte(addr uint32) uint8
}

// InstructionStore is the word-addressable program store.
type InstructionStore interface {
	// InstructionDepth is the capacity of the store in words.
	InstructionDepth() int

	// WriteInstruction stores word at addr (a word index, not a byte address).
	WriteInstruction(addr int, word uint32)
}

// Device is the full collaborator driven by the sequencer.
type Device interface {
	Introspector
	InstructionStore

	// SetClock drives the clock input to the given level.
	SetClock(high bool)

	// SetReset drives the reset input.
	SetReset(asserted bool)

	// Eval advances combinational and sequential state for the current input
	// levels. An error means the model is corrupt and the run cannot continue.
	Eval() error
}
