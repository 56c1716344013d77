// Package trace records a per-tick copy of DUT state for debugging.
//
// The sequencer hands every simulated half-cycle to a Sink exactly once, in
// tick order, after the DUT has been evaluated for that tick. Sinks are
// synchronous: Dump returns only after the frame has been accepted.
package trace

import "github.com/roach88/cyclebench/internal/dut"

// Frame is the observable state at one tick.
type Frame struct {
	Tick      uint64
	Clock     bool
	Reset     bool
	Registers [dut.RegisterCount]uint32
}

// Sink receives frames. It is opened before the run and closed once after.
type Sink interface {
	Dump(f Frame) error
	Close() error
}

// Capture builds a frame from the model's architectural state.
func Capture(tick uint64, clock, reset bool, state dut.Introspector) Frame {
	f := Frame{Tick: tick, Clock: clock, Reset: reset}
	for i := range f.Registers {
		f.Registers[i] = state.Register(i)
	}
	return f
}

// Discard drops all frames.
type Discard struct{}

func (Discard) Dump(Frame) error { return nil }
func (Discard) Close() error { return nil }

// Recorder keeps frames in memory.
type Recorder struct {
	Frames []Frame
	Closed bool
}

// Dump appends f.
func (r *Recorder) Dump(f Frame) error {
	r.Frames = append(r.Frames, f)
	return nil
}

// Close marks the recorder closed.
func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}
