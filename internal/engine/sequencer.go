package engine

import (
	"github.com/roach88/cyclebench/internal/dut"
	"github.com/roach88/cyclebench/internal/trace"
)

// Sequencer drives the DUT's clock and reset inputs. It is the only
// component that calls Eval.
type Sequencer struct {
	dut   dut.Device
	sink  trace.Sink
	clock *Clock
	reset bool
}

// NewSequencer creates a sequencer at tick 0 with reset deasserted.
func NewSequencer(d dut.Device, sink trace.Sink) *Sequencer {
	if sink == nil {
		sink = trace.Discard{}
	}
	return &Sequencer{dut: d, sink: sink, clock: NewClock()}
}

// Tick returns the current logical time.
func (s *Sequencer) Tick() uint64 { return s.clock.Tick() }

// High reports the current derived clock level.
func (s *Sequencer) High() bool { return s.clock.High() }

// HalfCycle drives the clock to the current level, evaluates the DUT, emits
// one trace frame for the current tick, then advances the tick (which toggles
// the level).
func (s *Sequencer) HalfCycle() error {
	tick := s.clock.Tick()
	high := s.clock.High()

	s.dut.SetClock(high)
	if err := s.dut.Eval(); err != nil {
		return NewDUTFault(tick, err)
	}
	if err := s.sink.Dump(trace.Capture(tick, high, s.reset, s.dut)); err != nil {
		return NewTraceError(tick, err)
	}
	s.clock.Advance()
	return nil
}

// Period runs two half-cycles, ending on the same clock level it started.
func (s *Sequencer) Period() error {
	if err := s.HalfCycle(); err != nil {
		return err
	}
	return s.HalfCycle()
}

// Reset holds reset for the given number of full periods, then deasserts it.
func (s *Sequencer) Reset(cycles int) error {
	s.reset = true
	s.dut.SetReset(true)
	for i := 0; i < cycles; i++ {
		if err := s.Period(); err != nil {
			return err
		}
	}
	s.reset = false
	s.dut.SetReset(false)
	return nil
}

// Finish emits a final frame at the current tick without evaluating, then
// closes the sink.
func (s *Sequencer) Finish() error {
	tick := s.clock.Tick()
	if err := s.sink.Dump(trace.Capture(tick, s.clock.High(), s.reset, s.dut)); err != nil {
		_ = s.sink.Close()
		return NewTraceError(tick, err)
	}
	if err := s.sink.Close(); err != nil {
		return NewTraceError(tick, err)
	}
	return nil
}

// Abort closes the sink after a failed run, ignoring close errors.
func (s *Sequencer) Abort() {
	_ = s.sink.Close()
}
