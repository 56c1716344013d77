// Package testutil provides deterministic fakes shared by tests.
package testutil

import (
	"errors"

	"github.com/roach88/cyclebench/internal/dut"
)

// ErrInjectedFault is returned by FakeDUT.Eval when FailOnEval is reached.
var ErrInjectedFault = errors.New("injected model fault")

// FakeDUT is a scriptable device. Register and memory state only change
// through direct field writes or the OnEval hook, so tests control exactly
// what the probe sees.
type FakeDUT struct {
	Regs         [dut.RegisterCount]uint32
	Data         []byte
	Instructions []uint32

	// Evals counts Eval calls; ClockLog and ResetLog record the input
	// levels seen by each call.
	Evals    int
	ClockLog []bool
	ResetLog []bool

	// FailOnEval makes the Nth Eval call (1-based) fail. Zero never fails.
	FailOnEval int

	// OnEval runs after every successful Eval with the call number.
	OnEval func(d *FakeDUT, eval int)

	clk bool
	rst bool
}

var _ dut.Device = (*FakeDUT)(nil)

// NewFakeDUT creates a fake with the given store depths.
func NewFakeDUT(instructionWords, dataBytes int) *FakeDUT {
	return &FakeDUT{
		Data:         make([]byte, dataBytes),
		Instructions: make([]uint32, instructionWords),
	}
}

func (d *FakeDUT) SetClock(high bool)     { d.clk = high }
func (d *FakeDUT) SetReset(asserted bool) { d.rst = asserted }

func (d *FakeDUT) Eval() error {
	d.Evals++
	d.ClockLog = append(d.ClockLog, d.clk)
	d.ResetLog = append(d.ResetLog, d.rst)
	if d.FailOnEval != 0 && d.Evals == d.FailOnEval {
		return ErrInjectedFault
	}
	if d.OnEval != nil {
		d.OnEval(d, d.Evals)
	}
	return nil
}

func (d *FakeDUT) Register(index int) uint32 { return d.Regs[index] }

func (d *FakeDUT) DataByte(addr uint32) uint8 { return d.Data[addr] }

func (d *FakeDUT) InstructionDepth() int { return len(d.Instructions) }

func (d *FakeDUT) WriteInstruction(addr int, word uint32) { d.Instructions[addr] = word }
