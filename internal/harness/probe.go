package harness

import "github.com/roach88/cyclebench/internal/dut"

// Probe reads architectural state from a DUT. It never mutates the model.
//
// Indices are passed through unchecked; out-of-range behaviour is whatever
// the model does.
type Probe struct {
	state dut.Introspector
}

// NewProbe wraps a model's introspection accessors.
func NewProbe(state dut.Introspector) *Probe {
	return &Probe{state: state}
}

// ReadRegister returns the current value of x<index>.
func (p *Probe) ReadRegister(index int) uint32 {
	return p.state.Register(index)
}

// ReadMemoryByte returns the data byte at x<baseReg> + offset, using the
// register value at the moment of the call.
func (p *Probe) ReadMemoryByte(baseReg int, offset int32) uint8 {
	addr := p.state.Register(baseReg) + uint32(offset)
	return p.state.DataByte(addr)
}
