package harness

import "fmt"

// Assertion kinds. They double as the `type` values in scenario files.
const (
	KindRegister = "register"
	KindMemory   = "memory"
)

// Assertion is a single expected-vs-actual comparison over DUT state.
type Assertion interface {
	Evaluate(p *Probe) AssertionResult
}

// RegisterCheck compares a register against a 32-bit value. A negative
// expectation must be given as its two's-complement pattern.
type RegisterCheck struct {
	Register int
	Expected uint32
	Name     string
}

// Evaluate reads the register and compares it as an unsigned 32-bit value.
func (c RegisterCheck) Evaluate(p *Probe) AssertionResult {
	actual := p.ReadRegister(c.Register)
	return AssertionResult{
		Kind:     KindRegister,
		Name:     c.label(),
		Expected: c.Expected,
		Actual:   actual,
		Passed:   actual == c.Expected,
	}
}

func (c RegisterCheck) label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("x%d", c.Register)
}

// MemoryCheck compares the data byte at x<BaseRegister>+Offset.
type MemoryCheck struct {
	BaseRegister int
	Offset       int32
	Expected     uint8
	Name         string
}

// Evaluate reads the byte and compares it as an unsigned 8-bit value.
func (c MemoryCheck) Evaluate(p *Probe) AssertionResult {
	actual := p.ReadMemoryByte(c.BaseRegister, c.Offset)
	return AssertionResult{
		Kind:     KindMemory,
		Name:     c.label(),
		Expected: uint32(c.Expected),
		Actual:   uint32(actual),
		Passed:   actual == c.Expected,
	}
}

func (c MemoryCheck) label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("mem[x%d%+d]", c.BaseRegister, c.Offset)
}

// EvaluateAll evaluates every assertion in declared order. A failure does
// not stop evaluation; the result slice always has len(assertions) entries.
func EvaluateAll(assertions []Assertion, p *Probe) []AssertionResult {
	results := make([]AssertionResult, 0, len(assertions))
	for _, a := range assertions {
		results = append(results, a.Evaluate(p))
	}
	return results
}
