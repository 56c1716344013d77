package engine

// Clock is the simulation's logical time.
//
// The tick counter only increases. The DUT clock level is derived from tick
// parity: even ticks are low, odd ticks are high, so the level toggles exactly
// once per tick.
//
// Clock is owned by one Sequencer and is not safe for concurrent use.
type Clock struct {
	tick uint64
}

// NewClock creates a clock at tick 0 (low).
func NewClock() *Clock {
	return &Clock{}
}

// Tick returns the current tick.
func (c *Clock) Tick() uint64 { return c.tick }

// High reports whether the derived clock level is high.
func (c *Clock) High() bool { return c.tick%2 == 1 }

// Advance moves to the next tick and returns it.
func (c *Clock) Advance() uint64 {
	c.tick++
	return c.tick
}
