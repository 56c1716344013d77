package harness

// Checkpoint is a scheduled sampling point. It moves PENDING -> FIRED once
// per run and is never re-armed.
type Checkpoint struct {
	Label      string
	At         uint64
	Assertions []Assertion

	fired   bool
	firedAt uint64
}

// NewCheckpoint creates a pending checkpoint.
func NewCheckpoint(label string, at uint64, assertions ...Assertion) *Checkpoint {
	return &Checkpoint{Label: label, At: at, Assertions: assertions}
}

// Fired reports whether the checkpoint has fired.
func (c *Checkpoint) Fired() bool { return c.fired }

// FiredAt returns the tick at which the checkpoint fired (0 if pending).
func (c *Checkpoint) FiredAt() uint64 { return c.firedAt }

// Fire evaluates the full assertion set and latches the checkpoint.
// It returns false without evaluating anything if the checkpoint already fired.
func (c *Checkpoint) Fire(tick uint64, p *Probe) (CheckpointOutcome, bool) {
	if c.fired {
		return CheckpointOutcome{}, false
	}
	c.fired = true
	c.firedAt = tick
	return CheckpointOutcome{
		Label:   c.Label,
		At:      c.At,
		FiredAt: tick,
		Results: EvaluateAll(c.Assertions, p),
	}, true
}
