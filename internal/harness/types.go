package harness

// Verdict is the externally observable outcome of a run.
type Verdict string

const (
	VerdictSuccess Verdict = "SUCCESS"
	VerdictFailure Verdict = "FAILURE"
)

// AssertionResult is the outcome of one comparison. Memory results carry
// byte values widened to uint32.
type AssertionResult struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Expected uint32 `json:"expected"`
	Actual   uint32 `json:"actual"`
	Passed   bool   `json:"passed"`
}

// CheckpointOutcome groups the results produced when one checkpoint fired.
type CheckpointOutcome struct {
	Label   string            `json:"label"`
	At      uint64            `json:"at"`
	FiredAt uint64            `json:"fired_at"`
	Results []AssertionResult `json:"results"`
}

// Passed reports whether every result in the outcome passed.
func (o CheckpointOutcome) Passed() bool {
	for _, r := range o.Results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Report aggregates results across a run in firing order.
//
// Only Add mutates the counters, so PassedCount+FailedCount always equals
// the number of results held.
type Report struct {
	Scenario    string              `json:"scenario"`
	Checkpoints []CheckpointOutcome `json:"checkpoints"`

	// Missed lists checkpoints that never fired before the run ended.
	Missed []string `json:"missed,omitempty"`

	// Ticks is the logical time at which the run stopped.
	Ticks uint64 `json:"ticks"`

	PassedCount int `json:"passed"`
	FailedCount int `json:"failed"`
}

// NewReport creates an empty report for the named scenario.
func NewReport(scenario string) *Report {
	return &Report{
		Scenario:    scenario,
		Checkpoints: []CheckpointOutcome{},
	}
}

// Add appends a fired checkpoint's outcome and updates the counters.
func (r *Report) Add(outcome CheckpointOutcome) {
	for _, res := range outcome.Results {
		if res.Passed {
			r.PassedCount++
		} else {
			r.FailedCount++
		}
	}
	r.Checkpoints = append(r.Checkpoints, outcome)
}

// Results returns every assertion result in firing order.
func (r *Report) Results() []AssertionResult {
	var all []AssertionResult
	for _, cp := range r.Checkpoints {
		all = append(all, cp.Results...)
	}
	return all
}

// Total is the number of results.
func (r *Report) Total() int { return r.PassedCount + r.FailedCount }

// Verdict is SUCCESS iff no result failed.
func (r *Report) Verdict() Verdict {
	if r.FailedCount == 0 {
		return VerdictSuccess
	}
	return VerdictFailure
}

// ExitCode maps the verdict to a process exit status.
func (r *Report) ExitCode() int {
	if r.FailedCount == 0 {
		return 0
	}
	return 1
}
