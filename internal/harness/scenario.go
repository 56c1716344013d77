package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Scenario defaults.
const (
	DefaultMaxTicks    uint64 = 5000
	DefaultResetCycles        = 10
)

// Scenario is a data-driven checkpoint table plus run settings.
//
// Scenarios are authored in YAML or CUE:
//
//	name: addi
//	description: "ADDI results reach the register file"
//	max_ticks: 5000
//	checkpoints:
//	  - label: "First ADDI test"
//	    at: 50
//	    checks:
//	      - {type: register, reg: 1, expect: 5, name: x1}
//	      - {type: memory, base: 11, offset: 0, expect: 15}
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// MaxTicks is the tick ceiling. Zero means DefaultMaxTicks.
	MaxTicks uint64 `yaml:"max_ticks,omitempty" json:"max_ticks,omitempty"`

	// ResetCycles is the number of full clock periods reset is held.
	// Nil means DefaultResetCycles; zero skips the warm-up.
	ResetCycles *int `yaml:"reset_cycles,omitempty" json:"reset_cycles,omitempty"`

	// StopWhenDone ends the run once every checkpoint has fired.
	// Nil means true.
	StopWhenDone *bool `yaml:"stop_when_done,omitempty" json:"stop_when_done,omitempty"`

	// Checkpoints in storage order. Ascending At is the convention.
	Checkpoints []CheckpointSpec `yaml:"checkpoints" json:"checkpoints"`
}

// CheckpointSpec is one row of the checkpoint table.
type CheckpointSpec struct {
	Label  string      `yaml:"label" json:"label"`
	At     uint64      `yaml:"at" json:"at"`
	Checks []CheckSpec `yaml:"checks" json:"checks"`
}

// CheckSpec describes one assertion.
type CheckSpec struct {
	// Type is "register" or "memory".
	Type string `yaml:"type" json:"type"`

	// Reg is the register index (register checks).
	Reg *int `yaml:"reg,omitempty" json:"reg,omitempty"`

	// Base is the base register index (memory checks).
	Base *int `yaml:"base,omitempty" json:"base,omitempty"`

	// Offset is added to the base register value (memory checks).
	Offset int32 `yaml:"offset,omitempty" json:"offset,omitempty"`

	// Expect is the expected value. Negative values are converted to their
	// two's-complement pattern at the check's width.
	Expect *int64 `yaml:"expect" json:"expect"`

	// Name labels the result. Defaults to x<reg> or mem[x<base>+<offset>].
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Settings are the resolved run parameters of a scenario.
type Settings struct {
	MaxTicks     uint64
	ResetCycles  int
	StopWhenDone bool
}

// Settings resolves defaults.
func (s *Scenario) Settings() Settings {
	out := Settings{
		MaxTicks:     DefaultMaxTicks,
		ResetCycles:  DefaultResetCycles,
		StopWhenDone: true,
	}
	if s.MaxTicks != 0 {
		out.MaxTicks = s.MaxTicks
	}
	if s.ResetCycles != nil {
		out.ResetCycles = *s.ResetCycles
	}
	if s.StopWhenDone != nil {
		out.StopWhenDone = *s.StopWhenDone
	}
	return out
}

// Build returns fresh pending checkpoints for one run. The scenario must
// have passed Validate.
func (s *Scenario) Build() []*Checkpoint {
	cps := make([]*Checkpoint, 0, len(s.Checkpoints))
	for _, spec := range s.Checkpoints {
		assertions := make([]Assertion, 0, len(spec.Checks))
		for _, c := range spec.Checks {
			switch c.Type {
			case KindRegister:
				assertions = append(assertions, RegisterCheck{
					Register: *c.Reg,
					Expected: uint32(*c.Expect),
					Name:     c.Name,
				})
			case KindMemory:
				assertions = append(assertions, MemoryCheck{
					BaseRegister: *c.Base,
					Offset:       c.Offset,
					Expected:     uint8(*c.Expect),
					Name:         c.Name,
				})
			}
		}
		cps = append(cps, NewCheckpoint(spec.Label, spec.At, assertions...))
	}
	return cps
}

// LoadScenario reads and parses a scenario file. The format is chosen by
// extension: .yaml/.yml or .cue.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported scenario format %q (want .yaml, .yml or .cue)", ext)
	}
}

// ParseYAML parses a YAML scenario. Unknown fields are rejected.
func ParseYAML(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return finish(&scenario)
}

// ParseCUE parses a CUE scenario and unifies it with the #Scenario schema.
// The schema is closed, so unknown fields are rejected.
func ParseCUE(data []byte, filename string) (*Scenario, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile scenario schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse CUE: %s", cueerrors.Details(err, nil))
	}

	unified := schema.LookupPath(cue.ParsePath("#Scenario")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("scenario does not match schema: %s", cueerrors.Details(err, nil))
	}

	var scenario Scenario
	if err := unified.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return finish(&scenario)
}

func finish(s *Scenario) (*Scenario, error) {
	normalize(s)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return s, nil
}

// normalize puts every human-readable string in NFC so reports and stored
// history compare byte for byte.
func normalize(s *Scenario) {
	s.Name = norm.NFC.String(s.Name)
	s.Description = norm.NFC.String(s.Description)
	for i := range s.Checkpoints {
		cp := &s.Checkpoints[i]
		cp.Label = norm.NFC.String(cp.Label)
		for j := range cp.Checks {
			cp.Checks[j].Name = norm.NFC.String(cp.Checks[j].Name)
		}
	}
}

// Validate checks required fields and value ranges.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if len(s.Checkpoints) == 0 {
		return fmt.Errorf("checkpoints list is required and must be non-empty")
	}

	if s.ResetCycles != nil && *s.ResetCycles < 0 {
		return fmt.Errorf("reset_cycles must be non-negative")
	}

	set := s.Settings()
	maxTicks := set.MaxTicks
	if resetTicks := 2 * uint64(set.ResetCycles); resetTicks >= maxTicks {
		return fmt.Errorf("max_ticks %d leaves no time after %d reset ticks", maxTicks, resetTicks)
	}
	for i, cp := range s.Checkpoints {
		if cp.Label == "" {
			return fmt.Errorf("checkpoints[%d]: label is required", i)
		}
		if cp.At >= maxTicks {
			return fmt.Errorf("checkpoints[%d]: at %d is not below max_ticks %d", i, cp.At, maxTicks)
		}
		if len(cp.Checks) == 0 {
			return fmt.Errorf("checkpoints[%d]: checks list is required and must be non-empty", i)
		}
		for j := range cp.Checks {
			if err := validateCheck(&cp.Checks[j]); err != nil {
				return fmt.Errorf("checkpoints[%d].checks[%d]: %w", i, j, err)
			}
		}
	}

	return nil
}

// validateCheck validates a single check based on its type.
func validateCheck(c *CheckSpec) error {
	if c.Type == "" {
		return fmt.Errorf("type is required")
	}
	if c.Expect == nil {
		return fmt.Errorf("expect is required")
	}

	switch c.Type {
	case KindRegister:
		if c.Reg == nil {
			return fmt.Errorf("reg is required for register checks")
		}
		if *c.Reg < 0 || *c.Reg > 31 {
			return fmt.Errorf("reg %d out of range 0..31", *c.Reg)
		}
		if *c.Expect < math.MinInt32 || *c.Expect > math.MaxUint32 {
			return fmt.Errorf("expect %d does not fit in 32 bits", *c.Expect)
		}
	case KindMemory:
		if c.Base == nil {
			return fmt.Errorf("base is required for memory checks")
		}
		if *c.Base < 0 || *c.Base > 31 {
			return fmt.Errorf("base %d out of range 0..31", *c.Base)
		}
		if *c.Expect < math.MinInt8 || *c.Expect > math.MaxUint8 {
			return fmt.Errorf("expect %d does not fit in 8 bits", *c.Expect)
		}
	default:
		return fmt.Errorf("unknown check type %q", c.Type)
	}

	return nil
}

func intp(v int) *int       { return &v }
func int64p(v int64) *int64 { return &v }

// DefaultScenario is the ADDI checkpoint table run when no scenario file is
// given.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "addi",
		Description: "ADDI and ADD results reach the register file",
		Checkpoints: []CheckpointSpec{
			{
				Label: "First ADDI test",
				At:    50,
				Checks: []CheckSpec{
					{Type: KindRegister, Reg: intp(1), Expect: int64p(5), Name: "x1"},
					{Type: KindRegister, Reg: intp(2), Expect: int64p(10), Name: "x2"},
					{Type: KindRegister, Reg: intp(3), Expect: int64p(-1), Name: "x3"},
				},
			},
			{
				Label: "Second ADDI test",
				At:    60,
				Checks: []CheckSpec{
					{Type: KindRegister, Reg: intp(3), Expect: int64p(10), Name: "x3_after_second_addi"},
				},
			},
			{
				Label: "Test 3",
				At:    100,
				Checks: []CheckSpec{
					{Type: KindRegister, Reg: intp(3), Expect: int64p(15), Name: "x3 = x2 + x1"},
				},
			},
		},
	}
}
