package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// MarshalReport renders a report as indented JSON with a trailing newline.
// Field order follows the struct definitions, so output is deterministic.
func MarshalReport(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// AssertGolden compares a report against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./... -update
func AssertGolden(t *testing.T, name string, r *Report) {
	t.Helper()

	data, err := MarshalReport(r)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
