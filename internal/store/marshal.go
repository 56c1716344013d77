package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalMissed converts the missed-label list to JSON TEXT for storage.
// A nil list is stored as "[]".
func marshalMissed(labels []string) (string, error) {
	if labels == nil {
		labels = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // labels are free text; keep them readable in the DB
	if err := enc.Encode(labels); err != nil {
		return "", fmt.Errorf("marshal missed: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalMissed parses JSON TEXT back to a label list.
// Returns nil for an empty list so it matches a fresh Report.
func unmarshalMissed(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var labels []string
	if err := json.Unmarshal([]byte(data), &labels); err != nil {
		return nil, fmt.Errorf("unmarshal missed: %w", err)
	}
	return labels, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
