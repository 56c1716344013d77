// Package image loads textual program images.
//
// An image file holds one hexadecimal word per line. Blank lines and lines
// whose first non-blank character is '#', '/' or ';' are comments. Anything
// after the first token on a line is ignored, so listings such as
//
//	00500093  addi x1, x0, 5
//
// load as expected. Lines whose first token is not a 32-bit hex value are
// reported as warnings and skipped; they do not consume an address.
package image

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/roach88/cyclebench/internal/dut"
)

// Program is an ordered sequence of words; index is the target word address.
type Program struct {
	// Source names where the program came from (file path or "<reader>").
	Source string

	// Words holds the loaded words in file order.
	Words []uint32

	// Warnings lists malformed lines that were skipped.
	Warnings []*LineError

	// Truncated is set when loading stopped at the capacity limit.
	Truncated bool
}

// ConfigurationError means the image source could not be opened.
// It is fatal: no simulation should run.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cannot open image file %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// LineError describes a malformed image line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: invalid hex word %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// LoadFile opens path and loads at most capacity words from it.
func LoadFile(path string, capacity int, logger *slog.Logger) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	defer f.Close()

	prog, err := load(f, path, capacity, logger)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return prog, nil
}

// Load reads at most capacity words from r.
func Load(r io.Reader, capacity int, logger *slog.Logger) (*Program, error) {
	return load(r, "<reader>", capacity, logger)
}

func load(r io.Reader, source string, capacity int, logger *slog.Logger) (*Program, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	prog := &Program{Source: source, Words: []uint32{}}
	br := bufio.NewReader(r)
	lineNo := 0

	// ReadString has no line length limit, so an oversized comment is
	// still just a comment.
	for eof := false; !eof; {
		raw, err := br.ReadString('\n')
		switch {
		case errors.Is(err, io.EOF):
			eof = true
			if raw == "" {
				continue
			}
		case err != nil:
			return nil, err
		}
		lineNo++
		raw = strings.TrimRight(raw, "\r\n")
		trimmed := strings.TrimSpace(raw)
		if isComment(trimmed) {
			continue
		}

		word, err := parseWord(trimmed)
		if err != nil {
			lineErr := &LineError{Line: lineNo, Text: raw, Err: err}
			prog.Warnings = append(prog.Warnings, lineErr)
			logger.Warn("invalid line in image", "source", source, "line", lineNo, "text", raw)
			continue
		}

		if len(prog.Words) >= capacity {
			prog.Truncated = true
			break
		}
		prog.Words = append(prog.Words, word)
	}

	logger.Info("image loaded", "source", source, "words", len(prog.Words), "warnings", len(prog.Warnings))
	return prog, nil
}

func isComment(line string) bool {
	if line == "" {
		return true
	}
	switch line[0] {
	case '#', '/', ';':
		return true
	}
	return false
}

func parseWord(line string) (uint32, error) {
	tok := strings.Fields(line)[0]
	if len(tok) > 2 && (tok[:2] == "0x" || tok[:2] == "0X") {
		tok = tok[2:]
	}
	v, err := strconv.ParseUint(tok, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Install writes the program into the store densely from address 0 and
// returns the number of words written. Words beyond the store depth are
// dropped.
func (p *Program) Install(store dut.InstructionStore) int {
	n := len(p.Words)
	if depth := store.InstructionDepth(); n > depth {
		n = depth
	}
	for addr := 0; addr < n; addr++ {
		store.WriteInstruction(addr, p.Words[addr])
	}
	return n
}
