package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"

	"github.com/roach88/cyclebench/internal/harness"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ValidColorModes defines the allowed --color values.
var ValidColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// Palette holds the escape codes used by the report renderer. The zero
// value renders plain text.
type Palette struct {
	Pass  string
	Fail  string
	Reset string
}

// NewPalette resolves a --color mode against the destination writer.
// In auto mode colour is used only when w is a terminal.
func NewPalette(mode string, w io.Writer) Palette {
	switch mode {
	case ColorAlways:
		return colorPalette()
	case ColorNever:
		return Palette{}
	}
	if f, ok := w.(*os.File); ok && isTerminal(f.Fd()) {
		return colorPalette()
	}
	return Palette{}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorPalette() Palette {
	return Palette{
		Pass:  ansi.ColorCode("green"),
		Fail:  ansi.ColorCode("red"),
		Reset: ansi.Reset,
	}
}

func (p Palette) paint(passed bool, s string) string {
	color := p.Fail
	if passed {
		color = p.Pass
	}
	if color == "" {
		return s
	}
	return color + s + p.Reset
}

// RenderReport writes the human-readable report: one block per fired
// checkpoint in firing order, then the run summary and verdict.
func RenderReport(w io.Writer, r *harness.Report, p Palette) {
	for _, cp := range r.Checkpoints {
		fmt.Fprintf(w, "\nChecking %q at tick %d (scheduled after %d)\n", cp.Label, cp.FiredAt, cp.At)
		for _, res := range cp.Results {
			fmt.Fprintln(w, p.paint(res.Passed, formatResult(res)))
		}
		if len(cp.Results) > 1 {
			if cp.Passed() {
				fmt.Fprintln(w, p.paint(true, "All checks passed"))
			} else {
				fmt.Fprintln(w, p.paint(false, "Some checks failed"))
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Test Summary ===")
	fmt.Fprintf(w, "Total checks: %d\n", r.Total())
	fmt.Fprintf(w, "Passed: %s\n", p.paint(true, fmt.Sprint(r.PassedCount)))
	fmt.Fprintf(w, "Failed: %s\n", p.paint(r.FailedCount == 0, fmt.Sprint(r.FailedCount)))
	for _, label := range r.Missed {
		fmt.Fprintf(w, "Not reached: %q\n", label)
	}
	fmt.Fprintf(w, "Verdict: %s\n", p.paint(r.FailedCount == 0, string(r.Verdict())))
}

// formatResult renders one assertion line. Register values are shown signed
// with their bit pattern; memory bytes as unsigned with hex.
func formatResult(res harness.AssertionResult) string {
	status := "PASS"
	if !res.Passed {
		status = "FAIL"
	}
	if res.Kind == harness.KindMemory {
		return fmt.Sprintf("[%s] %s: expected %d (0x%02x), got %d (0x%02x)",
			status, res.Name, res.Expected, res.Expected, res.Actual, res.Actual)
	}
	return fmt.Sprintf("[%s] %s: expected %d (0x%08x), got %d (0x%08x)",
		status, res.Name, int32(res.Expected), res.Expected, int32(res.Actual), res.Actual)
}
