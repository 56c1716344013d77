package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/roach88/cyclebench/internal/dut"
)

// VCDWriter writes frames as a Value Change Dump.
//
// The first frame is written in full under $dumpvars; later frames list only
// the signals that changed. Output is buffered and flushed on Close.
type VCDWriter struct {
	w      *bufio.Writer
	closer io.Closer

	started bool
	last    Frame
	err     error
}

const (
	idClock = "!"
	idReset = "\""
)

// regID returns the identifier code for register i. Codes are single
// printable characters following the clock and reset codes.
func regID(i int) string { return string(rune('#' + i)) }

// NewVCDWriter writes to w. If w is an io.Closer it is closed by Close.
func NewVCDWriter(w io.Writer) *VCDWriter {
	v := &VCDWriter{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		v.closer = c
	}
	return v
}

// CreateVCD creates (or truncates) path and returns a writer for it.
func CreateVCD(path string) (*VCDWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}
	return NewVCDWriter(f), nil
}

func (v *VCDWriter) printf(format string, args ...any) {
	if v.err != nil {
		return
	}
	_, v.err = fmt.Fprintf(v.w, format, args...)
}

func (v *VCDWriter) header() {
	v.printf("$version cyclebench $end\n")
	v.printf("$timescale 1ns $end\n")
	v.printf("$scope module tb $end\n")
	v.printf("$var wire 1 %s clk $end\n", idClock)
	v.printf("$var wire 1 %s rst $end\n", idReset)
	for i := 0; i < dut.RegisterCount; i++ {
		v.printf("$var reg 32 %s x%d $end\n", regID(i), i)
	}
	v.printf("$upscope $end\n")
	v.printf("$enddefinitions $end\n")
}

func bit(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

func (v *VCDWriter) vector(value uint32, id string) {
	v.printf("b%s %s\n", strconv.FormatUint(uint64(value), 2), id)
}

// Dump writes one frame.
func (v *VCDWriter) Dump(f Frame) error {
	if !v.started {
		v.header()
		v.printf("#%d\n$dumpvars\n", f.Tick)
		v.printf("%c%s\n%c%s\n", bit(f.Clock), idClock, bit(f.Reset), idReset)
		for i, r := range f.Registers {
			v.vector(r, regID(i))
		}
		v.printf("$end\n")
		v.started = true
		v.last = f
		return v.err
	}

	v.printf("#%d\n", f.Tick)
	if f.Clock != v.last.Clock {
		v.printf("%c%s\n", bit(f.Clock), idClock)
	}
	if f.Reset != v.last.Reset {
		v.printf("%c%s\n", bit(f.Reset), idReset)
	}
	for i, r := range f.Registers {
		if r != v.last.Registers[i] {
			v.vector(r, regID(i))
		}
	}
	v.last = f
	return v.err
}

// Close flushes buffered output and closes the underlying file, if any.
func (v *VCDWriter) Close() error {
	err := v.err
	if ferr := v.w.Flush(); err == nil {
		err = ferr
	}
	if v.closer != nil {
		if cerr := v.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
