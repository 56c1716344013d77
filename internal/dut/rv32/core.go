// Package rv32 is a small single-issue RV32I model that satisfies the
// dut.Device contract.
//
// One instruction retires per rising clock edge. While reset is asserted a
// rising edge clears the program counter and the register file; the data
// store keeps its contents. Encodings the model does not implement retire as
// no-ops so an unloaded (all-zero) instruction store simply idles.
package rv32

import "github.com/roach88/cyclebench/internal/dut"

const (
	// DefaultInstructionDepth is the instruction store capacity in words.
	DefaultInstructionDepth = 1024

	// DefaultDataDepth is the data store capacity in bytes.
	DefaultDataDepth = 1024
)

// Core is the model state. The zero value is not usable; call New.
type Core struct {
	regs [dut.RegisterCount]uint32
	pc   uint32

	imem []uint32
	dmem []byte

	clk     bool
	rst     bool
	lastClk bool

	retired uint64
}

var _ dut.Device = (*Core)(nil)

// New creates a core with the default store depths.
func New() *Core {
	return NewWithDepth(DefaultInstructionDepth, DefaultDataDepth)
}

// NewWithDepth creates a core with explicit store depths.
func NewWithDepth(instructionWords, dataBytes int) *Core {
	return &Core{
		imem: make([]uint32, instructionWords),
		dmem: make([]byte, dataBytes),
	}
}

// SetClock drives the clock input.
func (c *Core) SetClock(high bool) { c.clk = high }

// SetReset drives the reset input.
func (c *Core) SetReset(asserted bool) { c.rst = asserted }

// Eval applies a rising edge if the clock went low to high since the last
// evaluation. The model never reports corruption.
func (c *Core) Eval() error {
	rising := c.clk && !c.lastClk
	c.lastClk = c.clk
	if !rising {
		return nil
	}
	if c.rst {
		c.regs = [dut.RegisterCount]uint32{}
		c.pc = 0
		return nil
	}
	c.step()
	return nil
}

// Register returns xN. Index must be 0..31.
func (c *Core) Register(index int) uint32 { return c.regs[index] }

// DataByte returns the data store byte at addr. Addresses wrap at the store depth.
func (c *Core) DataByte(addr uint32) uint8 {
	return c.dmem[addr%uint32(len(c.dmem))]
}

// InstructionDepth returns the instruction store capacity in words.
func (c *Core) InstructionDepth() int { return len(c.imem) }

// WriteInstruction stores a word at the given word index.
func (c *Core) WriteInstruction(addr int, word uint32) { c.imem[addr] = word }

// PC returns the address of the next instruction to retire.
func (c *Core) PC() uint32 { return c.pc }

// Retired returns the number of instructions retired since creation.
func (c *Core) Retired() uint64 { return c.retired }

func (c *Core) write(rd uint32, v uint32) {
	if rd != 0 {
		c.regs[rd] = v
	}
}

func (c *Core) load(addr uint32, n int) uint32 {
	var v uint32
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint32(c.DataByte(addr+uint32(i)))
	}
	return v
}

func (c *Core) store(addr uint32, v uint32, n int) {
	for i := 0; i < n; i++ {
		c.dmem[(addr+uint32(i))%uint32(len(c.dmem))] = byte(v >> (8 * i))
	}
}

func (c *Core) step() {
	inst := c.imem[(c.pc>>2)%uint32(len(c.imem))]
	next := c.pc + 4

	rd := (inst >> 7) & 0x1f
	funct3 := (inst >> 12) & 0x7
	funct7 := inst >> 25
	rs1 := c.regs[(inst>>15)&0x1f]
	rs2 := c.regs[(inst>>20)&0x1f]

	switch inst & 0x7f {
	case 0x37: // LUI
		c.write(rd, inst&0xfffff000)
	case 0x17: // AUIPC
		c.write(rd, c.pc+inst&0xfffff000)
	case 0x6f: // JAL
		c.write(rd, next)
		next = c.pc + immJ(inst)
	case 0x67: // JALR
		target := (rs1 + immI(inst)) &^ 1
		c.write(rd, next)
		next = target
	case 0x63:
		if taken(funct3, rs1, rs2) {
			next = c.pc + immB(inst)
		}
	case 0x03:
		addr := rs1 + immI(inst)
		switch funct3 {
		case 0: // LB
			c.write(rd, uint32(int32(int8(c.load(addr, 1)))))
		case 1: // LH
			c.write(rd, uint32(int32(int16(c.load(addr, 2)))))
		case 2: // LW
			c.write(rd, c.load(addr, 4))
		case 4: // LBU
			c.write(rd, c.load(addr, 1))
		case 5: // LHU
			c.write(rd, c.load(addr, 2))
		}
	case 0x23:
		addr := rs1 + immS(inst)
		switch funct3 {
		case 0:
			c.store(addr, rs2, 1)
		case 1:
			c.store(addr, rs2, 2)
		case 2:
			c.store(addr, rs2, 4)
		}
	case 0x13:
		imm := immI(inst)
		if funct3 == 1 || funct3 == 5 {
			// shifts take shamt from rs2 position and funct7 selects SRAI
			imm &= 0x1f
		} else {
			funct7 = 0
		}
		if v, ok := alu(funct3, funct7, rs1, imm); ok {
			c.write(rd, v)
		}
	case 0x33:
		if v, ok := alu(funct3, funct7, rs1, rs2); ok {
			c.write(rd, v)
		}
	}

	c.pc = next
	c.retired++
}

func alu(funct3, funct7, a, b uint32) (uint32, bool) {
	if funct7 != 0 && funct7 != 0x20 {
		return 0, false
	}
	sub := funct7 == 0x20
	switch funct3 {
	case 0:
		if sub {
			return a - b, true
		}
		return a + b, true
	case 1:
		return a << (b & 0x1f), true
	case 2:
		if int32(a) < int32(b) {
			return 1, true
		}
		return 0, true
	case 3:
		if a < b {
			return 1, true
		}
		return 0, true
	case 4:
		return a ^ b, true
	case 5:
		if sub {
			return uint32(int32(a) >> (b & 0x1f)), true
		}
		return a >> (b & 0x1f), true
	case 6:
		return a | b, true
	default:
		return a & b, true
	}
}

func taken(funct3, a, b uint32) bool {
	switch funct3 {
	case 0:
		return a == b
	case 1:
		return a != b
	case 4:
		return int32(a) < int32(b)
	case 5:
		return int32(a) >= int32(b)
	case 6:
		return a < b
	case 7:
		return a >= b
	}
	return false
}

func immI(inst uint32) uint32 { return uint32(int32(inst) >> 20) }

func immS(inst uint32) uint32 {
	return uint32(int32(inst&0xfe000000)>>20) | (inst>>7)&0x1f
}

func immB(inst uint32) uint32 {
	return uint32(int32(inst&0x80000000)>>19) |
		(inst&0x80)<<4 |
		(inst>>20)&0x7e0 |
		(inst>>7)&0x1e
}

func immJ(inst uint32) uint32 {
	return uint32(int32(inst&0x80000000)>>11) |
		inst&0xff000 |
		(inst>>9)&0x800 |
		(inst>>20)&0x7fe
}
