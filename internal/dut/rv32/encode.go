package rv32

// Instruction encoders for building small programs in tests and examples.
// Register arguments are register numbers; immediates are unchecked.

// NOP encodes addi x0, x0, 0.
const NOP uint32 = 0x00000013

func encodeI(opcode, funct3, rd, rs1 uint32, imm int32) uint32 {
	return uint32(imm)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encodeR(funct7, funct3, rd, rs1, rs2 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | 0x33
}

func encodeS(funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return (u>>5)<<25 | rs2<<20 | rs1<<15 | funct3<<12 | (u&0x1f)<<7 | 0x23
}

func encodeB(funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return (u>>12&1)<<31 | (u>>5&0x3f)<<25 | rs2<<20 | rs1<<15 | funct3<<12 |
		(u>>1&0xf)<<8 | (u>>11&1)<<7 | 0x63
}

// ADDI encodes addi rd, rs1, imm.
func ADDI(rd, rs1 uint32, imm int32) uint32 { return encodeI(0x13, 0, rd, rs1, imm) }

// ADD encodes add rd, rs1, rs2.
func ADD(rd, rs1, rs2 uint32) uint32 { return encodeR(0, 0, rd, rs1, rs2) }

// SUB encodes sub rd, rs1, rs2.
func SUB(rd, rs1, rs2 uint32) uint32 { return encodeR(0x20, 0, rd, rs1, rs2) }

// LUI encodes lui rd, imm20.
func LUI(rd uint32, imm20 uint32) uint32 { return imm20<<12 | rd<<7 | 0x37 }

// LW encodes lw rd, imm(rs1).
func LW(rd, rs1 uint32, imm int32) uint32 { return encodeI(0x03, 2, rd, rs1, imm) }

// LB encodes lb rd, imm(rs1).
func LB(rd, rs1 uint32, imm int32) uint32 { return encodeI(0x03, 0, rd, rs1, imm) }

// LBU encodes lbu rd, imm(rs1).
func LBU(rd, rs1 uint32, imm int32) uint32 { return encodeI(0x03, 4, rd, rs1, imm) }

// SW encodes sw rs2, imm(rs1).
func SW(rs2, rs1 uint32, imm int32) uint32 { return encodeS(2, rs1, rs2, imm) }

// SB encodes sb rs2, imm(rs1).
func SB(rs2, rs1 uint32, imm int32) uint32 { return encodeS(0, rs1, rs2, imm) }

// BNE encodes bne rs1, rs2, offset.
func BNE(rs1, rs2 uint32, offset int32) uint32 { return encodeB(1, rs1, rs2, offset) }

// BEQ encodes beq rs1, rs2, offset.
func BEQ(rs1, rs2 uint32, offset int32) uint32 { return encodeB(0, rs1, rs2, offset) }

// JAL encodes jal rd, offset.
func JAL(rd uint32, offset int32) uint32 {
	u := uint32(offset)
	return (u>>20&1)<<31 | (u>>1&0x3ff)<<21 | (u>>11&1)<<20 | (u>>12&0xff)<<12 | rd<<7 | 0x6f
}
