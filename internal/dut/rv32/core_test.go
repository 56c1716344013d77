package rv32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cycle drives one full low/high clock period.
func cycle(t *testing.T, c *Core) {
	t.Helper()
	c.SetClock(false)
	require.NoError(t, c.Eval())
	c.SetClock(true)
	require.NoError(t, c.Eval())
}

func load(c *Core, words ...uint32) {
	for i, w := range words {
		c.WriteInstruction(i, w)
	}
}

func TestEncoders_KnownWords(t *testing.T) {
	assert.Equal(t, uint32(0x00500093), ADDI(1, 0, 5))
	assert.Equal(t, uint32(0x00A00113), ADDI(2, 0, 10))
	assert.Equal(t, uint32(0xFFF00193), ADDI(3, 0, -1))
	assert.Equal(t, uint32(0x001101B3), ADD(3, 2, 1))
	assert.Equal(t, NOP, ADDI(0, 0, 0))
}

func TestCore_AddiAndAdd(t *testing.T) {
	c := New()
	load(c, ADDI(1, 0, 5), ADDI(2, 0, 10), ADD(3, 2, 1), SUB(4, 1, 2))

	for i := 0; i < 4; i++ {
		cycle(t, c)
	}

	assert.Equal(t, uint32(5), c.Register(1))
	assert.Equal(t, uint32(10), c.Register(2))
	assert.Equal(t, uint32(15), c.Register(3))
	assert.Equal(t, uint32(0xFFFFFFFB), c.Register(4))
	assert.Equal(t, uint64(4), c.Retired())
	assert.Equal(t, uint32(16), c.PC())
}

func TestCore_X0HardWired(t *testing.T) {
	c := New()
	load(c, ADDI(0, 0, 7))
	cycle(t, c)
	assert.Equal(t, uint32(0), c.Register(0))
}

func TestCore_OneRetirePerRisingEdge(t *testing.T) {
	c := New()
	load(c, ADDI(1, 1, 1), ADDI(1, 1, 1))

	c.SetClock(true)
	require.NoError(t, c.Eval())
	require.NoError(t, c.Eval())
	require.NoError(t, c.Eval())

	assert.Equal(t, uint64(1), c.Retired())
	assert.Equal(t, uint32(1), c.Register(1))
}

func TestCore_StoreAndLoadBytes(t *testing.T) {
	c := New()
	load(c,
		ADDI(11, 0, 100),
		ADDI(5, 0, -2),
		SB(5, 11, 0),
		ADDI(6, 0, 0x15),
		SB(6, 11, 1),
		LB(7, 11, 0),
		LBU(8, 11, 0),
		LW(9, 11, 0),
	)
	for i := 0; i < 8; i++ {
		cycle(t, c)
	}

	assert.Equal(t, uint8(0xFE), c.DataByte(100))
	assert.Equal(t, uint8(0x15), c.DataByte(101))
	assert.Equal(t, uint32(0xFFFFFFFE), c.Register(7))
	assert.Equal(t, uint32(0xFE), c.Register(8))
	assert.Equal(t, uint32(0x000015FE), c.Register(9))
}

func TestCore_StoreWordLittleEndian(t *testing.T) {
	c := New()
	load(c, LUI(1, 0x12345), ADDI(1, 1, 0x678), ADDI(2, 0, 8), SW(1, 2, 4))
	for i := 0; i < 4; i++ {
		cycle(t, c)
	}

	assert.Equal(t, uint32(0x12345678), c.Register(1))
	assert.Equal(t, uint8(0x78), c.DataByte(12))
	assert.Equal(t, uint8(0x56), c.DataByte(13))
	assert.Equal(t, uint8(0x34), c.DataByte(14))
	assert.Equal(t, uint8(0x12), c.DataByte(15))
}

func TestCore_BranchLoop(t *testing.T) {
	c := New()
	load(c,
		ADDI(1, 0, 3),
		ADDI(1, 1, -1),
		BNE(1, 0, -4),
		ADDI(2, 0, 42),
	)
	// 1 + 3*(addi+bne) + final addi
	for i := 0; i < 8; i++ {
		cycle(t, c)
	}

	assert.Equal(t, uint32(0), c.Register(1))
	assert.Equal(t, uint32(42), c.Register(2))
}

func TestCore_JalLinks(t *testing.T) {
	c := New()
	load(c, JAL(1, 8), ADDI(2, 0, 1), ADDI(3, 0, 1))
	cycle(t, c)
	cycle(t, c)

	assert.Equal(t, uint32(4), c.Register(1))
	assert.Equal(t, uint32(0), c.Register(2))
	assert.Equal(t, uint32(1), c.Register(3))
}

func TestCore_ResetClearsRegistersKeepsData(t *testing.T) {
	c := New()
	load(c, ADDI(1, 0, 9), ADDI(2, 0, 50), SB(1, 2, 0))
	for i := 0; i < 3; i++ {
		cycle(t, c)
	}
	require.Equal(t, uint8(9), c.DataByte(50))

	c.SetReset(true)
	cycle(t, c)

	assert.Equal(t, uint32(0), c.Register(1))
	assert.Equal(t, uint32(0), c.PC())
	assert.Equal(t, uint8(9), c.DataByte(50))
}

func TestCore_UnloadedStoreIdles(t *testing.T) {
	c := New()
	for i := 0; i < 10; i++ {
		cycle(t, c)
	}
	for i := 0; i < 32; i++ {
		assert.Equal(t, uint32(0), c.Register(i))
	}
	assert.Equal(t, uint32(40), c.PC())
}

func TestCore_DataAddressWraps(t *testing.T) {
	c := NewWithDepth(16, 64)
	load(c, ADDI(1, 0, 7), SB(1, 0, 65))
	cycle(t, c)
	cycle(t, c)
	assert.Equal(t, uint8(7), c.DataByte(1))
	assert.Equal(t, uint8(7), c.DataByte(65))
}
