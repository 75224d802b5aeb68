package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests for the unstable store/load illegal opcodes (LAS, TAS, SHX, SHY,
// AHX, XAA) that cpu_illegal_test.go predates.

func TestLAS(t *testing.T) {
	c := createTestCPU()
	c.PC = 0x0200
	c.Y = 0x10
	c.SP = 0xFF
	c.Memory.Write(0x0200, 0xBB) // LAS abs,Y
	c.Memory.Write(0x0201, 0x00)
	c.Memory.Write(0x0202, 0x04)
	c.Memory.Write(0x0410, 0xCC)

	cycles := c.Step()

	want := uint8(0xCC & 0xFF)
	assert.Equal(t, want, c.A)
	assert.Equal(t, want, c.X)
	assert.Equal(t, want, c.SP)
	assert.Equal(t, 4, cycles)
}

func TestTAS(t *testing.T) {
	c := createTestCPU()
	c.PC = 0x0200
	c.A = 0xF0
	c.X = 0x0F
	c.Y = 0x01
	c.Memory.Write(0x0200, 0x9B) // TAS abs,Y
	c.Memory.Write(0x0201, 0xFF)
	c.Memory.Write(0x0202, 0x02)

	c.Step()

	assert.Equal(t, uint8(0xF0&0x0F), c.SP)
	stored := c.Memory.Read(0x0300)
	assert.Equal(t, c.SP&highAddrPlusOne(0x0300), stored)
}

func TestSHXSHY(t *testing.T) {
	c := createTestCPU()
	c.PC = 0x0200
	c.X = 0xFF
	c.Memory.Write(0x0200, 0x9E) // SHX abs,Y
	c.Memory.Write(0x0201, 0x00)
	c.Memory.Write(0x0202, 0x03)
	c.Y = 0x01

	c.Step()

	stored := c.Memory.Read(0x0301)
	assert.Equal(t, uint8(0x04), stored) // 0xFF & (0x03+1)
	assert.Equal(t, c.X&highAddrPlusOne(0x0301), stored)

	c = createTestCPU()
	c.PC = 0x0200
	c.Y = 0xFF
	c.X = 0x01
	c.Memory.Write(0x0200, 0x9C) // SHY abs,X
	c.Memory.Write(0x0201, 0x00)
	c.Memory.Write(0x0202, 0x03)

	c.Step()

	stored = c.Memory.Read(0x0301)
	assert.Equal(t, c.Y&highAddrPlusOne(0x0301), stored)
}

func TestAHX(t *testing.T) {
	c := createTestCPU()
	c.PC = 0x0200
	c.A = 0xFF
	c.X = 0x0F
	c.Y = 0x01
	c.Memory.Write(0x0200, 0x9F) // AHX abs,Y
	c.Memory.Write(0x0201, 0x00)
	c.Memory.Write(0x0202, 0x03)

	c.Step()

	stored := c.Memory.Read(0x0301)
	assert.Equal(t, c.A&c.X&highAddrPlusOne(0x0301), stored)
}

func TestXAA(t *testing.T) {
	c := createTestCPU()
	c.PC = 0x0200
	c.X = 0x3C
	c.Memory.Write(0x0200, 0x8B) // XAA #imm
	c.Memory.Write(0x0201, 0xF0)

	cycles := c.Step()

	assert.Equal(t, uint8(0x3C&0xF0), c.A)
	assert.Equal(t, 2, cycles)
}

func TestHighAddrPlusOneOverflow(t *testing.T) {
	assert.Equal(t, uint8(0x00), highAddrPlusOne(0xFF00))
}
