package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTraceFormat checks the nestest line format against the same fixture
// values the reference trace formatter is tested with: LDX #$01, DEX, DEY
// run from $0064.
func TestTraceFormat(t *testing.T) {
	c := createTestCPU()
	c.Memory.Write(100, 0xA2)
	c.Memory.Write(101, 0x01)
	c.Memory.Write(102, 0xCA)
	c.Memory.Write(103, 0x88)
	c.Memory.Write(104, 0x00)

	c.PC = 0x64
	c.A = 1
	c.X = 2
	c.Y = 3

	var lines []string
	c.RunWithCallback(func(cpu *CPU) {
		if len(lines) >= 3 {
			cpu.Halted = true
			return
		}
		lines = append(lines, Trace(cpu))
	})

	assert.Equal(t, "0064  A2 01     LDX #$01                        A:01 X:02 Y:03 P:24 SP:FD", lines[0])
	assert.Equal(t, "0066  CA        DEX                             A:01 X:01 Y:03 P:24 SP:FD", lines[1])
	assert.Equal(t, "0067  88        DEY                             A:01 X:00 Y:03 P:26 SP:FD", lines[2])
}

// TestTraceMemoryAccess checks the "(zp),Y" operand formatting, which
// prints both the zero-page pointer's base address and the indexed
// effective address.
func TestTraceMemoryAccess(t *testing.T) {
	c := createTestCPU()
	c.Memory.Write(100, 0x11) // ORA ($33),Y
	c.Memory.Write(101, 0x33)
	c.Memory.Write(0x33, 0x00)
	c.Memory.Write(0x34, 0x04)
	c.Memory.Write(0x400, 0xAA)

	c.PC = 0x64
	c.Y = 0

	line := Trace(c)
	assert.Equal(t, "0064  11 33     ORA ($33),Y = 0400 @ 0400 = AA  A:00 X:00 Y:00 P:24 SP:FD", line)
}
