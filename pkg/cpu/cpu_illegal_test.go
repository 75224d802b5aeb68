package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIllegalInstructions(t *testing.T) {
	t.Run("LAX_LoadAAndX", func(t *testing.T) {
		cpu := createTestCPU()
		cpu.PC = 0x0200
		cpu.Memory.Write(0x0200, 0xAF) // LAX abs
		cpu.Memory.Write(0x0201, 0x00)
		cpu.Memory.Write(0x0202, 0x18)
		cpu.Memory.Write(0x1800, 0x42)

		cycles := cpu.Step()

		assert.Equal(t, uint8(0x42), cpu.A)
		assert.Equal(t, uint8(0x42), cpu.X)
		assert.Equal(t, 4, cycles)

		cpu = createTestCPU()
		cpu.PC = 0x0200
		cpu.Y = 0x02
		cpu.Memory.Write(0x0200, 0xB7) // LAX zp,Y
		cpu.Memory.Write(0x0201, 0x10)
		cpu.Memory.Write(0x12, 0x80)

		cycles = cpu.Step()

		assert.Equal(t, uint8(0x80), cpu.A)
		assert.Equal(t, uint8(0x80), cpu.X)
		assert.True(t, cpu.getFlag(FlagNegative))
		assert.Equal(t, 4, cycles)

		cpu = createTestCPU()
		cpu.PC = 0x0200
		cpu.X = 0x03
		cpu.Memory.Write(0x0200, 0xA3) // LAX (zp,X)
		cpu.Memory.Write(0x0201, 0x20)
		cpu.Memory.Write(0x23, 0x00)
		cpu.Memory.Write(0x24, 0x19)
		cpu.Memory.Write(0x1900, 0x00)

		cycles = cpu.Step()

		assert.Zero(t, cpu.A)
		assert.Zero(t, cpu.X)
		assert.True(t, cpu.getFlag(FlagZero))
		assert.Equal(t, 6, cycles)

		cpu = createTestCPU()
		cpu.PC = 0x0200
		cpu.Y = 0x01
		cpu.Memory.Write(0x0200, 0xB3) // LAX (zp),Y
		cpu.Memory.Write(0x0201, 0x30)
		cpu.Memory.Write(0x30, 0xFF)
		cpu.Memory.Write(0x31, 0x0F) // base 0x0FFF
		cpu.Memory.Write(0x1000, 0x33) // 0x0FFF + 1 crosses page

		cycles = cpu.Step()

		assert.Equal(t, uint8(0x33), cpu.A)
		assert.Equal(t, uint8(0x33), cpu.X)
		assert.Equal(t, 6, cycles, "page-crossing (zp),Y adds a cycle")
	})

	t.Run("SAX_StoreAAndX", func(t *testing.T) {
		cpu := createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0xFF
		cpu.X = 0x0F
		cpu.Memory.Write(0x0200, 0x87) // SAX zp
		cpu.Memory.Write(0x0201, 0x10)

		cycles := cpu.Step()

		assert.Equal(t, uint8(0xFF&0x0F), cpu.Memory.Read(0x10))
		assert.Equal(t, 3, cycles)

		cpu = createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0xAA
		cpu.X = 0x55
		cpu.Y = 0x02
		cpu.Memory.Write(0x0200, 0x97) // SAX zp,Y
		cpu.Memory.Write(0x0201, 0x20)

		cycles = cpu.Step()

		assert.Equal(t, uint8(0xAA&0x55), cpu.Memory.Read(0x22))
		assert.Equal(t, 4, cycles)

		cpu = createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0xF0
		cpu.X = 0x0F
		cpu.Memory.Write(0x0200, 0x8F) // SAX abs
		cpu.Memory.Write(0x0201, 0x00)
		cpu.Memory.Write(0x0202, 0x18)

		cycles = cpu.Step()

		assert.Equal(t, uint8(0xF0&0x0F), cpu.Memory.Read(0x1800))
		assert.Equal(t, 4, cycles)

		cpu = createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0xCC
		cpu.X = 0x33
		cpu.Memory.Write(0x0200, 0x83) // SAX (zp,X)
		cpu.Memory.Write(0x0201, 0x10)
		cpu.Memory.Write(0x43, 0x00) // 0x10 + 0x33 = 0x43
		cpu.Memory.Write(0x44, 0x19)

		cycles = cpu.Step()

		assert.Equal(t, uint8(0xCC&0x33), cpu.Memory.Read(0x1900))
		assert.Equal(t, 6, cycles)
	})
}

// TestIllegalNOPs covers every SKB/IGN illegal-NOP opcode: none of them
// touch registers or flags, but the absolute,X (IGN) forms must still read
// their operand through the bus and honor the page-cross cycle penalty
// (spec requirement; these used to be stubbed as a bare PC skip).
func TestIllegalNOPs(t *testing.T) {
	t.Run("Illegal_NOP_Variants", func(t *testing.T) {
		testCases := []struct {
			name      string
			opcode    uint8
			cycles    int
			pcAdvance int
		}{
			{"NOP_1A", 0x1A, 2, 1}, // Implied
			{"NOP_3A", 0x3A, 2, 1},
			{"NOP_5A", 0x5A, 2, 1},
			{"NOP_7A", 0x7A, 2, 1},
			{"NOP_DA", 0xDA, 2, 1},
			{"NOP_FA", 0xFA, 2, 1},
			{"NOP_80", 0x80, 2, 2}, // Immediate
			{"NOP_82", 0x82, 2, 2},
			{"NOP_89", 0x89, 2, 2},
			{"NOP_C2", 0xC2, 2, 2},
			{"NOP_E2", 0xE2, 2, 2},
			{"NOP_04", 0x04, 3, 2}, // Zero page
			{"NOP_44", 0x44, 3, 2},
			{"NOP_64", 0x64, 3, 2},
			{"NOP_14", 0x14, 4, 2}, // Zero page,X
			{"NOP_34", 0x34, 4, 2},
			{"NOP_54", 0x54, 4, 2},
			{"NOP_74", 0x74, 4, 2},
			{"NOP_D4", 0xD4, 4, 2},
			{"NOP_F4", 0xF4, 4, 2},
			{"NOP_0C", 0x0C, 4, 3}, // Absolute
			{"NOP_1C", 0x1C, 4, 3}, // Absolute,X, no page crossing (X=0)
			{"NOP_3C", 0x3C, 4, 3},
			{"NOP_5C", 0x5C, 4, 3},
			{"NOP_7C", 0x7C, 4, 3},
			{"NOP_DC", 0xDC, 4, 3},
			{"NOP_FC", 0xFC, 4, 3},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				cpu := createTestCPU()
				cpu.PC = 0x0200
				cpu.Memory.Write(0x0200, tc.opcode)
				cpu.Memory.Write(0x0201, 0x42) // operand for immediate/zp
				cpu.Memory.Write(0x0202, 0x30) // high byte for absolute

				originalA := cpu.A
				originalX := cpu.X
				originalY := cpu.Y
				originalP := cpu.P
				originalSP := cpu.SP

				cycles := cpu.Step()

				assert.Equal(t, originalA, cpu.A, "illegal NOP must not change A")
				assert.Equal(t, originalX, cpu.X, "illegal NOP must not change X")
				assert.Equal(t, originalY, cpu.Y, "illegal NOP must not change Y")
				assert.Equal(t, originalP, cpu.P, "illegal NOP must not change flags")
				assert.Equal(t, originalSP, cpu.SP, "illegal NOP must not change SP")
				assert.Equal(t, uint16(0x0200+tc.pcAdvance), cpu.PC)
				assert.Equal(t, tc.cycles, cycles)
			})
		}
	})

	t.Run("IGN_AbsoluteX_PageCross", func(t *testing.T) {
		// 0x1C at PC=$02F0 with X=$20: base operand $30F0, +X crosses
		// into page $31 and must cost 5 cycles instead of 4.
		cpu := createTestCPU()
		cpu.PC = 0x02F0
		cpu.X = 0x20
		cpu.Memory.Write(0x02F0, 0x1C)
		cpu.Memory.Write(0x02F1, 0xF0)
		cpu.Memory.Write(0x02F2, 0x30)

		cycles := cpu.Step()

		assert.Equal(t, uint16(0x02F3), cpu.PC)
		assert.Equal(t, 5, cycles, "IGN abs,X must honor the page-cross penalty")
	})
}

func TestUndefinedOpcodes(t *testing.T) {
	t.Run("Undefined_Opcodes_Behavior", func(t *testing.T) {
		// JAM/KIL opcodes: the opcode table maps these to a total 1-byte,
		// 2-cycle no-op entry so dispatch never has a hole (spec §4.4).
		undefinedOpcodes := []uint8{
			0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72,
			0x92, 0xB2, 0xD2, 0xF2,
		}

		for _, opcode := range undefinedOpcodes {
			t.Run(fmt.Sprintf("Opcode_0x%02X", opcode), func(t *testing.T) {
				cpu := createTestCPU()
				cpu.PC = 0x0200
				cpu.Memory.Write(0x0200, opcode)
				originalPC := cpu.PC

				cycles := cpu.Step()

				t.Logf("Opcode 0x%02X: PC=%04X->%04X, cycles=%d", opcode, originalPC, cpu.PC, cycles)
				assert.NotEqual(t, originalPC, cpu.PC, "PC must advance for every table entry, including JAM")
			})
		}
	})
}

// TestAdditionalIllegalInstructions exercises the RMW-combo illegal opcodes
// (read-modify-write, then fold the result into A), cross-checked against
// the arithmetic each one composes (DCP=DEC+CMP, ISB=INC+SBC, SLO=ASL+ORA,
// RLA=ROL+AND, SRE=LSR+EOR, RRA=ROR+ADC).
func TestAdditionalIllegalInstructions(t *testing.T) {
	t.Run("DCP_DecrementAndCompare", func(t *testing.T) {
		cpu := createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0x10
		cpu.Memory.Write(0x0200, 0xC7) // DCP zp
		cpu.Memory.Write(0x0201, 0x10)
		cpu.Memory.Write(0x10, 0x11)

		cycles := cpu.Step()

		assert.Equal(t, uint8(0x10), cpu.Memory.Read(0x10), "memory decremented")
		assert.True(t, cpu.getFlag(FlagZero), "A == decremented memory")
		assert.True(t, cpu.getFlag(FlagCarry), "A >= decremented memory")
		assert.Equal(t, 5, cycles)
	})

	t.Run("ISB_IncrementAndSubtract", func(t *testing.T) {
		cpu := createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0x20
		cpu.setFlag(FlagCarry, true) // no borrow
		cpu.Memory.Write(0x0200, 0xE7) // ISB zp
		cpu.Memory.Write(0x0201, 0x10)
		cpu.Memory.Write(0x10, 0x0F)

		cycles := cpu.Step()

		assert.Equal(t, uint8(0x10), cpu.Memory.Read(0x10), "memory incremented")
		assert.Equal(t, uint8(0x10), cpu.A, "A = A - incremented memory")
		assert.True(t, cpu.getFlag(FlagCarry), "no borrow")
		assert.Equal(t, 5, cycles)
	})

	t.Run("SLO_ShiftLeftAndOr", func(t *testing.T) {
		cpu := createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0x0F
		cpu.Memory.Write(0x0200, 0x07) // SLO zp
		cpu.Memory.Write(0x0201, 0x10)
		cpu.Memory.Write(0x10, 0x40)

		cycles := cpu.Step()

		assert.Equal(t, uint8(0x80), cpu.Memory.Read(0x10), "memory shifted left")
		assert.Equal(t, uint8(0x8F), cpu.A, "A ORed with shifted memory")
		assert.False(t, cpu.getFlag(FlagCarry), "bit 7 of original memory was clear")
		assert.Equal(t, 5, cycles)
	})

	t.Run("RLA_RotateLeftAndAnd", func(t *testing.T) {
		cpu := createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0xFF
		cpu.setFlag(FlagCarry, false)
		cpu.Memory.Write(0x0200, 0x27) // RLA zp
		cpu.Memory.Write(0x0201, 0x10)
		cpu.Memory.Write(0x10, 0x81)

		cycles := cpu.Step()

		assert.Equal(t, uint8(0x02), cpu.Memory.Read(0x10), "memory rotated left")
		assert.Equal(t, uint8(0x02), cpu.A, "A ANDed with rotated memory")
		assert.True(t, cpu.getFlag(FlagCarry), "bit 7 of original memory was set")
		assert.Equal(t, 5, cycles)
	})

	t.Run("SRE_ShiftRightAndEor", func(t *testing.T) {
		cpu := createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0xFF
		cpu.Memory.Write(0x0200, 0x47) // SRE zp
		cpu.Memory.Write(0x0201, 0x10)
		cpu.Memory.Write(0x10, 0x81)

		cycles := cpu.Step()

		assert.Equal(t, uint8(0x40), cpu.Memory.Read(0x10), "memory shifted right")
		assert.Equal(t, uint8(0xBF), cpu.A, "A XORed with shifted memory")
		assert.True(t, cpu.getFlag(FlagCarry), "bit 0 of original memory was set")
		assert.Equal(t, 5, cycles)
	})

	t.Run("RRA_RotateRightAndAdd", func(t *testing.T) {
		cpu := createTestCPU()
		cpu.PC = 0x0200
		cpu.A = 0x10
		cpu.setFlag(FlagCarry, true)
		cpu.Memory.Write(0x0200, 0x67) // RRA zp
		cpu.Memory.Write(0x0201, 0x10)
		cpu.Memory.Write(0x10, 0x02)

		cycles := cpu.Step()

		assert.Equal(t, uint8(0x81), cpu.Memory.Read(0x10), "memory rotated right with carry in")
		assert.Equal(t, uint8(0x91), cpu.A, "A plus rotated memory")
		assert.False(t, cpu.getFlag(FlagCarry), "carry comes from the addition, not the rotation")
		assert.Equal(t, 5, cycles)
	})
}
