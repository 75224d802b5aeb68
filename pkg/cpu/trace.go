package cpu

import (
	"fmt"
	"strings"
)

// Trace renders one nestest-compatible disassembly-and-register line for
// the instruction about to execute at c.PC. It must not perturb CPU state:
// all address computation goes through the read-only resolve, never
// getOperandAddress/getOperand, and it performs no writes.
//
// Layout matches the canonical nestest log exactly:
//
//	PC    hex bytes   mnemonic operand                      A:xx X:xx Y:xx P:xx SP:xx
func Trace(c *CPU) string {
	counter := c.PC
	code := c.read(counter)
	op := opcodeTable[code]

	hexDump := []uint8{code}

	var memAddr uint16
	var data uint8
	switch op.Mode {
	case AddrImmediate, AddrImplied, AddrAccumulator:
	default:
		addr, _ := c.resolve(op.Mode, counter+1)
		memAddr = addr
		data = c.read(addr)
	}

	var operand string
	switch op.Len {
	case 1:
		switch code {
		case 0x0A, 0x4A, 0x2A, 0x6A:
			operand = "A "
		default:
			operand = ""
		}

	case 2:
		arg := c.read(counter + 1)
		hexDump = append(hexDump, arg)

		switch op.Mode {
		case AddrImmediate:
			operand = fmt.Sprintf("#$%02X", arg)
		case AddrZeroPage:
			operand = fmt.Sprintf("$%02X = %02X", memAddr, data)
		case AddrZeroPageX:
			operand = fmt.Sprintf("$%02X,X @ %02X = %02X", arg, memAddr, data)
		case AddrZeroPageY:
			operand = fmt.Sprintf("$%02X,Y @ %02X = %02X", arg, memAddr, data)
		case AddrIndexedIndirect:
			operand = fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", arg, uint8(arg+c.X), memAddr, data)
		case AddrIndirectIndexed:
			base := memAddr - uint16(c.Y)
			operand = fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", arg, base, memAddr, data)
		case AddrRelative:
			target := uint16(int32(counter) + 2 + int32(int8(arg)))
			operand = fmt.Sprintf("$%04X", target)
		default:
			operand = ""
		}

	case 3:
		lo := c.read(counter + 1)
		hi := c.read(counter + 2)
		hexDump = append(hexDump, lo, hi)
		address := uint16(hi)<<8 | uint16(lo)

		switch {
		case op.Mode == AddrIndirect:
			var jmpAddr uint16
			if address&0x00FF == 0x00FF {
				l := c.read(address)
				h := c.read(address & 0xFF00)
				jmpAddr = uint16(h)<<8 | uint16(l)
			} else {
				jmpAddr = c.read16(address)
			}
			operand = fmt.Sprintf("($%04X) = %04X", address, jmpAddr)
		case op.Mode == AddrAbsolute && (code == 0x4C || code == 0x20):
			operand = fmt.Sprintf("$%04X", address)
		case op.Mode == AddrAbsolute:
			operand = fmt.Sprintf("$%04X = %02X", memAddr, data)
		case op.Mode == AddrAbsoluteX:
			operand = fmt.Sprintf("$%04X,X @ %04X = %02X", address, memAddr, data)
		case op.Mode == AddrAbsoluteY:
			operand = fmt.Sprintf("$%04X,Y @ %04X = %02X", address, memAddr, data)
		default:
			operand = fmt.Sprintf("$%04X", address)
		}
	}

	hexParts := make([]string, len(hexDump))
	for i, b := range hexDump {
		hexParts[i] = fmt.Sprintf("%02X", b)
	}
	hexStr := strings.Join(hexParts, " ")

	asm := strings.TrimSpace(fmt.Sprintf("%04X  %-8s %4s %s", counter, hexStr, op.Mnemonic, operand))

	return strings.ToUpper(fmt.Sprintf("%-47s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		asm, c.A, c.X, c.Y, c.P, c.SP))
}
