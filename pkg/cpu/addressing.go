package cpu

// AddressingMode represents different addressing modes for 6502 instructions
type AddressingMode int

const (
	AddrImplied AddressingMode = iota
	AddrAccumulator
	AddrImmediate
	AddrZeroPage
	AddrZeroPageX
	AddrZeroPageY
	AddrRelative
	AddrAbsolute
	AddrAbsoluteX
	AddrAbsoluteY
	AddrIndirect
	AddrIndexedIndirect
	AddrIndirectIndexed
)

// AddressingInfo contains information about an addressing mode
type AddressingInfo struct {
	Mode   AddressingMode
	Length int // Instruction length in bytes
	Cycles int // Base cycle count
}

// getAddressingInfo returns addressing mode information for an opcode,
// sourced from the total opcode table rather than a partially filled copy.
func getAddressingInfo(opcode uint8) AddressingInfo {
	op := opcodeTable[opcode]
	return AddressingInfo{Mode: op.Mode, Length: int(op.Len), Cycles: op.Cycles}
}

// resolve computes the effective address for mode as if the operand began
// at "at", without touching PC, registers, or memory side effects beyond
// the dummy reads real hardware performs on a page-crossing indexed fetch.
// It is shared, unmodified, by the executor (which advances PC separately)
// and the trace formatter (which must not perturb CPU state at all).
func (c *CPU) resolve(mode AddressingMode, at uint16) (addr uint16, pageCrossed bool) {
	switch mode {
	case AddrImplied, AddrAccumulator:
		return 0, false

	case AddrImmediate:
		return at, false

	case AddrZeroPage:
		return uint16(c.read(at)), false

	case AddrZeroPageX:
		return uint16(c.read(at) + c.X), false

	case AddrZeroPageY:
		return uint16(c.read(at) + c.Y), false

	case AddrRelative:
		offset := int8(c.read(at))
		base := at + 1
		target := uint16(int32(base) + int32(offset))
		return target, (base & 0xFF00) != (target & 0xFF00)

	case AddrAbsolute:
		return c.read16(at), false

	case AddrAbsoluteX:
		base := c.read16(at)
		target := base + uint16(c.X)
		return target, (base & 0xFF00) != (target & 0xFF00)

	case AddrAbsoluteY:
		base := c.read16(at)
		target := base + uint16(c.Y)
		return target, (base & 0xFF00) != (target & 0xFF00)

	case AddrIndirect:
		ptr := c.read16(at)
		if ptr&0xFF == 0xFF {
			lo := c.read(ptr)
			hi := c.read(ptr & 0xFF00)
			return uint16(hi)<<8 | uint16(lo), false
		}
		return c.read16(ptr), false

	case AddrIndexedIndirect: // (zp,X)
		base := c.read(at)
		ptr := (uint16(base) + uint16(c.X)) & 0xFF
		lo := c.read(ptr)
		hi := c.read((ptr + 1) & 0xFF)
		return uint16(hi)<<8 | uint16(lo), false

	case AddrIndirectIndexed: // (zp),Y
		base := c.read(at)
		lo := c.read(uint16(base))
		hi := c.read((uint16(base) + 1) & 0xFF)
		baseAddr := uint16(hi)<<8 | uint16(lo)
		target := baseAddr + uint16(c.Y)
		return target, (baseAddr & 0xFF00) != (target & 0xFF00)
	}

	return 0, false
}

// operandLen reports how many bytes of operand follow the opcode byte for
// mode, i.e. opcode.Len-1, needed by resolve callers that must advance PC
// themselves after dispatch.
func operandLen(mode AddressingMode) uint16 {
	switch mode {
	case AddrImplied, AddrAccumulator:
		return 0
	case AddrImmediate, AddrZeroPage, AddrZeroPageX, AddrZeroPageY,
		AddrRelative, AddrIndexedIndirect, AddrIndirectIndexed:
		return 1
	default:
		return 2
	}
}

// getOperandAddress resolves the operand address for the current
// instruction, advancing PC past the operand and performing the dummy read
// real hardware issues on a page-crossing indexed fetch. This is the
// execution-path entry point; resolve itself never mutates PC.
func (c *CPU) getOperandAddress(mode AddressingMode) (uint16, bool) {
	at := c.PC
	addr, pageCrossed := c.resolve(mode, at)
	c.PC += operandLen(mode)

	switch mode {
	case AddrAbsoluteX:
		if pageCrossed {
			base := addr - uint16(c.X)
			dummy := (base & 0xFF00) | (addr & 0xFF)
			c.read(dummy)
		}
	case AddrAbsoluteY:
		if pageCrossed {
			base := addr - uint16(c.Y)
			dummy := (base & 0xFF00) | (addr & 0xFF)
			c.read(dummy)
		}
	case AddrIndirectIndexed:
		if pageCrossed {
			base := addr - uint16(c.Y)
			dummy := (base & 0xFF00) | (addr & 0xFF)
			c.read(dummy)
		}
	}

	return addr, pageCrossed
}

// getOperand reads the operand value for mode, advancing PC as above.
func (c *CPU) getOperand(mode AddressingMode) (uint8, bool) {
	if mode == AddrAccumulator {
		return c.A, false
	}
	addr, pageCrossed := c.getOperandAddress(mode)
	return c.read(addr), pageCrossed
}
