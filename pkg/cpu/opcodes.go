package cpu

// Opcode is the static metadata for one of the 256 possible opcode bytes:
// its mnemonic, how many bytes it occupies, its addressing mode, and its
// base cycle cost. PageCrossPenalty marks instructions that take one extra
// cycle when indexed addressing crosses a page boundary.
type Opcode struct {
	Mnemonic         string
	Mode             AddressingMode
	Len              uint16
	Cycles           int
	PageCrossPenalty bool
}

// opcodeTable is the complete, total mapping from opcode byte to metadata,
// covering every official instruction, every unofficial/illegal opcode this
// core implements, and the JAM/KIL bytes (mapped to a harmless one-byte
// no-op so the table never needs a "missing" case).
var opcodeTable = [256]Opcode{
	0x00: {"BRK", AddrImplied, 1, 7, false},
	0x01: {"ORA", AddrIndexedIndirect, 2, 6, false},
	0x02: {"JAM", AddrImplied, 1, 2, false},
	0x03: {"SLO", AddrIndexedIndirect, 2, 8, false},
	0x04: {"NOP", AddrZeroPage, 2, 3, false},
	0x05: {"ORA", AddrZeroPage, 2, 3, false},
	0x06: {"ASL", AddrZeroPage, 2, 5, false},
	0x07: {"SLO", AddrZeroPage, 2, 5, false},
	0x08: {"PHP", AddrImplied, 1, 3, false},
	0x09: {"ORA", AddrImmediate, 2, 2, false},
	0x0A: {"ASL", AddrAccumulator, 1, 2, false},
	0x0B: {"ANC", AddrImmediate, 2, 2, false},
	0x0C: {"NOP", AddrAbsolute, 3, 4, false},
	0x0D: {"ORA", AddrAbsolute, 3, 4, false},
	0x0E: {"ASL", AddrAbsolute, 3, 6, false},
	0x0F: {"SLO", AddrAbsolute, 3, 6, false},

	0x10: {"BPL", AddrRelative, 2, 2, false},
	0x11: {"ORA", AddrIndirectIndexed, 2, 5, true},
	0x12: {"JAM", AddrImplied, 1, 2, false},
	0x13: {"SLO", AddrIndirectIndexed, 2, 8, false},
	0x14: {"NOP", AddrZeroPageX, 2, 4, false},
	0x15: {"ORA", AddrZeroPageX, 2, 4, false},
	0x16: {"ASL", AddrZeroPageX, 2, 6, false},
	0x17: {"SLO", AddrZeroPageX, 2, 6, false},
	0x18: {"CLC", AddrImplied, 1, 2, false},
	0x19: {"ORA", AddrAbsoluteY, 3, 4, true},
	0x1A: {"NOP", AddrImplied, 1, 2, false},
	0x1B: {"SLO", AddrAbsoluteY, 3, 7, false},
	0x1C: {"NOP", AddrAbsoluteX, 3, 4, true},
	0x1D: {"ORA", AddrAbsoluteX, 3, 4, true},
	0x1E: {"ASL", AddrAbsoluteX, 3, 7, false},
	0x1F: {"SLO", AddrAbsoluteX, 3, 7, false},

	0x20: {"JSR", AddrAbsolute, 3, 6, false},
	0x21: {"AND", AddrIndexedIndirect, 2, 6, false},
	0x22: {"JAM", AddrImplied, 1, 2, false},
	0x23: {"RLA", AddrIndexedIndirect, 2, 8, false},
	0x24: {"BIT", AddrZeroPage, 2, 3, false},
	0x25: {"AND", AddrZeroPage, 2, 3, false},
	0x26: {"ROL", AddrZeroPage, 2, 5, false},
	0x27: {"RLA", AddrZeroPage, 2, 5, false},
	0x28: {"PLP", AddrImplied, 1, 4, false},
	0x29: {"AND", AddrImmediate, 2, 2, false},
	0x2A: {"ROL", AddrAccumulator, 1, 2, false},
	0x2B: {"ANC", AddrImmediate, 2, 2, false},
	0x2C: {"BIT", AddrAbsolute, 3, 4, false},
	0x2D: {"AND", AddrAbsolute, 3, 4, false},
	0x2E: {"ROL", AddrAbsolute, 3, 6, false},
	0x2F: {"RLA", AddrAbsolute, 3, 6, false},

	0x30: {"BMI", AddrRelative, 2, 2, false},
	0x31: {"AND", AddrIndirectIndexed, 2, 5, true},
	0x32: {"JAM", AddrImplied, 1, 2, false},
	0x33: {"RLA", AddrIndirectIndexed, 2, 8, false},
	0x34: {"NOP", AddrZeroPageX, 2, 4, false},
	0x35: {"AND", AddrZeroPageX, 2, 4, false},
	0x36: {"ROL", AddrZeroPageX, 2, 6, false},
	0x37: {"RLA", AddrZeroPageX, 2, 6, false},
	0x38: {"SEC", AddrImplied, 1, 2, false},
	0x39: {"AND", AddrAbsoluteY, 3, 4, true},
	0x3A: {"NOP", AddrImplied, 1, 2, false},
	0x3B: {"RLA", AddrAbsoluteY, 3, 7, false},
	0x3C: {"NOP", AddrAbsoluteX, 3, 4, true},
	0x3D: {"AND", AddrAbsoluteX, 3, 4, true},
	0x3E: {"ROL", AddrAbsoluteX, 3, 7, false},
	0x3F: {"RLA", AddrAbsoluteX, 3, 7, false},

	0x40: {"RTI", AddrImplied, 1, 6, false},
	0x41: {"EOR", AddrIndexedIndirect, 2, 6, false},
	0x42: {"JAM", AddrImplied, 1, 2, false},
	0x43: {"SRE", AddrIndexedIndirect, 2, 8, false},
	0x44: {"NOP", AddrZeroPage, 2, 3, false},
	0x45: {"EOR", AddrZeroPage, 2, 3, false},
	0x46: {"LSR", AddrZeroPage, 2, 5, false},
	0x47: {"SRE", AddrZeroPage, 2, 5, false},
	0x48: {"PHA", AddrImplied, 1, 3, false},
	0x49: {"EOR", AddrImmediate, 2, 2, false},
	0x4A: {"LSR", AddrAccumulator, 1, 2, false},
	0x4B: {"ALR", AddrImmediate, 2, 2, false},
	0x4C: {"JMP", AddrAbsolute, 3, 3, false},
	0x4D: {"EOR", AddrAbsolute, 3, 4, false},
	0x4E: {"LSR", AddrAbsolute, 3, 6, false},
	0x4F: {"SRE", AddrAbsolute, 3, 6, false},

	0x50: {"BVC", AddrRelative, 2, 2, false},
	0x51: {"EOR", AddrIndirectIndexed, 2, 5, true},
	0x52: {"JAM", AddrImplied, 1, 2, false},
	0x53: {"SRE", AddrIndirectIndexed, 2, 8, false},
	0x54: {"NOP", AddrZeroPageX, 2, 4, false},
	0x55: {"EOR", AddrZeroPageX, 2, 4, false},
	0x56: {"LSR", AddrZeroPageX, 2, 6, false},
	0x57: {"SRE", AddrZeroPageX, 2, 6, false},
	0x58: {"CLI", AddrImplied, 1, 2, false},
	0x59: {"EOR", AddrAbsoluteY, 3, 4, true},
	0x5A: {"NOP", AddrImplied, 1, 2, false},
	0x5B: {"SRE", AddrAbsoluteY, 3, 7, false},
	0x5C: {"NOP", AddrAbsoluteX, 3, 4, true},
	0x5D: {"EOR", AddrAbsoluteX, 3, 4, true},
	0x5E: {"LSR", AddrAbsoluteX, 3, 7, false},
	0x5F: {"SRE", AddrAbsoluteX, 3, 7, false},

	0x60: {"RTS", AddrImplied, 1, 6, false},
	0x61: {"ADC", AddrIndexedIndirect, 2, 6, false},
	0x62: {"JAM", AddrImplied, 1, 2, false},
	0x63: {"RRA", AddrIndexedIndirect, 2, 8, false},
	0x64: {"NOP", AddrZeroPage, 2, 3, false},
	0x65: {"ADC", AddrZeroPage, 2, 3, false},
	0x66: {"ROR", AddrZeroPage, 2, 5, false},
	0x67: {"RRA", AddrZeroPage, 2, 5, false},
	0x68: {"PLA", AddrImplied, 1, 4, false},
	0x69: {"ADC", AddrImmediate, 2, 2, false},
	0x6A: {"ROR", AddrAccumulator, 1, 2, false},
	0x6B: {"ARR", AddrImmediate, 2, 2, false},
	0x6C: {"JMP", AddrIndirect, 3, 5, false},
	0x6D: {"ADC", AddrAbsolute, 3, 4, false},
	0x6E: {"ROR", AddrAbsolute, 3, 6, false},
	0x6F: {"RRA", AddrAbsolute, 3, 6, false},

	0x70: {"BVS", AddrRelative, 2, 2, false},
	0x71: {"ADC", AddrIndirectIndexed, 2, 5, true},
	0x72: {"JAM", AddrImplied, 1, 2, false},
	0x73: {"RRA", AddrIndirectIndexed, 2, 8, false},
	0x74: {"NOP", AddrZeroPageX, 2, 4, false},
	0x75: {"ADC", AddrZeroPageX, 2, 4, false},
	0x76: {"ROR", AddrZeroPageX, 2, 6, false},
	0x77: {"RRA", AddrZeroPageX, 2, 6, false},
	0x78: {"SEI", AddrImplied, 1, 2, false},
	0x79: {"ADC", AddrAbsoluteY, 3, 4, true},
	0x7A: {"NOP", AddrImplied, 1, 2, false},
	0x7B: {"RRA", AddrAbsoluteY, 3, 7, false},
	0x7C: {"NOP", AddrAbsoluteX, 3, 4, true},
	0x7D: {"ADC", AddrAbsoluteX, 3, 4, true},
	0x7E: {"ROR", AddrAbsoluteX, 3, 7, false},
	0x7F: {"RRA", AddrAbsoluteX, 3, 7, false},

	0x80: {"NOP", AddrImmediate, 2, 2, false},
	0x81: {"STA", AddrIndexedIndirect, 2, 6, false},
	0x82: {"NOP", AddrImmediate, 2, 2, false},
	0x83: {"SAX", AddrIndexedIndirect, 2, 6, false},
	0x84: {"STY", AddrZeroPage, 2, 3, false},
	0x85: {"STA", AddrZeroPage, 2, 3, false},
	0x86: {"STX", AddrZeroPage, 2, 3, false},
	0x87: {"SAX", AddrZeroPage, 2, 3, false},
	0x88: {"DEY", AddrImplied, 1, 2, false},
	0x89: {"NOP", AddrImmediate, 2, 2, false},
	0x8A: {"TXA", AddrImplied, 1, 2, false},
	0x8B: {"XAA", AddrImmediate, 2, 2, false},
	0x8C: {"STY", AddrAbsolute, 3, 4, false},
	0x8D: {"STA", AddrAbsolute, 3, 4, false},
	0x8E: {"STX", AddrAbsolute, 3, 4, false},
	0x8F: {"SAX", AddrAbsolute, 3, 4, false},

	0x90: {"BCC", AddrRelative, 2, 2, false},
	0x91: {"STA", AddrIndirectIndexed, 2, 6, false},
	0x92: {"JAM", AddrImplied, 1, 2, false},
	0x93: {"AHX", AddrIndirectIndexed, 2, 6, false},
	0x94: {"STY", AddrZeroPageX, 2, 4, false},
	0x95: {"STA", AddrZeroPageX, 2, 4, false},
	0x96: {"STX", AddrZeroPageY, 2, 4, false},
	0x97: {"SAX", AddrZeroPageY, 2, 4, false},
	0x98: {"TYA", AddrImplied, 1, 2, false},
	0x99: {"STA", AddrAbsoluteY, 3, 5, false},
	0x9A: {"TXS", AddrImplied, 1, 2, false},
	0x9B: {"TAS", AddrAbsoluteY, 3, 5, false},
	0x9C: {"SHY", AddrAbsoluteX, 3, 5, false},
	0x9D: {"STA", AddrAbsoluteX, 3, 5, false},
	0x9E: {"SHX", AddrAbsoluteY, 3, 5, false},
	0x9F: {"AHX", AddrAbsoluteY, 3, 5, false},

	0xA0: {"LDY", AddrImmediate, 2, 2, false},
	0xA1: {"LDA", AddrIndexedIndirect, 2, 6, false},
	0xA2: {"LDX", AddrImmediate, 2, 2, false},
	0xA3: {"LAX", AddrIndexedIndirect, 2, 6, false},
	0xA4: {"LDY", AddrZeroPage, 2, 3, false},
	0xA5: {"LDA", AddrZeroPage, 2, 3, false},
	0xA6: {"LDX", AddrZeroPage, 2, 3, false},
	0xA7: {"LAX", AddrZeroPage, 2, 3, false},
	0xA8: {"TAY", AddrImplied, 1, 2, false},
	0xA9: {"LDA", AddrImmediate, 2, 2, false},
	0xAA: {"TAX", AddrImplied, 1, 2, false},
	0xAB: {"LXA", AddrImmediate, 2, 2, false},
	0xAC: {"LDY", AddrAbsolute, 3, 4, false},
	0xAD: {"LDA", AddrAbsolute, 3, 4, false},
	0xAE: {"LDX", AddrAbsolute, 3, 4, false},
	0xAF: {"LAX", AddrAbsolute, 3, 4, false},

	0xB0: {"BCS", AddrRelative, 2, 2, false},
	0xB1: {"LDA", AddrIndirectIndexed, 2, 5, true},
	0xB2: {"JAM", AddrImplied, 1, 2, false},
	0xB3: {"LAX", AddrIndirectIndexed, 2, 5, true},
	0xB4: {"LDY", AddrZeroPageX, 2, 4, false},
	0xB5: {"LDA", AddrZeroPageX, 2, 4, false},
	0xB6: {"LDX", AddrZeroPageY, 2, 4, false},
	0xB7: {"LAX", AddrZeroPageY, 2, 4, false},
	0xB8: {"CLV", AddrImplied, 1, 2, false},
	0xB9: {"LDA", AddrAbsoluteY, 3, 4, true},
	0xBA: {"TSX", AddrImplied, 1, 2, false},
	0xBB: {"LAS", AddrAbsoluteY, 3, 4, true},
	0xBC: {"LDY", AddrAbsoluteX, 3, 4, true},
	0xBD: {"LDA", AddrAbsoluteX, 3, 4, true},
	0xBE: {"LDX", AddrAbsoluteY, 3, 4, true},
	0xBF: {"LAX", AddrAbsoluteY, 3, 4, true},

	0xC0: {"CPY", AddrImmediate, 2, 2, false},
	0xC1: {"CMP", AddrIndexedIndirect, 2, 6, false},
	0xC2: {"NOP", AddrImmediate, 2, 2, false},
	0xC3: {"DCP", AddrIndexedIndirect, 2, 8, false},
	0xC4: {"CPY", AddrZeroPage, 2, 3, false},
	0xC5: {"CMP", AddrZeroPage, 2, 3, false},
	0xC6: {"DEC", AddrZeroPage, 2, 5, false},
	0xC7: {"DCP", AddrZeroPage, 2, 5, false},
	0xC8: {"INY", AddrImplied, 1, 2, false},
	0xC9: {"CMP", AddrImmediate, 2, 2, false},
	0xCA: {"DEX", AddrImplied, 1, 2, false},
	0xCB: {"AXS", AddrImmediate, 2, 2, false},
	0xCC: {"CPY", AddrAbsolute, 3, 4, false},
	0xCD: {"CMP", AddrAbsolute, 3, 4, false},
	0xCE: {"DEC", AddrAbsolute, 3, 6, false},
	0xCF: {"DCP", AddrAbsolute, 3, 6, false},

	0xD0: {"BNE", AddrRelative, 2, 2, false},
	0xD1: {"CMP", AddrIndirectIndexed, 2, 5, true},
	0xD2: {"JAM", AddrImplied, 1, 2, false},
	0xD3: {"DCP", AddrIndirectIndexed, 2, 8, false},
	0xD4: {"NOP", AddrZeroPageX, 2, 4, false},
	0xD5: {"CMP", AddrZeroPageX, 2, 4, false},
	0xD6: {"DEC", AddrZeroPageX, 2, 6, false},
	0xD7: {"DCP", AddrZeroPageX, 2, 6, false},
	0xD8: {"CLD", AddrImplied, 1, 2, false},
	0xD9: {"CMP", AddrAbsoluteY, 3, 4, true},
	0xDA: {"NOP", AddrImplied, 1, 2, false},
	0xDB: {"DCP", AddrAbsoluteY, 3, 7, false},
	0xDC: {"NOP", AddrAbsoluteX, 3, 4, true},
	0xDD: {"CMP", AddrAbsoluteX, 3, 4, true},
	0xDE: {"DEC", AddrAbsoluteX, 3, 7, false},
	0xDF: {"DCP", AddrAbsoluteX, 3, 7, false},

	0xE0: {"CPX", AddrImmediate, 2, 2, false},
	0xE1: {"SBC", AddrIndexedIndirect, 2, 6, false},
	0xE2: {"NOP", AddrImmediate, 2, 2, false},
	0xE3: {"ISB", AddrIndexedIndirect, 2, 8, false},
	0xE4: {"CPX", AddrZeroPage, 2, 3, false},
	0xE5: {"SBC", AddrZeroPage, 2, 3, false},
	0xE6: {"INC", AddrZeroPage, 2, 5, false},
	0xE7: {"ISB", AddrZeroPage, 2, 5, false},
	0xE8: {"INX", AddrImplied, 1, 2, false},
	0xE9: {"SBC", AddrImmediate, 2, 2, false},
	0xEA: {"NOP", AddrImplied, 1, 2, false},
	0xEB: {"SBC", AddrImmediate, 2, 2, false},
	0xEC: {"CPX", AddrAbsolute, 3, 4, false},
	0xED: {"SBC", AddrAbsolute, 3, 4, false},
	0xEE: {"INC", AddrAbsolute, 3, 6, false},
	0xEF: {"ISB", AddrAbsolute, 3, 6, false},

	0xF0: {"BEQ", AddrRelative, 2, 2, false},
	0xF1: {"SBC", AddrIndirectIndexed, 2, 5, true},
	0xF2: {"JAM", AddrImplied, 1, 2, false},
	0xF3: {"ISB", AddrIndirectIndexed, 2, 8, false},
	0xF4: {"NOP", AddrZeroPageX, 2, 4, false},
	0xF5: {"SBC", AddrZeroPageX, 2, 4, false},
	0xF6: {"INC", AddrZeroPageX, 2, 6, false},
	0xF7: {"ISB", AddrZeroPageX, 2, 6, false},
	0xF8: {"SED", AddrImplied, 1, 2, false},
	0xF9: {"SBC", AddrAbsoluteY, 3, 4, true},
	0xFA: {"NOP", AddrImplied, 1, 2, false},
	0xFB: {"ISB", AddrAbsoluteY, 3, 7, false},
	0xFC: {"NOP", AddrAbsoluteX, 3, 4, true},
	0xFD: {"SBC", AddrAbsoluteX, 3, 4, true},
	0xFE: {"INC", AddrAbsoluteX, 3, 7, false},
	0xFF: {"ISB", AddrAbsoluteX, 3, 7, false},
}

// LookupOpcode returns the static metadata for an opcode byte. The table is
// total over all 256 byte values, so this never fails.
func LookupOpcode(b uint8) Opcode {
	return opcodeTable[b]
}
