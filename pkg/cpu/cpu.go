package cpu

import (
	"github.com/yoshiomiyamaegones/pkg/logger"
)

// Bus is everything the CPU needs from the rest of the system: byte and
// word access to the 64KB address space, a cycle clock that drives
// whatever else shares that clock (PPU, APU, mappers), and an NMI line the
// CPU polls once per instruction boundary. pkg/memory.Memory implements
// this; the CPU never imports pkg/ppu or pkg/apu directly.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	ReadU16(addr uint16) uint16
	Tick(cycles int)
	PollNMI() bool
}

// CPU represents the 6502 processor
type CPU struct {
	// Registers
	A  uint8  // Accumulator
	X  uint8  // X register
	Y  uint8  // Y register
	SP uint8  // Stack pointer
	PC uint16 // Program counter
	P  uint8  // Status register

	// Memory interface
	Memory Bus

	// Cycle counting
	Cycles int

	// Interrupt flags
	NMI bool
	IRQ bool

	// Halted is set by BRK: the simplified run-loop contract treats BRK
	// as "stop", not as a real interrupt-through-$FFFE sequence. Run and
	// RunWithCallback check this after every Step.
	Halted bool

	// Debug fields for freeze detection
	lastPC       uint16
	stuckCounter int
}

// Status flag bits
const (
	FlagCarry     = 1 << 0 // C
	FlagZero      = 1 << 1 // Z
	FlagInterrupt = 1 << 2 // I
	FlagDecimal   = 1 << 3 // D
	FlagBreak     = 1 << 4 // B
	FlagUnused    = 1 << 5 // -
	FlagOverflow  = 1 << 6 // V
	FlagNegative  = 1 << 7 // N
)

// New creates a new CPU instance
func New(mem Bus) *CPU {
	return &CPU{
		Memory: mem,
		SP:     0xFD,
		P:      FlagUnused | FlagInterrupt,
	}
}

// Reset resets the CPU to initial state
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.Halted = false

	// Read reset vector
	c.PC = c.read16(0xFFFC)
	c.Cycles = 0
}

// Load copies program into RAM starting at addr and points PC at it,
// without touching the reset vector. Used by tests and the interactive
// debugger to run a short byte sequence directly.
func (c *CPU) Load(program []uint8, addr uint16) {
	for i, b := range program {
		c.write(addr+uint16(i), b)
	}
	c.PC = addr
}

// LoadAndRun loads program at $0600, resets registers (but not PC), and
// runs it to completion via RunWithCallback with a no-op callback.
func (c *CPU) LoadAndRun(program []uint8) {
	c.Load(program, 0x0600)
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.Halted = false
	c.Run()
}

// Run executes instructions until the CPU halts (BRK).
func (c *CPU) Run() {
	c.RunWithCallback(func(*CPU) {})
}

// RunWithCallback executes instructions until the CPU halts, invoking
// callback before each instruction is fetched. This is the hook the
// nestest trace harness uses to log CPU state ahead of every Step.
func (c *CPU) RunWithCallback(callback func(*CPU)) {
	for !c.Halted {
		callback(c)
		c.Step()
	}
}

// Step executes one instruction and returns cycles taken
func (c *CPU) Step() int {
	// Handle interrupts
	if c.NMI {
		logger.LogCPU("NMI triggered at PC=$%04X", c.PC)
		c.handleNMI()
		c.NMI = false
		c.Memory.Tick(2)
		c.Cycles += 2
		return 2
	}

	if c.IRQ && !c.getFlag(FlagInterrupt) {
		// Temporarily disable IRQ handling to prevent freezes
		c.IRQ = false // Clear IRQ to prevent infinite loop
		logger.LogCPU("IRQ triggered but disabled to prevent freeze at PC=$%04X", c.PC)
		// c.handleIRQ()
		// return 7
	}

	if nmi := c.Memory.PollNMI(); nmi {
		c.NMI = true
	}

	// Fetch instruction
	opcode := c.read(c.PC)

	c.PC++

	// Execute instruction
	cycles := c.executeInstruction(opcode)
	c.Cycles += cycles
	c.Memory.Tick(cycles)

	return cycles
}

// executeInstruction is implemented in instructions.go and instructions_illegal.go
// handleNMI and handleIRQ are implemented in interrupt.go

// Flag operations
func (c *CPU) getFlag(flag uint8) bool {
	return c.P&flag != 0
}

func (c *CPU) setFlag(flag uint8, value bool) {
	if value {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

// Memory operations
func (c *CPU) read(addr uint16) uint8 {
	return c.Memory.Read(addr)
}

func (c *CPU) write(addr uint16, value uint8) {
	c.Memory.Write(addr, value)
}

func (c *CPU) read16(addr uint16) uint16 {
	return c.Memory.ReadU16(addr)
}

// Stack operations
func (c *CPU) push(value uint8) {
	c.write(0x100|uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(0x100 | uint16(c.SP))
}

func (c *CPU) push16(value uint16) {
	c.push(uint8(value >> 8))
	c.push(uint8(value & 0xFF))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// TriggerNMI triggers a Non-Maskable Interrupt
func (c *CPU) TriggerNMI() {
	c.NMI = true
}

// TriggerIRQ triggers an Interrupt Request
func (c *CPU) TriggerIRQ() {
	c.IRQ = true
}

// GetFlag returns the state of a flag (public method for testing)
func (c *CPU) GetFlag(flag uint8) bool {
	return c.getFlag(flag)
}
