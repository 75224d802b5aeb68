package cpu

import "github.com/yoshiomiyamaegones/pkg/logger"

// handleNMI services a Non-Maskable Interrupt: push PC and status (with
// the Break flag clear, since this is a hardware interrupt rather than a
// software BRK), set the Interrupt-disable flag, and jump through the NMI
// vector at $FFFA.
func (c *CPU) handleNMI() {
	logger.LogCPU("NMI triggered: PC=$%04X, pushing to stack", c.PC)
	c.push16(c.PC)
	c.push(c.P &^ FlagBreak)
	c.setFlag(FlagInterrupt, true)
	nmiVector := c.read16(0xFFFA)
	logger.LogCPU("NMI vector: $%04X, jumping to NMI handler", nmiVector)
	c.PC = nmiVector
}

// handleIRQ services a maskable Interrupt Request identically to NMI but
// through the $FFFE vector. Real hardware only services this when the
// Interrupt-disable flag is clear; callers must check that themselves.
func (c *CPU) handleIRQ() {
	c.push16(c.PC)
	c.push(c.P &^ FlagBreak)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(0xFFFE)
}
