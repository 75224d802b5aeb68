package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// debugModel is the bubbletea model backing Debug: a single-step TUI that
// renders a memory-page table, register status, and the decoded opcode
// about to execute, advancing one instruction per keypress.
type debugModel struct {
	cpu     *CPU
	program []uint8
	offset  uint16

	prevPC uint16
	lines  []string
}

func (m debugModel) Init() tea.Cmd {
	m.cpu.Load(m.program, m.offset)
	return nil
}

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if m.cpu.Halted {
				return m, nil
			}
			m.prevPC = m.cpu.PC
			m.lines = append(m.lines, Trace(m.cpu))
			m.cpu.Step()
		}
	}
	return m, nil
}

func (m debugModel) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.cpu.read(addr)
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%02X] ", b)
		} else {
			s += fmt.Sprintf(" %02X  ", b)
		}
	}
	return s
}

func (m debugModel) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %X  ", b)
	}

	rows := []string{header}
	base := m.cpu.PC &^ 0xF
	for i := -2; i <= 2; i++ {
		rows = append(rows, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(rows, "\n")
}

func (m debugModel) status() string {
	bits := []struct {
		name string
		set  bool
	}{
		{"N", m.cpu.GetFlag(FlagNegative)},
		{"V", m.cpu.GetFlag(FlagOverflow)},
		{"-", m.cpu.GetFlag(FlagUnused)},
		{"B", m.cpu.GetFlag(FlagBreak)},
		{"D", m.cpu.GetFlag(FlagDecimal)},
		{"I", m.cpu.GetFlag(FlagInterrupt)},
		{"Z", m.cpu.GetFlag(FlagZero)},
		{"C", m.cpu.GetFlag(FlagCarry)},
	}

	var names, flags strings.Builder
	for _, b := range bits {
		fmt.Fprintf(&names, "%s ", b.name)
		if b.set {
			flags.WriteString("/ ")
		} else {
			flags.WriteString("  ")
		}
	}

	return fmt.Sprintf(`
PC: %04X (prev %04X)
 A: %02X
 X: %02X
 Y: %02X
SP: %02X
%s
%s`,
		m.cpu.PC, m.prevPC, m.cpu.A, m.cpu.X, m.cpu.Y, m.cpu.SP,
		names.String(), flags.String())
}

func (m debugModel) View() string {
	trail := m.lines
	if len(trail) > 10 {
		trail = trail[len(trail)-10:]
	}

	opcode := m.cpu.read(m.cpu.PC)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		strings.Join(trail, "\n"),
		"",
		spew.Sdump(opcodeTable[opcode]),
	)
}

// Debug loads program into memory at offset and starts an interactive,
// single-step TUI: space/j advances one instruction, q quits. Useful for
// walking a short program or a suspicious region of a loaded cartridge
// by hand.
func (c *CPU) Debug(program []uint8, offset uint16) {
	p, err := tea.NewProgram(debugModel{
		cpu:     c,
		program: program,
		offset:  offset,
	}).Run()
	if err != nil {
		panic(err)
	}
	_ = p.(debugModel)
}
