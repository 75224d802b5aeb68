package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yoshiomiyamaegones/pkg/cartridge"
	"github.com/yoshiomiyamaegones/pkg/cpu"
	"github.com/yoshiomiyamaegones/pkg/gui"
	"github.com/yoshiomiyamaegones/pkg/logger"
	"github.com/yoshiomiyamaegones/pkg/nes"
)

// DebugMode is set from --debug; nothing outside this file reads it.
var DebugMode bool

var (
	logLevel   string
	logFile    string
	cpuLog     bool
	ppuLog     bool
	apuLog     bool
	mapperLog  bool
	headless   bool
	testFrames int
	debugMode  bool
	debugAddr  uint16
)

func main() {
	root := &cobra.Command{
		Use:   "gones <rom_file>",
		Short: "GoNES - a NES emulator",
		Long: "GoNES emulates the NES 6502 CPU, PPU, and APU and plays iNES ROMs.\n\n" +
			"Controls:\n" +
			"  Z - A button\n" +
			"  X - B button\n" +
			"  A - Select\n" +
			"  S - Start\n" +
			"  Arrow keys - D-pad\n" +
			"  ESC - Quit",
		Args: cobra.ExactArgs(1),
		RunE: runEmulator,
	}

	root.Flags().StringVar(&logLevel, "log-level", "info", "Log level (off, error, warn, info, debug, trace)")
	root.Flags().StringVar(&logFile, "log-file", "", "Log file path (empty for stdout)")
	root.Flags().BoolVar(&cpuLog, "cpu-log", false, "Enable CPU instruction logging")
	root.Flags().BoolVar(&ppuLog, "ppu-log", false, "Enable PPU logging")
	root.Flags().BoolVar(&apuLog, "apu-log", false, "Enable APU logging")
	root.Flags().BoolVar(&mapperLog, "mapper-log", false, "Enable mapper logging")
	root.Flags().BoolVar(&headless, "headless", false, "Run in headless mode for testing")
	root.Flags().IntVar(&testFrames, "test-frames", 600, "Number of frames to run in headless mode")
	root.Flags().BoolVar(&debugMode, "debug", false, "Enable extra debug output (reduces performance)")

	debugCmd := &cobra.Command{
		Use:   "debug <rom_file>",
		Short: "Load a ROM's PRG bank and step it in the interactive CPU debugger",
		Args:  cobra.ExactArgs(1),
		RunE:  runDebugger,
	}
	debugCmd.Flags().Uint16Var(&debugAddr, "addr", 0x8000, "address to load the PRG bank at")
	root.AddCommand(debugCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEmulator(_ *cobra.Command, args []string) error {
	romFile := args[0]

	level := logger.GetLogLevelFromString(logLevel)
	if err := logger.Initialize(level, logFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.SetCPULogging(cpuLog)
	logger.SetPPULogging(ppuLog)
	logger.SetAPULogging(apuLog)
	logger.SetMapperLogging(mapperLog)

	DebugMode = debugMode

	logger.LogInfo("GoNES Emulator starting...")
	logger.LogInfo("Log level: %s", logLevel)
	if logFile != "" {
		logger.LogInfo("Logging to file: %s", logFile)
	}

	if _, err := os.Stat(romFile); os.IsNotExist(err) {
		log.Fatalf("ROM file not found: %s", romFile)
	}

	file, err := os.Open(romFile)
	if err != nil {
		log.Fatalf("Failed to open ROM file: %v", err)
	}
	defer file.Close()

	cart, err := cartridge.LoadFromReader(file)
	if err != nil {
		logger.LogError("Failed to load ROM: %v", err)
		log.Fatalf("Failed to load ROM: %v", err)
	}

	mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)

	logger.LogInfo("Loaded ROM: %s", filepath.Base(romFile))
	logger.LogInfo("Mapper: %d", mapperNumber)
	logger.LogInfo("PRG ROM: %d KB", len(cart.PRGROM)/1024)
	if len(cart.CHRROM) > 0 {
		logger.LogInfo("CHR ROM: %d KB", len(cart.CHRROM)/1024)
	} else {
		logger.LogInfo("CHR RAM: %d KB", len(cart.CHRRAM)/1024)
	}

	logger.LogInfo("Creating NES system...")
	nesSystem := nes.NewNES()
	nesSystem.LoadCartridge(cart)
	nesSystem.Reset()
	logger.LogInfo("NES system initialized")

	if headless {
		runHeadless(nesSystem, testFrames)
		return nil
	}

	logger.LogInfo("Creating GUI...")
	nesGUI, err := gui.NewNESGUI(nesSystem)
	if err != nil {
		logger.LogError("Failed to create GUI: %v", err)
		log.Fatalf("Failed to create GUI: %v", err)
	}
	defer nesGUI.Destroy()

	logger.LogInfo("Starting emulator...")
	nesGUI.Run()
	logger.LogInfo("Emulator stopped")
	return nil
}

// runDebugger loads a ROM's PRG bank directly into a bare CPU (backed by
// flat RAM, not the full NES memory map) and drops into the interactive
// single-step TUI. This is for walking suspicious PRG code by hand, not
// for running a game - PPU/APU/mapper registers are not wired.
func runDebugger(_ *cobra.Command, args []string) error {
	romFile := args[0]

	file, err := os.Open(romFile)
	if err != nil {
		return fmt.Errorf("open ROM: %w", err)
	}
	defer file.Close()

	cart, err := cartridge.LoadFromReader(file)
	if err != nil {
		return fmt.Errorf("load ROM: %w", err)
	}

	c := cpu.New(newFlatBus())
	c.Debug(cart.PRGROM, debugAddr)
	return nil
}

// flatBus is a minimal cpu.Bus over a plain 64KB array, used only by the
// standalone "debug" subcommand where no PPU/APU/mapper is present.
type flatBus struct {
	ram [0x10000]uint8
}

func newFlatBus() *flatBus { return &flatBus{} }

func (b *flatBus) Read(addr uint16) uint8          { return b.ram[addr] }
func (b *flatBus) Write(addr uint16, value uint8)  { b.ram[addr] = value }
func (b *flatBus) Tick(cycles int)                 {}
func (b *flatBus) PollNMI() bool                   { return false }
func (b *flatBus) ReadU16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

func runHeadless(nesSystem *nes.NES, maxFrames int) {
	logger.LogInfo("Starting headless mode for %d frames", maxFrames)

	startTime := time.Now()

	for frame := 0; frame < maxFrames; frame++ {
		nesSystem.StepFrame()
	}

	elapsed := time.Since(startTime)
	logger.LogInfo("Headless execution completed in %v", elapsed)

	frameBuffer := nesSystem.GetDisplayFramebufferRaw()
	analyzeFrameBuffer(frameBuffer, maxFrames-1)
}

func saveFrameBuffer(frameBuffer []uint32, filename string) {
	file, err := os.Create(filename)
	if err != nil {
		logger.LogError("Error creating file %s: %v", filename, err)
		return
	}
	defer file.Close()

	for _, pixel := range frameBuffer {
		file.Write([]byte{
			byte(pixel >> 24), // A
			byte(pixel >> 16), // R
			byte(pixel >> 8),  // G
			byte(pixel),       // B
		})
	}

	logger.LogInfo("Frame buffer saved: %s (%d bytes)", filename, len(frameBuffer)*4)
}

func analyzeFrameBuffer(frameBuffer []uint32, frame int) {
	pixelCounts := make(map[uint32]int)
	totalPixels := len(frameBuffer)

	for _, pixel := range frameBuffer {
		pixelCounts[pixel]++
	}

	logger.LogInfo("Frame %d analysis:", frame)
	logger.LogInfo("  Total pixels: %d", totalPixels)
	logger.LogInfo("  Unique colors: %d", len(pixelCounts))

	for color, count := range pixelCounts {
		percentage := float64(count) / float64(totalPixels) * 100
		if percentage > 1.0 {
			logger.LogInfo("  Color 0x%08X: %d pixels (%.1f%%)", color, count, percentage)
		}
	}

	nonBgCount := 0
	for color, count := range pixelCounts {
		if color != 0xFF050505 {
			nonBgCount += count
		}
	}

	if nonBgCount > 0 {
		logger.LogInfo("  Non-background pixels: %d (%.1f%%)",
			nonBgCount, float64(nonBgCount)/float64(totalPixels)*100)
	} else {
		logger.LogInfo("  All pixels are background color")
	}
}

func countNonBackgroundPixels(frameBuffer []uint32) int {
	count := 0
	bgColor := uint32(0xFF050505)
	blackColor := uint32(0xFF000000)
	zeroColor := uint32(0x00000000)

	for _, pixel := range frameBuffer {
		if pixel != bgColor && pixel != blackColor && pixel != zeroColor {
			count++
		}
	}
	return count
}
