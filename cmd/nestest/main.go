// Command nestest runs nestest.nes in CPU-only automation mode (PC forced
// to $C000) and either prints a nestest-format trace of every instruction
// executed or, given a golden log, diffs its own trace against it line by
// line and reports the first divergence.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/go-test/deep"
	"github.com/spf13/cobra"

	"github.com/yoshiomiyamaegones/pkg/cartridge"
	"github.com/yoshiomiyamaegones/pkg/cpu"
	"github.com/yoshiomiyamaegones/pkg/nes"
)

var (
	goldenLog string
	maxLines  int
	startPC   uint16
)

func main() {
	root := &cobra.Command{
		Use:   "nestest <rom_file>",
		Short: "Run an iNES ROM through the CPU core and trace every instruction",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().StringVar(&goldenLog, "golden", "", "path to a canonical nestest.log to diff against")
	root.Flags().IntVar(&maxLines, "max-lines", 10000, "stop after this many traced instructions")
	root.Flags().Uint16Var(&startPC, "start-pc", 0xC000, "program counter to force at reset (nestest automation entry point)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(_ *cobra.Command, args []string) error {
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

	system := nes.NewNES()
	system.LoadCartridge(cart)
	system.Reset()
	system.CPU.PC = startPC

	var actual []string
	system.CPU.RunWithCallback(func(c *cpu.CPU) {
		if len(actual) >= maxLines {
			c.Halted = true
			return
		}
		actual = append(actual, cpu.Trace(c))
	})

	if goldenLog == "" {
		for _, line := range actual {
			fmt.Println(line)
		}
		return nil
	}

	expected, err := readLines(goldenLog)
	if err != nil {
		return fmt.Errorf("read golden log: %w", err)
	}

	n := len(expected)
	if len(actual) < n {
		n = len(actual)
	}

	for i := 0; i < n; i++ {
		if diff := deep.Equal(actual[i], expected[i]); diff != nil {
			fmt.Printf("mismatch at line %d:\n  got:  %s\n  want: %s\n", i+1, actual[i], expected[i])
			os.Exit(1)
		}
	}

	if len(actual) != len(expected) {
		fmt.Printf("traced %d instructions, golden log has %d\n", len(actual), len(expected))
		os.Exit(1)
	}

	fmt.Printf("%d instructions match\n", len(actual))
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
