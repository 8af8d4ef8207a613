// Command gencore is a thin external tracer over the primary and secondary
// CPU cores: a disasm subcommand renders a binary image as text using the
// pure Disassemble functions, and a trace subcommand drives a Machine one
// StepBoth call at a time and prints register state after each step, the
// "external tracer" role described for a host alongside this core.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/otleylabs/gencore/m68k"
	"github.com/otleylabs/gencore/z80"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gencore",
		Short: "Dual-CPU core disassembler and instruction tracer",
	}

	rootCmd.AddCommand(newDisasmCmd())
	rootCmd.AddCommand(newTraceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDisasmCmd() *cobra.Command {
	var core string
	var base uint32
	var count int

	cmd := &cobra.Command{
		Use:   "disasm <file>",
		Short: "Disassemble a raw binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			switch core {
			case "m68k":
				return disasmM68K(w, data, base, count)
			case "z80":
				return disasmZ80(w, data, uint16(base), count)
			default:
				return fmt.Errorf("unknown --core %q (want m68k or z80)", core)
			}
		},
	}
	cmd.Flags().StringVar(&core, "core", "m68k", "which core's instruction set to decode: m68k or z80")
	cmd.Flags().Uint32Var(&base, "base", 0, "address of the first byte in the image")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many instructions (0 = whole image)")
	return cmd
}

func disasmM68K(w *bufio.Writer, data []byte, base uint32, count int) error {
	pos := 0
	fetch16 := func() uint16 {
		if pos+2 > len(data) {
			return 0
		}
		v := uint16(data[pos])<<8 | uint16(data[pos+1])
		pos += 2
		return v
	}

	for n := 0; pos+2 <= len(data) && (count == 0 || n < count); n++ {
		addr := base + uint32(pos)
		opcode := fetch16()
		text, _ := m68k.Disassemble(opcode, fetch16)
		fmt.Fprintf(w, "%08X  %s\n", addr, text)
	}
	return nil
}

func disasmZ80(w *bufio.Writer, data []byte, base uint16, count int) error {
	pos := 0
	fetch8 := func() byte {
		if pos >= len(data) {
			return 0
		}
		v := data[pos]
		pos++
		return v
	}

	for n := 0; pos < len(data) && (count == 0 || n < count); n++ {
		addr := base + uint16(pos)
		opcode := fetch8()
		text, _ := z80.Disassemble(opcode, fetch8)
		fmt.Fprintf(w, "%04X  %s\n", addr, text)
	}
	return nil
}
