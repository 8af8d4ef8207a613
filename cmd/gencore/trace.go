package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/otleylabs/gencore/system"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newTraceCmd() *cobra.Command {
	var image string
	var loadAddr uint32
	var memSize int
	var ratio int
	var steps int
	var interactive bool
	var dump bool

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Step both cores against a shared memory image and print state",
		RunE: func(cmd *cobra.Command, args []string) error {
			mach := system.NewMachine(memSize)

			if image != "" {
				data, err := os.ReadFile(image)
				if err != nil {
					return fmt.Errorf("reading image: %w", err)
				}
				copy(mach.Bus.Memory()[loadAddr:], data)
				mach.M68K.Reset()
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()

			if interactive {
				return runInteractive(mach, out, steps, dump)
			}
			return runBatch(mach, out, ratio, steps, dump)
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "raw binary to load before tracing (optional)")
	cmd.Flags().Uint32Var(&loadAddr, "load-addr", 0, "address to load --image at")
	cmd.Flags().IntVar(&memSize, "mem", 1<<20, "backing memory size in bytes")
	cmd.Flags().IntVar(&ratio, "ratio", 2, "secondary-CPU steps per primary-CPU step")
	cmd.Flags().IntVar(&steps, "steps", 10, "number of primary-CPU steps to trace")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "single-step interactively, one key per step")
	cmd.Flags().BoolVar(&dump, "dump", false, "print a full register dump after each step instead of a one-liner")
	return cmd
}

func runBatch(mach *system.Machine, out *bufio.Writer, ratio, steps int, dump bool) error {
	for i := 0; i < steps; i++ {
		if err := mach.StepBoth(ratio); err != nil {
			fmt.Fprintf(out, "step %d: %v\n", i, err)
			return nil
		}
		printState(out, mach, dump)
	}
	return nil
}

// runInteractive puts the controlling terminal into raw mode so a single
// keypress advances one StepBoth step without waiting for Enter.
func runInteractive(mach *system.Machine, out *bufio.Writer, steps int, dump bool) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(out, "stdin is not a terminal, falling back to batch tracing")
		return runBatch(mach, out, 1, steps, dump)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	buf := make([]byte, 1)
	for i := 0; i < steps; i++ {
		fmt.Fprint(out, "-- press any key to step, q to quit --\r\n")
		out.Flush()
		if _, err := io.ReadFull(os.Stdin, buf); err != nil {
			return nil
		}
		if buf[0] == 'q' {
			return nil
		}
		if err := mach.StepBoth(1); err != nil {
			fmt.Fprintf(out, "step %d: %v\r\n", i, err)
			return nil
		}
		printStateRaw(out, mach, dump)
	}
	return nil
}

func printState(out *bufio.Writer, mach *system.Machine, dump bool) {
	if dump {
		fmt.Fprint(out, mach.M68K.Reg.Dump())
		fmt.Fprint(out, mach.Z80.Reg.Dump())
		return
	}
	fmt.Fprintf(out, "m68k %s | z80 %s\n", mach.M68K.Reg.String(), mach.Z80.Reg.String())
}

// printStateRaw is printState with \r\n line endings, needed while the
// terminal is in raw mode where a bare \n does not return the cursor.
func printStateRaw(out *bufio.Writer, mach *system.Machine, dump bool) {
	if dump {
		for _, line := range splitLines(mach.M68K.Reg.Dump()) {
			fmt.Fprint(out, line, "\r\n")
		}
		for _, line := range splitLines(mach.Z80.Reg.Dump()) {
			fmt.Fprint(out, line, "\r\n")
		}
		return
	}
	fmt.Fprintf(out, "m68k %s | z80 %s\r\n", mach.M68K.Reg.String(), mach.Z80.Reg.String())
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
