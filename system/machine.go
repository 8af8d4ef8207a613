package system

import (
	"github.com/otleylabs/gencore/m68k"
	"github.com/otleylabs/gencore/z80"
)

// Machine wires the primary and secondary CPU around one SharedBus and
// alternates stepping them: an outer scheduler alternates calls to the
// two CPUs' step() routines in a fixed ratio derived from their
// clock-rate divisors. It is deliberately thin: no
// video, audio, or cartridge logic lives here, and it holds no
// wall-clock-derived state.
type Machine struct {
	Bus *SharedBus
	M68K *m68k.CPU
	Z80  *z80.CPU

	// z80Carry counts the Z80 steps StepBoth still owes. The ratio of Z80
	// steps per M68K step, e.g. one approximating the ~7.67MHz / ~3.58MHz
	// clock split on real Mega-Drive-class hardware, is passed by the
	// caller on every StepBoth call; StepBoth does not hardcode one.
	z80Carry int
}

// NewMachine allocates a SharedBus of the given size and the two CPUs
// against it, then resets both.
func NewMachine(memSize int) *Machine {
	b := NewSharedBus(memSize)
	mc := &Machine{
		Bus:  b,
		M68K: m68k.New(b),
		Z80:  z80.New(b.AsBus16()),
	}
	return mc
}

// StepBoth makes one M68K Step call (one primary clock cycle) and then
// ratio Z80 Step calls (each one whole Z80 instruction or interrupt
// acknowledge), so the two cores progress at the caller-chosen relative rate without
// either one blocking or depending on wall-clock time.
func (m *Machine) StepBoth(ratio int) error {
	if err := m.M68K.Step(); err != nil {
		return err
	}
	m.z80Carry += ratio
	for m.z80Carry > 0 {
		m.Z80.Step()
		m.z80Carry--
	}
	return nil
}
