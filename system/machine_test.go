package system

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMachineResetsBothCores(t *testing.T) {
	mach := NewMachine(0x10000)
	require.NotNil(t, mach.M68K)
	require.NotNil(t, mach.Z80)
	require.Equal(t, uint16(0xFFFF), mach.Z80.Reg.SP)
}

func TestStepBothAdvancesZ80ByRatioPerM68KStep(t *testing.T) {
	mach := NewMachine(0x10000)
	mem := mach.Bus.Memory()

	// M68K reset vector: SSP at 0, initial PC points at a NOP loop.
	mem[0], mem[1], mem[2], mem[3] = 0x00, 0x00, 0x00, 0x08
	mem[4], mem[5], mem[6], mem[7] = 0x00, 0x00, 0x00, 0x08
	mem[8], mem[9] = 0x4E, 0x71 // NOP
	mach.M68K.Reset()

	startZ80PC := mach.Z80.Reg.PC

	require.NoError(t, mach.StepBoth(3))

	require.Equal(t, uint32(0x0A), mach.M68K.Reg.PC, "one NOP advances the M68K PC by the 2-byte opcode word")
	require.NotEqual(t, startZ80PC, mach.Z80.Reg.PC, "three Z80 NOPs should have advanced its PC")
}
