package m68k

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otleylabs/gencore/size"
)

// memBus is a flat big-endian byte-addressable bus.Bus32 for tests, the
// same shape the pack's other CPU tests back their core with.
type memBus struct {
	mem [1 << 16]byte
}

func (m *memBus) Read(addr uint32, sz size.Size) (uint32, error) {
	switch sz {
	case size.Byte:
		return uint32(m.mem[addr]), nil
	case size.Word:
		return uint32(m.mem[addr])<<8 | uint32(m.mem[addr+1]), nil
	default:
		return uint32(m.mem[addr])<<24 | uint32(m.mem[addr+1])<<16 |
			uint32(m.mem[addr+2])<<8 | uint32(m.mem[addr+3]), nil
	}
}

func (m *memBus) Write(addr uint32, val uint32, sz size.Size) error {
	switch sz {
	case size.Byte:
		m.mem[addr] = byte(val)
	case size.Word:
		m.mem[addr] = byte(val >> 8)
		m.mem[addr+1] = byte(val)
	default:
		m.mem[addr] = byte(val >> 24)
		m.mem[addr+1] = byte(val >> 16)
		m.mem[addr+2] = byte(val >> 8)
		m.mem[addr+3] = byte(val)
	}
	return nil
}

func (m *memBus) putWord(addr uint32, v uint16) {
	m.mem[addr] = byte(v >> 8)
	m.mem[addr+1] = byte(v)
}

// newTestCPU wires a CPU against a fresh bus with SSP=0x8000 and the
// program starting at 0x1000, skipping the need for every test to write
// its own reset vector.
func newTestCPU(t *testing.T) (*CPU, *memBus) {
	t.Helper()
	b := &memBus{}
	b.putWord(0, 0x0000)
	b.putWord(2, 0x8000)
	b.putWord(4, 0x0000)
	b.putWord(6, 0x1000)
	c := New(b)
	return c, b
}

// stepInstruction executes exactly one fetch-decode-execute cycle and then
// drains the charged cycle count, the timing shape Step()'s doc comment
// describes.
func stepInstruction(t *testing.T, c *CPU) {
	t.Helper()
	require.NoError(t, c.Step())
	for c.remaining > 0 {
		require.NoError(t, c.Step())
	}
}

func TestResetReadsVectorTable(t *testing.T) {
	c, _ := newTestCPU(t)
	require.Equal(t, uint32(0x8000), c.Reg.A[7])
	require.Equal(t, uint32(0x8000), c.Reg.SSP)
	require.Equal(t, uint32(0x1000), c.Reg.PC)
	require.True(t, c.Supervisor())
}

func TestMoveLongImmediateLoad(t *testing.T) {
	c, b := newTestCPU(t)
	// MOVE.L #$12345678,D0
	b.putWord(0x1000, 0x203C)
	b.putWord(0x1002, 0x1234)
	b.putWord(0x1004, 0x5678)

	stepInstruction(t, c)

	require.Equal(t, uint32(0x12345678), c.Reg.D[0])
	require.False(t, c.flag(FlagZ))
	require.False(t, c.flag(FlagN))
}

func TestAddByteOverflowAndCarry(t *testing.T) {
	c, b := newTestCPU(t)
	c.Reg.D[0] = 0x7F
	c.Reg.D[1] = 0x01
	// ADD.B D1,D0
	b.putWord(0x1000, 0xD001)

	stepInstruction(t, c)

	require.Equal(t, uint32(0x80), c.Reg.D[0]&0xFF)
	require.True(t, c.flag(FlagV), "signed overflow: pos+pos produced a negative result")
	require.True(t, c.flag(FlagN))
	require.False(t, c.flag(FlagC), "no unsigned carry out of bit 7 for 0x7F+0x01")
}

func TestCmpSetsNegativeFromResultNotZeroTest(t *testing.T) {
	c, b := newTestCPU(t)
	c.Reg.D[0] = 0x00000001
	c.Reg.D[1] = 0x00000005
	// CMP.L D1,D0 -> D0 - D1 = 1 - 5 = -4, negative, non-zero
	b.putWord(0x1000, 0xB081)

	stepInstruction(t, c)

	require.True(t, c.flag(FlagN))
	require.False(t, c.flag(FlagZ))
}

func TestDivsSignedDivision(t *testing.T) {
	c, b := newTestCPU(t)
	d0, d1 := int32(-17), int32(5)
	c.Reg.D[0] = uint32(d0)
	c.Reg.D[1] = uint32(d1)
	// DIVS.W D1,D0
	b.putWord(0x1000, 0x81C1)

	stepInstruction(t, c)

	quot := int16(c.Reg.D[0] & 0xFFFF)
	rem := int16(c.Reg.D[0] >> 16)
	require.Equal(t, int16(-3), quot)
	require.Equal(t, int16(-2), rem)
}

func TestDivsZeroDivideTraps(t *testing.T) {
	c, b := newTestCPU(t)
	b.putWord(0, 0x0000)
	b.putWord(2, 0x8000)
	// vector 5 (zero divide) handler at 0x2000
	b.putWord(0x14, 0x0000)
	b.putWord(0x16, 0x2000)

	c.Reg.D[0] = 10
	c.Reg.D[1] = 0
	b.putWord(0x1000, 0x81C1) // DIVS.W D1,D0

	stepInstruction(t, c)

	require.Equal(t, uint32(0x2000), c.Reg.PC)
	require.True(t, c.Supervisor())
}

func TestLinkUnlkRoundTrip(t *testing.T) {
	c, b := newTestCPU(t)
	c.Reg.A[6] = 0xDEAD
	origSP := c.Reg.A[7]

	// LINK A6,#-8
	b.putWord(0x1000, 0x4E56)
	b.putWord(0x1002, 0xFFF8)
	// UNLK A6
	b.putWord(0x1004, 0x4E5E)

	stepInstruction(t, c)
	require.Equal(t, origSP-4, c.Reg.A[6])
	require.Equal(t, c.Reg.A[6]-8, c.Reg.A[7])

	stepInstruction(t, c)
	require.Equal(t, uint32(0xDEAD), c.Reg.A[6])
	require.Equal(t, origSP, c.Reg.A[7])
}

func TestSupervisorUserSwapIsInvolution(t *testing.T) {
	c, _ := newTestCPU(t)
	c.Reg.USP = 0x4000
	ssp := c.Reg.A[7]

	c.setSR(c.Reg.SR &^ FlagS) // drop to user mode
	require.False(t, c.Supervisor())
	require.Equal(t, uint32(0x4000), c.Reg.A[7])
	require.Equal(t, ssp, c.Reg.SSP)

	c.setSR(c.Reg.SR | FlagS) // back to supervisor
	require.True(t, c.Supervisor())
	require.Equal(t, ssp, c.Reg.A[7])
	require.Equal(t, uint32(0x4000), c.Reg.USP)
}

func TestBraLoop(t *testing.T) {
	c, b := newTestCPU(t)
	c.Reg.D[0] = 3
	// loop: SUBQ.L #1,D0 ; BNE loop ; opcode after loop is NOP
	b.putWord(0x1000, 0x5380) // SUBQ.L #1,D0
	b.putWord(0x1002, 0x66FC) // BNE -4 (back to 0x1000)
	b.putWord(0x1004, 0x4E71) // NOP

	for i := 0; i < 3; i++ {
		stepInstruction(t, c)
		stepInstruction(t, c)
	}
	require.Equal(t, uint32(0), c.Reg.D[0])
	require.Equal(t, uint32(0x1004), c.Reg.PC)
}

func TestMovemStoreLoadRoundTrip(t *testing.T) {
	c, b := newTestCPU(t)
	c.Reg.D[0] = 0x11111111
	c.Reg.D[1] = 0x22222222
	c.Reg.A[2] = 0x33333333
	c.Reg.A[6] = 0x3000

	// MOVEM.L D0/D1/A2,-(A6): pre-decrement mask bits run A7..A0,D7..D0,
	// so D0 is bit15, D1 is bit14, A2 is bit5.
	b.putWord(0x1000, 0x48E6)
	b.putWord(0x1002, 0xC020)
	// MOVEM.L (A6)+,D2/D3/A4: every other mode runs D0..D7,A0..A7, so D2
	// is bit2, D3 is bit3, A4 is bit12.
	b.putWord(0x1004, 0x4CDE)
	b.putWord(0x1006, 0x100C)

	stepInstruction(t, c)
	require.Equal(t, uint32(0x3000-12), c.Reg.A[6])

	stepInstruction(t, c)
	require.Equal(t, uint32(0x3000), c.Reg.A[6])
	require.Equal(t, c.Reg.D[0], c.Reg.D[2])
	require.Equal(t, c.Reg.D[1], c.Reg.D[3])
	require.Equal(t, uint32(0x33333333), c.Reg.A[4])
}
