package z80

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otleylabs/gencore/size"
)

// memBus is a flat 16-bit bus.Bus16 for tests.
type memBus struct {
	mem [1 << 16]byte
}

func (m *memBus) Read(addr uint16, sz size.Size) (uint16, error) {
	if sz == size.Byte {
		return uint16(m.mem[addr]), nil
	}
	return uint16(m.mem[addr]) | uint16(m.mem[addr+1])<<8, nil
}

func (m *memBus) Write(addr uint16, val uint16, sz size.Size) error {
	if sz == size.Byte {
		m.mem[addr] = byte(val)
		return nil
	}
	m.mem[addr] = byte(val)
	m.mem[addr+1] = byte(val >> 8)
	return nil
}

func (m *memBus) putBytes(addr uint16, data ...byte) {
	copy(m.mem[addr:], data)
}

// newTestCPU wires a CPU against a fresh bus with the program starting at
// 0x0000, the address Reset() leaves PC at.
func newTestCPU(t *testing.T) (*CPU, *memBus) {
	t.Helper()
	b := &memBus{}
	c := New(b)
	return c, b
}

func TestResetState(t *testing.T) {
	c, _ := newTestCPU(t)
	require.Equal(t, uint16(0xFFFF), c.Reg.SP)
	require.Equal(t, uint16(0), c.Reg.PC)
	require.False(t, c.iff1)
	require.Equal(t, IM0, c.im)
}

func TestLdImmediateAndAluCompare(t *testing.T) {
	c, b := newTestCPU(t)
	// LD A,$10 ; CP $10
	b.putBytes(0, 0x3E, 0x10, 0xFE, 0x10)

	c.Step()
	require.Equal(t, byte(0x10), c.Reg.A)

	c.Step()
	require.True(t, c.flag(FlagZ), "CP against an equal value sets Z")
	require.False(t, c.flag(FlagS))
}

func TestCBBitSetAndReset(t *testing.T) {
	c, b := newTestCPU(t)
	// LD B,$00 ; SET 3,B (0xC0|3<<3|0=0xD8) ; RES 3,B (0x80|3<<3|0=0x98)
	b.putBytes(0, 0x06, 0x00)
	b.putBytes(2, 0xCB, 0xD8)
	b.putBytes(4, 0xCB, 0x98)

	c.Step() // LD B,$00
	require.Equal(t, byte(0x00), c.Reg.B)

	c.Step() // CB prefix dispatch, SET 3,B
	require.Equal(t, byte(0x08), c.Reg.B)

	c.Step() // CB prefix dispatch, RES 3,B
	require.Equal(t, byte(0x00), c.Reg.B)
}

func TestCBRotateUpdatesCarryAndSZP(t *testing.T) {
	c, b := newTestCPU(t)
	// LD A,$80 ; RLC A (CB 07)
	b.putBytes(0, 0x3E, 0x80, 0xCB, 0x07)

	c.Step()
	c.Step()

	require.Equal(t, byte(0x01), c.Reg.A, "0x80 rotated left wraps bit7 into bit0")
	require.True(t, c.flag(FlagC), "the bit rotated out of bit7 lands in carry")
	require.False(t, c.flag(FlagZ))
}

func TestDjnzLoop(t *testing.T) {
	c, b := newTestCPU(t)
	// LD B,$03 ; loop: NOP ; DJNZ loop ; HALT
	b.putBytes(0, 0x06, 0x03)
	b.putBytes(2, 0x00)       // NOP at 2
	b.putBytes(3, 0x10, 0xFD) // DJNZ -3 (back to address 2)
	b.putBytes(5, 0x76)       // HALT

	c.Step() // LD B,3
	require.Equal(t, byte(3), c.Reg.B)

	for i := 0; i < 3; i++ {
		c.Step() // NOP
		c.Step() // DJNZ
	}
	require.Equal(t, byte(0), c.Reg.B)
	require.Equal(t, uint16(5), c.Reg.PC)

	c.Step() // HALT
	require.True(t, c.Halted())
}

func TestLdirBlockCopy(t *testing.T) {
	c, b := newTestCPU(t)
	// Source at 0x2000: 3 bytes; dest at 0x3000.
	b.putBytes(0x2000, 0xAA, 0xBB, 0xCC)

	c.Reg.H, c.Reg.L = 0x20, 0x00 // HL = 0x2000
	c.Reg.D, c.Reg.E = 0x30, 0x00 // DE = 0x3000
	c.Reg.B, c.Reg.C = 0x00, 0x03 // BC = 3

	// ED B0 = LDIR
	b.putBytes(0, 0xED, 0xB0)

	for c.hl() != 0x2003 {
		c.Step()
	}

	require.Equal(t, byte(0xAA), b.mem[0x3000])
	require.Equal(t, byte(0xBB), b.mem[0x3001])
	require.Equal(t, byte(0xCC), b.mem[0x3002])
	require.Equal(t, uint16(0x3003), c.de())
	require.Equal(t, uint16(0), c.bc())
	require.False(t, c.flag(FlagPV), "LDIR clears P/V once BC reaches zero")
}

// TestCpirStopsOnMatchBeforeBcExhausted exercises the decrement-then-test
// BC semantics: BC is decremented to 2 (not 0) on the step that finds the
// match, so CPIR must stop via the Z flag rather than running BC to zero.
func TestCpirStopsOnMatchBeforeBcExhausted(t *testing.T) {
	c, b := newTestCPU(t)
	b.putBytes(0x2000, 0x11, 0x22, 0x33, 0x44)

	c.Reg.H, c.Reg.L = 0x20, 0x00
	c.Reg.B, c.Reg.C = 0x00, 0x04 // BC = 4
	c.Reg.A = 0x22                // matches the second byte

	b.putBytes(0, 0xED, 0xB1) // CPIR

	for i := 0; i < 2; i++ {
		c.Step()
	}

	require.Equal(t, uint16(0x2002), c.hl(), "HL advanced past the matching byte")
	require.Equal(t, uint16(2), c.bc(), "BC decremented exactly twice, not exhausted")
	require.True(t, c.flag(FlagZ), "match found")
}

func TestBlockIOInDecrementsBAndStops(t *testing.T) {
	c, b := newTestCPU(t)
	_ = b
	c.Reg.B = 0x02
	c.Reg.H, c.Reg.L = 0x40, 0x00

	c.ports = stubPorts{value: 0x5A}

	b2 := &memBus{}
	c.bus = b2
	b2.putBytes(0, 0xED, 0xB2) // INIR

	for c.Reg.B != 0 {
		c.Step()
	}

	require.Equal(t, byte(0x5A), b2.mem[0x4000])
	require.Equal(t, byte(0x5A), b2.mem[0x4001])
	require.Equal(t, uint16(0x4002), c.hl())
}

type stubPorts struct{ value byte }

func (s stubPorts) In(uint16) byte    { return s.value }
func (s stubPorts) Out(uint16, byte)  {}

func TestRetnRestoresIff1FromIff2(t *testing.T) {
	c, b := newTestCPU(t)
	c.iff2 = true
	c.iff1 = false
	c.Reg.SP = 0x8000
	c.push(0x1234)

	b.putBytes(0, 0xED, 0x45) // RETN

	c.Step()

	require.Equal(t, uint16(0x1234), c.Reg.PC)
	require.True(t, c.iff1)
}

func TestNmiTakesPriorityOverMaskableIrq(t *testing.T) {
	c, _ := newTestCPU(t)
	c.iff1 = true
	c.irqLine = true
	c.Reg.SP = 0x8000
	c.PulseNMI()

	c.Step()

	require.Equal(t, uint16(0x0066), c.Reg.PC)
	require.False(t, c.iff1, "NMI entry clears IFF1 so RETN can restore it from IFF2")
}
