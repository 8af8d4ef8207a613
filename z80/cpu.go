// Package z80 implements the secondary, Zilog-Z80-family CPU core: an
// eight-bit processor with a duplicated main/alternate register bank, two
// sixteen-bit index registers, and a five-table opcode dispatch (root, CB,
// ED, DD, FD, plus the doubly-prefixed DDCB/FDCB forms). It shares the
// memory bus with the primary core through bus.Bus16 and exposes its own
// eight-bit I/O port space via PortBus.
package z80

import (
	"fmt"
	"log"

	"github.com/otleylabs/gencore/bus"
	"github.com/otleylabs/gencore/size"
)

const (
	FlagC  byte = 0x01
	FlagN  byte = 0x02
	FlagPV byte = 0x04
	FlagX  byte = 0x08
	FlagH  byte = 0x10
	FlagY  byte = 0x20
	FlagZ  byte = 0x40
	FlagS  byte = 0x80
)

// InterruptMode selects how a maskable interrupt is serviced; see Step.
type InterruptMode byte

const (
	IM0 InterruptMode = iota
	IM1
	IM2
)

// Registers holds both register banks. AF/BC/DE/HL is the bank selected by
// EXX and EX AF,AF'; the primed fields are always the alternate bank.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	A2, F2 byte
	B2, C2 byte
	D2, E2 byte
	H2, L2 byte

	IX, IY uint16
	SP, PC uint16
	I, R   byte
}

// PortBus is the eight-bit I/O address space IN/OUT instructions address;
// kept separate from bus.Bus16 since Z80 ports and memory are distinct
// spaces on real hardware.
type PortBus interface {
	In(port uint16) byte
	Out(port uint16, value byte)
}

type nullPorts struct{}

func (nullPorts) In(uint16) byte     { return 0xFF }
func (nullPorts) Out(uint16, byte)   {}

// CPU is the secondary processor core.
type CPU struct {
	Reg Registers

	bus   bus.Bus16
	ports PortBus
	log   *log.Logger

	im   InterruptMode
	iff1 bool
	iff2 bool

	halted     bool
	irqLine    bool
	irqVector  byte
	nmiLine    bool
	nmiLatched bool
	iffDelay   int

	ir uint16 // opcode byte of the instruction currently executing, widened for prefix dispatch
}

// opFunc executes one instruction body and returns the T-state count it
// consumed, including any prefix-fetch overhead the caller already paid.
type opFunc func(*CPU) int

type Option func(*CPU)

func WithLogger(l *log.Logger) Option {
	return func(c *CPU) {
		if l != nil {
			c.log = l
		}
	}
}

func WithPorts(p PortBus) Option {
	return func(c *CPU) { c.ports = p }
}

func New(b bus.Bus16, opts ...Option) *CPU {
	c := &CPU{bus: b, ports: nullPorts{}, log: log.New(discardWriter{}, "", 0)}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Reset puts the CPU in its post-RESET-line state: PC/I/R cleared, SP at
// the top of the address space, interrupts disabled, IM0 selected.
func (c *CPU) Reset() {
	c.Reg = Registers{SP: 0xFFFF}
	c.im = IM0
	c.iff1 = false
	c.iff2 = false
	c.halted = false
	c.irqLine = false
	c.nmiLine = false
	c.nmiLatched = false
	c.iffDelay = 0
}

func (c *CPU) Halted() bool { return c.halted }

// SetIRQLine reflects the level-triggered /INT line's current state.
func (c *CPU) SetIRQLine(asserted bool) { c.irqLine = asserted }

// SetIRQVector supplies the byte an IM2 interrupt acknowledge cycle would
// read from the data bus; in IM0 it is interpreted as a one-byte RST
// instruction placed on the bus by the interrupting device.
func (c *CPU) SetIRQVector(v byte) { c.irqVector = v }

// PulseNMI latches a non-maskable interrupt, serviced on the next Step.
func (c *CPU) PulseNMI() { c.nmiLatched = true }

func (c *CPU) flag(mask byte) bool      { return c.Reg.F&mask != 0 }
func (c *CPU) setFlag(mask byte, on bool) {
	if on {
		c.Reg.F |= mask
	} else {
		c.Reg.F &^= mask
	}
}

func (c *CPU) bc() uint16 { return uint16(c.Reg.B)<<8 | uint16(c.Reg.C) }
func (c *CPU) de() uint16 { return uint16(c.Reg.D)<<8 | uint16(c.Reg.E) }
func (c *CPU) hl() uint16 { return uint16(c.Reg.H)<<8 | uint16(c.Reg.L) }
func (c *CPU) af() uint16 { return uint16(c.Reg.A)<<8 | uint16(c.Reg.F) }

func (c *CPU) setBC(v uint16) { c.Reg.B, c.Reg.C = byte(v>>8), byte(v) }
func (c *CPU) setDE(v uint16) { c.Reg.D, c.Reg.E = byte(v>>8), byte(v) }
func (c *CPU) setHL(v uint16) { c.Reg.H, c.Reg.L = byte(v>>8), byte(v) }
func (c *CPU) setAF(v uint16) { c.Reg.A, c.Reg.F = byte(v>>8), byte(v) }

func (c *CPU) readMem(addr uint16) byte {
	v, err := c.bus.Read(addr, size.Byte)
	if err != nil {
		c.log.Printf("z80: bus read fault at %#x: %v", addr, err)
		return 0xFF
	}
	return byte(v)
}

func (c *CPU) writeMem(addr uint16, v byte) {
	if err := c.bus.Write(addr, uint16(v), size.Byte); err != nil {
		c.log.Printf("z80: bus write fault at %#x: %v", addr, err)
	}
}

func (c *CPU) fetchByte() byte {
	v := c.readMem(c.Reg.PC)
	c.Reg.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push(v uint16) {
	c.Reg.SP--
	c.writeMem(c.Reg.SP, byte(v>>8))
	c.Reg.SP--
	c.writeMem(c.Reg.SP, byte(v))
}

func (c *CPU) pop() uint16 {
	lo := c.readMem(c.Reg.SP)
	c.Reg.SP++
	hi := c.readMem(c.Reg.SP)
	c.Reg.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// String renders the register file for diagnostics, in the same spirit as
// the primary core's register dump.
func (c *CPU) String() string {
	return fmt.Sprintf("AF=%04x BC=%04x DE=%04x HL=%04x IX=%04x IY=%04x SP=%04x PC=%04x IFF1=%v IFF2=%v IM=%d",
		c.af(), c.bc(), c.de(), c.hl(), c.Reg.IX, c.Reg.IY, c.Reg.SP, c.Reg.PC, c.iff1, c.iff2, c.im)
}
