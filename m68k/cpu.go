// Package m68k implements the primary, 16/32-bit CPU core of a
// Mega-Drive-class machine: an M68K-family processor with eight data
// registers, seven general address registers, dual stack pointers, and the
// twelve classic addressing modes. It is deterministic and has no
// wall-clock dependence; a host drives it one Step() at a time.
package m68k

import (
	"log"
	"io"

	"github.com/otleylabs/gencore/bus"
	"github.com/otleylabs/gencore/size"
)

// Status register bits.
const (
	FlagC uint16 = 1 << iota // Carry
	FlagV                    // Overflow
	FlagZ                    // Zero
	FlagN                    // Negative
	FlagX                    // Extend

	FlagS uint16 = 1 << 13 // Supervisor mode
	FlagT uint16 = 1 << 15 // Trace mode
)

const numInterruptMasked = 7 // SR bits 8-10: interrupt priority mask

// Registers holds the programmer-visible state of the primary CPU.
type Registers struct {
	D   [8]uint32 // Data registers D0-D7
	A   [8]uint32 // Address registers A0-A6 and the active A7
	PC  uint32    // Program counter
	SR  uint16    // Status register (system byte + condition codes)
	USP uint32    // User stack pointer, shadowed when supervisor
	SSP uint32    // Supervisor stack pointer, shadowed when user
}

// CPU is the primary processor. It owns its register set and opcode table
// exclusively; the bus is shared with the secondary CPU and any external
// peripherals.
type CPU struct {
	Reg Registers

	bus bus.Bus32
	log *log.Logger

	ir     uint16 // currently decoded instruction word
	prevPC uint32 // PC at the start of the instruction being executed, used for fault/trace frames

	stopped       bool // set by STOP, cleared by a serviced interrupt
	halted        bool // set on an unrecoverable double fault
	inVectorFault bool // true while reading the vector table itself, so a second bus fault there halts instead of recursing

	remaining int // cycles left to charge before the next fetch

	pendingIRQ   uint8 // 0 = none, else priority level 1..7
	traceArmed   bool  // SR.T was set at this instruction's start

	// illegalHook, when non-nil, is consulted by the decoder before it
	// falls back to raising IllegalInstruction; used by tests that want to
	// probe table coverage without tripping the trap path.
	illegalHook func(opcode uint16) bool
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithLogger attaches a logger that receives one line per serviced
// exception. Without one, or with a nil logger, these are discarded.
func WithLogger(l *log.Logger) Option {
	return func(c *CPU) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a CPU wired to bus and performs a hardware reset, which reads
// the initial SSP from address 0 and the initial PC from address 4.
func New(b bus.Bus32, opts ...Option) *CPU {
	c := &CPU{bus: b, log: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

// Reset performs the documented reset entry point:
// supervisor mode, trap slots cleared, SSP/PC read from the vector table.
func (c *CPU) Reset() {
	c.Reg = Registers{SR: FlagS}
	c.stopped = false
	c.halted = false
	c.remaining = 0
	c.pendingIRQ = 0

	ssp, err := c.bus.Read(0, size.Long)
	if err == nil {
		c.Reg.A[7] = ssp
		c.Reg.SSP = ssp
	}
	pc, err := c.bus.Read(4, size.Long)
	if err == nil {
		c.Reg.PC = pc
	}
}

// Supervisor reports whether the CPU is currently in supervisor mode.
func (c *CPU) Supervisor() bool { return c.Reg.SR&FlagS != 0 }

// Halted reports whether the CPU has entered the unrecoverable double-fault
// state (a bus error while servicing the bus-error vector itself).
func (c *CPU) Halted() bool { return c.halted }

// Signal implements bus.InterruptSink: it latches level if no
// higher-priority interrupt is already pending and the CPU's current
// priority mask permits it.
func (c *CPU) Signal(level uint8) {
	if level == 0 || level > 7 {
		return
	}
	if level > c.pendingIRQ && level > c.priorityMask() {
		c.pendingIRQ = level
	}
}

func (c *CPU) priorityMask() uint8 {
	return uint8((c.Reg.SR >> 8) & numInterruptMasked)
}

// fetchPC reads one big-endian word from the bus at PC and advances PC by
// two, the extension-word fetch primitive every addressing-mode producer
// and multi-word instruction shares.
func (c *CPU) fetchPC() uint16 {
	v, err := c.bus.Read(c.Reg.PC, size.Word)
	if err != nil {
		c.fault(err)
		return 0
	}
	c.Reg.PC += 2
	return uint16(v)
}

func (c *CPU) fetchPCLong() uint32 {
	hi := c.fetchPC()
	lo := c.fetchPC()
	return uint32(hi)<<16 | uint32(lo)
}

func (c *CPU) readBus(addr uint32, sz size.Size) uint32 {
	v, err := c.bus.Read(addr, sz)
	if err != nil {
		c.fault(err)
		return 0
	}
	return v
}

func (c *CPU) writeBus(addr uint32, val uint32, sz size.Size) {
	if err := c.bus.Write(addr, val, sz); err != nil {
		c.fault(err)
	}
}

func (c *CPU) pushLong(v uint32) {
	c.Reg.A[7] -= 4
	c.writeBus(c.Reg.A[7], v, size.Long)
}

func (c *CPU) pushWord(v uint16) {
	c.Reg.A[7] -= 2
	c.writeBus(c.Reg.A[7], uint32(v), size.Word)
}

func (c *CPU) popLong() uint32 {
	v := c.readBus(c.Reg.A[7], size.Long)
	c.Reg.A[7] += 4
	return v
}

func (c *CPU) popWord() uint16 {
	v := c.readBus(c.Reg.A[7], size.Word)
	c.Reg.A[7] += 2
	return uint16(v)
}

// setSR installs a new status register value, switching the active A7
// between USP and SSP if the supervisor bit changed.
func (c *CPU) setSR(v uint16) {
	wasSup := c.Reg.SR&FlagS != 0
	isSup := v&FlagS != 0
	if wasSup && !isSup {
		c.Reg.SSP = c.Reg.A[7]
		c.Reg.A[7] = c.Reg.USP
	} else if !wasSup && isSup {
		c.Reg.USP = c.Reg.A[7]
		c.Reg.A[7] = c.Reg.SSP
	}
	c.Reg.SR = v
}
