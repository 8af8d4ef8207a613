package m68k

import "github.com/otleylabs/gencore/size"

// Exception vector indices (long words,
// base + index*4).
const (
	vecResetSSP           = 0
	vecResetPC            = 1
	vecBusError           = 2
	vecAddressError       = 3
	vecIllegalInstruction = 4
	vecZeroDivide         = 5
	vecCHK                = 6
	vecTRAPV              = 7
	vecPrivilegeViolation = 8
	vecTrace              = 9
	vecLineA              = 10
	vecLineF              = 11
	vecUninitialized      = 15
	vecSpuriousInterrupt  = 24
	vecAutoVectorBase     = 24 // vecAutoVectorBase + level, levels 1-7
	vecTrap0              = 32 // TRAP #0..#15 -> vectors 32-47
)

// group1 exceptions push the faulting instruction's address; everything
// else (group 2 faults, traps, interrupts, trace) pushes the following
// instruction's address, i.e. the current PC.
func isGroup1(vector int) bool {
	switch vector {
	case vecIllegalInstruction, vecPrivilegeViolation, vecLineA, vecLineF:
		return true
	}
	return false
}

// exception processes a trap or interrupt the way the 68000 reference
// describes: enter supervisor mode, swap to SSP, push PC then SR, read the
// 32-bit vector, jump. If vectoring itself faults (a double bus error
// servicing vecBusError), the CPU halts rather than recursing forever.
func (c *CPU) exception(vector int) {
	if c.halted {
		return
	}
	if vector == vecBusError && c.inVectorFault {
		c.halted = true
		return
	}

	pushPC := c.Reg.PC
	if isGroup1(vector) {
		pushPC = c.prevPC
	}

	oldSR := c.Reg.SR
	wasSup := c.Supervisor()
	if !wasSup {
		c.Reg.USP = c.Reg.A[7]
		c.Reg.A[7] = c.Reg.SSP
	}
	c.Reg.SR = (c.Reg.SR | FlagS) &^ FlagT

	c.pushLong(pushPC)
	c.pushWord(oldSR)

	c.inVectorFault = vector == vecBusError
	addr := c.readBus(uint32(vector)*4, size.Long)
	c.inVectorFault = false

	if addr == 0 {
		addr = c.readBus(vecUninitialized*4, size.Long)
		if addr == 0 {
			c.halted = true
			return
		}
	}
	c.Reg.PC = addr
	c.remaining += 34

	if c.log != nil {
		c.log.Printf("m68k: exception %d at pc=%#06x sr=%#04x", vector, pushPC, oldSR)
	}
}

// serviceInterrupt vectors through the auto-vector table for the pending
// external interrupt, honouring the priority mask, and raises the new
// interrupt priority into the status register per the 68000 reference.
func (c *CPU) serviceInterrupt() {
	level := c.pendingIRQ
	if level == 0 || level <= c.priorityMask() {
		return
	}
	c.pendingIRQ = 0
	c.stopped = false
	c.exception(vecAutoVectorBase + int(level))
	c.Reg.SR = (c.Reg.SR &^ (numInterruptMasked << 8)) | uint16(level)<<8
}
