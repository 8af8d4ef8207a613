package m68k

import "github.com/otleylabs/gencore/size"

// operandKind tags what an Operand actually refers to.
type operandKind uint8

const (
	kindDataReg operandKind = iota
	kindAddrReg
	kindMemory
	kindImmediate
)

// Operand is the polymorphic handle an addressing mode resolves to: a
// register slice or a memory cell, carrying a size, optionally remembering
// which address register supplied its address so that pre-decrement/
// post-increment side effects remain coherent with a single resolution.
type Operand struct {
	kind operandKind
	reg  uint8
	addr uint32
	imm  uint32
	sz   size.Size

	// addrRegBackref, when >= 0, names the address register this operand's
	// address was derived from via post-increment or pre-decrement. No
	// executor needs it today (the side effect already happened at
	// resolution time) but it is retained so MOVEM's multi-register
	// transfer can assert a single coherent update.
	addrRegBackref int8
}

// Read returns the operand's value respecting its declared size.
func (o Operand) Read(c *CPU) uint32 {
	switch o.kind {
	case kindDataReg:
		return c.Reg.D[o.reg] & o.sz.Mask()
	case kindAddrReg:
		return c.Reg.A[o.reg] & o.sz.Mask()
	case kindMemory:
		return c.readBus(o.addr, o.sz)
	case kindImmediate:
		return o.imm & o.sz.Mask()
	}
	return 0
}

// Write stores val through the operand at its declared size. Data-register
// writes merge with the untouched upper bits; address-register writes
// always replace the full 32 bits; memory writes go through the bus.
func (o Operand) Write(c *CPU, val uint32) {
	switch o.kind {
	case kindDataReg:
		mask := o.sz.Mask()
		c.Reg.D[o.reg] = (c.Reg.D[o.reg] &^ mask) | (val & mask)
	case kindAddrReg:
		c.Reg.A[o.reg] = val
	case kindMemory:
		c.writeBus(o.addr, val, o.sz)
	case kindImmediate:
		// Writing to an immediate operand is a decode-time programming
		// error; the opcode table never produces this combination.
	}
}

// Address returns the resolved memory address. Valid only for memory-kind
// operands; used by LEA, PEA and the bit/shift memory forms.
func (o Operand) Address() uint32 { return o.addr }

// IsMemory reports whether this operand addresses memory rather than a
// register or an immediate.
func (o Operand) IsMemory() bool { return o.kind == kindMemory }

// ReadOffset reads the element at byte offset idx*sz (a Size is its width in bytes) from this
// operand's base address, used by MOVEM's bulk register transfer.
func (o Operand) ReadOffset(c *CPU, sz size.Size, idx int) uint32 {
	return c.readBus(o.addr+uint32(idx)*uint32(sz), sz)
}

// WriteOffset is ReadOffset's write counterpart.
func (o Operand) WriteOffset(c *CPU, sz size.Size, idx int, val uint32) {
	c.writeBus(o.addr+uint32(idx)*uint32(sz), val, sz)
}

// Effective addressing mode numbers (bits 5-3 of the standard EA field).
const (
	eaDataRegDirect = iota
	eaAddrRegDirect
	eaAddrRegIndirect
	eaAddrRegPostInc
	eaAddrRegPreDec
	eaAddrRegDisp
	eaAddrRegIndex
	eaExtended // mode 7: reg selects the sub-mode
)

const (
	eaExtAbsShort = iota
	eaExtAbsLong
	eaExtPCDisp
	eaExtPCIndex
	eaExtImmediate
)

// resolveEA decodes and resolves an effective address field (mode, reg)
// into an Operand, consuming any extension words the mode requires and
// applying the pre-decrement/post-increment side effect exactly once, at
// the moment the operand is produced.
func (c *CPU) resolveEA(mode, reg uint8, sz size.Size) Operand {
	switch mode {
	case eaDataRegDirect:
		return Operand{kind: kindDataReg, reg: reg, sz: sz, addrRegBackref: -1}

	case eaAddrRegDirect:
		return Operand{kind: kindAddrReg, reg: reg, sz: sz, addrRegBackref: -1}

	case eaAddrRegIndirect:
		return Operand{kind: kindMemory, addr: c.Reg.A[reg], sz: sz, addrRegBackref: -1}

	case eaAddrRegPostInc:
		addr := c.Reg.A[reg]
		c.Reg.A[reg] += c.indexStep(reg, sz)
		return Operand{kind: kindMemory, addr: addr, sz: sz, addrRegBackref: int8(reg)}

	case eaAddrRegPreDec:
		c.Reg.A[reg] -= c.indexStep(reg, sz)
		return Operand{kind: kindMemory, addr: c.Reg.A[reg], sz: sz, addrRegBackref: int8(reg)}

	case eaAddrRegDisp:
		disp := int16(c.fetchPC())
		return Operand{kind: kindMemory, addr: uint32(int32(c.Reg.A[reg]) + int32(disp)), sz: sz, addrRegBackref: -1}

	case eaAddrRegIndex:
		ext := c.fetchPC()
		return Operand{kind: kindMemory, addr: c.calcIndexedAddr(c.Reg.A[reg], ext), sz: sz, addrRegBackref: -1}

	case eaExtended:
		switch reg {
		case eaExtAbsShort:
			addr := int16(c.fetchPC())
			return Operand{kind: kindMemory, addr: uint32(int32(addr)), sz: sz, addrRegBackref: -1}
		case eaExtAbsLong:
			return Operand{kind: kindMemory, addr: c.fetchPCLong(), sz: sz, addrRegBackref: -1}
		case eaExtPCDisp:
			base := c.Reg.PC
			disp := int16(c.fetchPC())
			return Operand{kind: kindMemory, addr: uint32(int32(base) + int32(disp)), sz: sz, addrRegBackref: -1}
		case eaExtPCIndex:
			base := c.Reg.PC
			ext := c.fetchPC()
			return Operand{kind: kindMemory, addr: c.calcIndexedAddr(base, ext), sz: sz, addrRegBackref: -1}
		case eaExtImmediate:
			switch sz {
			case size.Byte:
				// Immediate-of-byte consumes a full word; only the low
				// byte is the value.
				v := c.fetchPC()
				return Operand{kind: kindImmediate, imm: uint32(v & 0xFF), sz: sz, addrRegBackref: -1}
			case size.Word:
				v := c.fetchPC()
				return Operand{kind: kindImmediate, imm: uint32(v), sz: sz, addrRegBackref: -1}
			default:
				v := c.fetchPCLong()
				return Operand{kind: kindImmediate, imm: v, sz: sz, addrRegBackref: -1}
			}
		}
	}
	return Operand{kind: kindImmediate, sz: sz, addrRegBackref: -1}
}

// indexStep returns the pre-decrement/post-increment step for register reg
// at size sz: the special rule is that a byte-size step against the active
// stack pointer (A7) uses two bytes so SP stays word-aligned.
func (c *CPU) indexStep(reg uint8, sz size.Size) uint32 {
	if reg == 7 && sz == size.Byte {
		return 2
	}
	return uint32(sz)
}

// calcIndexedAddr resolves the brief extension-word format:
// bit 15 selects data/address index register, bits 14-12 select the index
// register, bit 11 selects word (sign-extended) vs long index size, and
// bits 7-0 are a signed 8-bit displacement.
func (c *CPU) calcIndexedAddr(base uint32, ext uint16) uint32 {
	idxIsAddr := ext&0x8000 != 0
	idxReg := uint8((ext >> 12) & 7)
	longIdx := ext&0x0800 != 0
	disp := int32(int8(ext & 0xFF))

	var idxVal uint32
	if idxIsAddr {
		idxVal = c.Reg.A[idxReg]
	} else {
		idxVal = c.Reg.D[idxReg]
	}
	if !longIdx {
		idxVal = uint32(int32(int16(idxVal)))
	}
	return uint32(int32(base) + int32(idxVal) + disp)
}

// eaModeRegValid reports whether (mode, reg) is a legal extended EA field
// for the given source/destination role, matching the per-instruction
// restrictions the mode table implies (e.g. a PC-relative or immediate
// destination is never legal; mode 7 with reg > 4 is never legal).
func eaModeRegValid(mode, reg uint8, allowAddrReg, isDestination bool) bool {
	if mode == eaAddrRegDirect && !allowAddrReg {
		return false
	}
	if mode == eaExtended {
		if isDestination {
			return reg <= eaExtAbsLong // no PC-relative or immediate destinations
		}
		return reg <= eaExtImmediate
	}
	return true
}
