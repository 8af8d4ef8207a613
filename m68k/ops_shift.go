package m68k

import "github.com/otleylabs/gencore/size"

// shiftKind distinguishes the three rotate/shift families: arithmetic,
// logical, and rotate (with/without carry).
type shiftKind uint8

const (
	shiftArith shiftKind = iota
	shiftLogical
	shiftRotateX
	shiftRotate
)

func init() {
	registerShiftRegister()
	registerShiftMemory()
}

// registerShiftRegister populates the register-count and immediate-count
// shift/rotate forms: 1110 ccc d SS i RR rrr, direction d (0=right,1=left),
// size SS, i selects immediate-count(0)/register-count(1), RR selects the
// family (00=arith,01=logical,10=rotate-through-X,11=rotate).
func registerShiftRegister() {
	for cnt := uint16(0); cnt < 8; cnt++ { // count (0 encodes 8) or register number
		for dir := uint16(0); dir < 2; dir++ {
			for _, szBits := range []uint16{0, 0x0040, 0x0080} {
				for iBit := uint16(0); iBit < 2; iBit++ {
					for kind := uint16(0); kind < 4; kind++ {
						for reg := uint16(0); reg < 8; reg++ {
							opcode := 0xE000 | cnt<<9 | dir<<8 | szBits | iBit<<5 | kind<<3 | reg
							setOp(opcode, 6, opShiftRegister)
						}
					}
				}
			}
		}
	}
}

func opShiftRegister(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := c.ir & 7
	dir := (c.ir >> 8) & 1 // 0=right, 1=left
	kind := shiftKind((c.ir >> 3) & 3)
	useReg := (c.ir>>5)&1 != 0
	cntField := (c.ir >> 9) & 7

	var count uint32
	if useReg {
		count = c.Reg.D[cntField] % 64
	} else {
		count = uint32(cntField)
		if count == 0 {
			count = 8
		}
	}

	val := c.Reg.D[dn] & sz.Mask()
	result, flags := shiftValue(kind, dir == 1, val, count, sz, c.flag(FlagX))
	c.Reg.D[dn] = (c.Reg.D[dn] &^ sz.Mask()) | result
	c.applyShiftFlags(result, sz, flags)
}

// registerShiftMemory populates the single-bit, memory-operand shift forms:
// 1110 000 d 11 mmm rrr through 1110 011 d 11 mmm rrr select the family.
func registerShiftMemory() {
	for dir := uint16(0); dir < 2; dir++ {
		for kind := uint16(0); kind < 4; kind++ {
			for mode := uint16(2); mode < 8; mode++ {
				if mode == eaAddrRegPostInc || mode == eaAddrRegPreDec {
					continue
				}
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtPCIndex {
						continue
					}
					opcode := 0xE0C0 | kind<<9 | dir<<8 | mode<<3 | reg
					setOp(opcode, 8, opShiftMemory)
				}
			}
			for reg := uint16(0); reg < 8; reg++ {
				setOp(0xE0C0|kind<<9|dir<<8|eaAddrRegPostInc<<3|reg, 8, opShiftMemory)
				setOp(0xE0C0|kind<<9|dir<<8|eaAddrRegPreDec<<3|reg, 8, opShiftMemory)
			}
		}
	}
}

func opShiftMemory(c *CPU) {
	dir := (c.ir >> 8) & 1
	kind := shiftKind((c.ir >> 9) & 3)
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, size.Word)
	val := ea.Read(c)
	result, flags := shiftValue(kind, dir == 1, val, 1, size.Word, c.flag(FlagX))
	ea.Write(c, result)
	c.applyShiftFlags(result, size.Word, flags)
}

// shiftResultFlags carries the pieces of SR that shiftValue cannot set
// generically (C/X latch the last bit shifted out; V has family-specific
// rules).
type shiftResultFlags struct {
	carry    bool // value to install into C (and, if touchesX, into X)
	overflow bool
	touchesX bool // false for plain ROL/ROR (never affect X) and for a zero count on arithmetic/logical shifts
}

// shiftValue implements the three families for an arbitrary bit count,
// returning the size-masked result and the flag facts the caller folds
// into SR. left selects left-shift/rotate.
func shiftValue(kind shiftKind, left bool, val uint32, count uint32, sz size.Size, xIn bool) (uint32, shiftResultFlags) {
	mask := sz.Mask()
	bits := sz.Bits()
	msb := sz.MSBBit()

	if count == 0 {
		if kind == shiftRotateX {
			return val & mask, shiftResultFlags{carry: xIn}
		}
		return val & mask, shiftResultFlags{carry: false}
	}

	result := val & mask
	var lastOut bool
	overflow := false

	switch kind {
	case shiftArith:
		for i := uint32(0); i < count; i++ {
			signBefore := result&msb != 0
			if left {
				lastOut = result&msb != 0
				result = (result << 1) & mask
				if result&msb != 0 != signBefore {
					overflow = true
				}
			} else {
				lastOut = result&1 != 0
				sign := result & msb
				result = (result >> 1) | sign
				result &= mask
			}
		}
	case shiftLogical:
		for i := uint32(0); i < count; i++ {
			if left {
				lastOut = result&msb != 0
				result = (result << 1) & mask
			} else {
				lastOut = result&1 != 0
				result = result >> 1
			}
		}
	case shiftRotate:
		for i := uint32(0); i < count; i++ {
			if left {
				lastOut = result&msb != 0
				result = ((result << 1) | boolBit(lastOut)) & mask
			} else {
				lastOut = result&1 != 0
				result = (result >> 1) | (boolBit(lastOut) << (bits - 1))
				result &= mask
			}
		}
		// Plain rotate never touches X.
		return result, shiftResultFlags{carry: lastOut}
	case shiftRotateX:
		x := xIn
		for i := uint32(0); i < count; i++ {
			if left {
				newX := result&msb != 0
				result = ((result << 1) | boolBit(x)) & mask
				x = newX
			} else {
				newX := result&1 != 0
				result = (result >> 1) | (boolBit(x) << (bits - 1))
				result &= mask
				x = newX
			}
		}
		lastOut = x
	}

	return result, shiftResultFlags{carry: lastOut, overflow: overflow, touchesX: true}
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// applyShiftFlags folds a shiftValue result into SR: Z/N from the result,
// C and (family-dependent) X from the last bit shifted out, V per family.
func (c *CPU) applyShiftFlags(result uint32, sz size.Size, f shiftResultFlags) {
	c.Reg.SR &^= FlagN | FlagZ | FlagV | FlagC
	if size.IsZero(result, sz) {
		c.Reg.SR |= FlagZ
	}
	if size.IsNegative(result, sz) {
		c.Reg.SR |= FlagN
	}
	if f.overflow {
		c.Reg.SR |= FlagV
	}
	c.setFlag(FlagC, f.carry)
	if f.touchesX {
		c.setFlag(FlagX, f.carry)
	}
}
