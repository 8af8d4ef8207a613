package m68k

func init() {
	registerAND()
	registerOR()
	registerEOR()
	registerImmediateLogic()
	registerCCRSRImmediate()
	registerNOT()
	registerNEG()
	registerNEGX()
	registerCLR()
	registerTST()
}

func registerAND() {
	for dn := uint16(0); dn < 8; dn++ {
		for si, szBits := range opSizeBits {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaAddrRegDirect {
						continue // AND has no address-register operand
					}
					if mode == eaExtended && reg > eaExtImmediate {
						continue
					}
					_ = opSizeList[si]
					setOp(0xC000|dn<<9|szBits|mode<<3|reg, 4, opANDtoReg)
					if mode != eaDataRegDirect {
						setOp(0xC100|dn<<9|szBits|mode<<3|reg, 8, opANDtoMem)
					}
				}
			}
		}
	}
}

func opANDtoReg(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := c.resolveEA(mode, reg, sz).Read(c)
	result := (c.Reg.D[dn] & sz.Mask() & src) & sz.Mask()
	c.Reg.D[dn] = (c.Reg.D[dn] &^ sz.Mask()) | result
	c.setFlagsLogical(result, sz)
}

func opANDtoMem(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	result := (ea.Read(c) & c.Reg.D[dn]) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsLogical(result, sz)
}

func registerOR() {
	for dn := uint16(0); dn < 8; dn++ {
		for _, szBits := range opSizeBits {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaAddrRegDirect {
						continue
					}
					if mode == eaExtended && reg > eaExtImmediate {
						continue
					}
					setOp(0x8000|dn<<9|szBits|mode<<3|reg, 4, opORtoReg)
					if mode != eaDataRegDirect {
						setOp(0x8100|dn<<9|szBits|mode<<3|reg, 8, opORtoMem)
					}
				}
			}
		}
	}
}

func opORtoReg(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := c.resolveEA(mode, reg, sz).Read(c)
	result := (c.Reg.D[dn] & sz.Mask() | src) & sz.Mask()
	c.Reg.D[dn] = (c.Reg.D[dn] &^ sz.Mask()) | result
	c.setFlagsLogical(result, sz)
}

func opORtoMem(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	result := (ea.Read(c) | c.Reg.D[dn]) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsLogical(result, sz)
}

func registerEOR() {
	for dn := uint16(0); dn < 8; dn++ {
		for _, szBits := range opSizeBits {
			for mode := uint16(0); mode < 8; mode++ {
				if mode == eaAddrRegDirect {
					continue
				}
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtPCIndex {
						continue
					}
					setOp(0xB100|dn<<9|szBits|mode<<3|reg, 4, opEOR)
				}
			}
		}
	}
}

func opEOR(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	result := (ea.Read(c) ^ c.Reg.D[dn]) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsLogical(result, sz)
}

func registerImmediateLogic() {
	for _, szBits := range opSizeBits {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x0200|szBits|mode<<3|reg, 8, opANDI)
				setOp(0x0000|szBits|mode<<3|reg, 8, opORI)
				setOp(0x0A00|szBits|mode<<3|reg, 8, opEORI)
			}
		}
	}
}

func opANDI(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	imm := c.fetchImmediate(sz)
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	result := (ea.Read(c) & imm) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsLogical(result, sz)
}

func opORI(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	imm := c.fetchImmediate(sz)
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	result := (ea.Read(c) | imm) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsLogical(result, sz)
}

func opEORI(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	imm := c.fetchImmediate(sz)
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	result := (ea.Read(c) ^ imm) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsLogical(result, sz)
}

// registerCCRSRImmediate populates the CCR/SR immediate-logic forms, all of
// which are fixed single opcodes: ANDI/ORI/EORI to CCR (byte, always
// legal) and to SR (word, supervisor-only).
func registerCCRSRImmediate() {
	setOp(0x023C, 20, opANDItoCCR)
	setOp(0x003C, 20, opORItoCCR)
	setOp(0x0A3C, 20, opEORItoCCR)
	setOp(0x027C, 20, opANDItoSR)
	setOp(0x007C, 20, opORItoSR)
	setOp(0x0A7C, 20, opEORItoSR)
}

func opANDItoCCR(c *CPU) {
	imm := c.fetchPC()
	c.Reg.SR = (c.Reg.SR &^ 0xFF) | (c.Reg.SR&0xFF)&(imm&0xFF)
}
func opORItoCCR(c *CPU) {
	imm := c.fetchPC()
	c.Reg.SR = (c.Reg.SR &^ 0xFF) | (c.Reg.SR&0xFF)|(imm&0xFF)
}
func opEORItoCCR(c *CPU) {
	imm := c.fetchPC()
	c.Reg.SR = (c.Reg.SR &^ 0xFF) | (c.Reg.SR&0xFF)^(imm&0xFF)
}

func opANDItoSR(c *CPU) {
	if !c.Supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	imm := c.fetchPC()
	c.setSR(c.Reg.SR & imm)
}
func opORItoSR(c *CPU) {
	if !c.Supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	imm := c.fetchPC()
	c.setSR(c.Reg.SR | imm)
}
func opEORItoSR(c *CPU) {
	if !c.Supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	imm := c.fetchPC()
	c.setSR(c.Reg.SR ^ imm)
}

func registerNOT() {
	for _, szBits := range opSizeBits {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x4600|szBits|mode<<3|reg, 4, opNOT)
			}
		}
	}
}

func opNOT(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	result := (^ea.Read(c)) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsLogical(result, sz)
}

// registerNEG populates NEG (0 - dst). C is derived from dMSB|rMSB
// rather than "result != 0", matching the 68000's documented behavior.
func registerNEG() {
	for _, szBits := range opSizeBits {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x4400|szBits|mode<<3|reg, 4, opNEG)
			}
		}
	}
}

func opNEG(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	dst := ea.Read(c)
	result := (0 - dst) & sz.Mask()
	ea.Write(c, result)

	msb := sz.MSBBit()
	mask := sz.Mask()
	r, d := result&mask, dst&mask

	c.Reg.SR &^= FlagX | FlagN | FlagZ | FlagV | FlagC
	if r == 0 {
		c.Reg.SR |= FlagZ
	}
	if r&msb != 0 {
		c.Reg.SR |= FlagN
	}
	if d&msb != 0 && r&msb != 0 {
		c.Reg.SR |= FlagV
	}
	// C (and X) set from dMSB | rMSB, not from "result != 0".
	if d&msb != 0 || r&msb != 0 {
		c.Reg.SR |= FlagC | FlagX
	}
}

func registerNEGX() {
	for _, szBits := range opSizeBits {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x4000|szBits|mode<<3|reg, 4, opNEGX)
			}
		}
	}
}

func opNEGX(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	dst := ea.Read(c)
	xv := uint32(0)
	if c.flag(FlagX) {
		xv = 1
	}
	result := (0 - dst - xv) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsSubX(dst, 0, result, sz)
}

func registerCLR() {
	for _, szBits := range opSizeBits {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x4200|szBits|mode<<3|reg, 4, opCLR)
			}
		}
	}
}

func opCLR(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	ea.Write(c, 0)
	c.Reg.SR &^= FlagN | FlagV | FlagC
	c.Reg.SR |= FlagZ
}

func registerTST() {
	for _, szBits := range opSizeBits {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x4A00|szBits|mode<<3|reg, 4, opTST)
			}
		}
	}
}

func opTST(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	val := c.resolveEA(mode, reg, sz).Read(c)
	c.setFlagsLogical(val, sz)
}
