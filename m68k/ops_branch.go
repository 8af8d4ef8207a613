package m68k

import "github.com/otleylabs/gencore/size"

func init() {
	registerBcc()
	registerBRA()
	registerBSR()
	registerDBcc()
	registerScc()
	registerJMP()
	registerJSR()
	registerRTS()
	registerRTE()
	registerRTR()
}

// registerBcc populates the fourteen true conditional branches (0110 CCCC
// DDDDDDDD, CC 2-15; CC=0/1 are BRA/BSR, registered separately).
func registerBcc() {
	for cc := uint16(2); cc < 16; cc++ {
		for disp := uint16(0); disp < 256; disp++ {
			setOp(0x6000|cc<<8|disp, 10, opBcc)
		}
	}
}

func opBcc(c *CPU) {
	cc := (c.ir >> 8) & 0xF
	disp := int32(int8(c.ir & 0xFF))
	base := c.Reg.PC

	if disp == 0 {
		disp = int32(int16(c.fetchPC()))
	}

	if c.testCondition(cc) {
		c.Reg.PC = uint32(int32(base) + disp)
	}
}

func registerBRA() {
	for disp := uint16(0); disp < 256; disp++ {
		setOp(0x6000|disp, 10, opBRA)
	}
}

func opBRA(c *CPU) {
	disp := int32(int8(c.ir & 0xFF))
	base := c.Reg.PC
	if disp == 0 {
		disp = int32(int16(c.fetchPC()))
	}
	c.Reg.PC = uint32(int32(base) + disp)
}

func registerBSR() {
	for disp := uint16(0); disp < 256; disp++ {
		setOp(0x6100|disp, 18, opBSR)
	}
}

func opBSR(c *CPU) {
	disp := int32(int8(c.ir & 0xFF))
	base := c.Reg.PC
	if disp == 0 {
		disp = int32(int16(c.fetchPC()))
	}
	c.pushLong(c.Reg.PC)
	c.Reg.PC = uint32(int32(base) + disp)
}

// registerDBcc populates the sixteen decrement-and-branch forms (0101 CCCC
// 1100 1DDD): condition true stops the loop without decrementing;
// otherwise Dn's low word is decremented and, while it is still >= 0, the
// branch is taken.
func registerDBcc() {
	for cc := uint16(0); cc < 16; cc++ {
		for dn := uint16(0); dn < 8; dn++ {
			setOp(0x50C8|cc<<8|dn, 12, opDBcc)
		}
	}
}

func opDBcc(c *CPU) {
	cc := (c.ir >> 8) & 0xF
	dn := c.ir & 7
	disp := int16(c.fetchPC())
	base := c.Reg.PC - 2

	if c.testCondition(cc) {
		return
	}
	val := int16(c.Reg.D[dn]&0xFFFF) - 1
	c.Reg.D[dn] = (c.Reg.D[dn] &^ 0xFFFF) | uint32(uint16(val))
	if val != -1 {
		c.Reg.PC = uint32(int32(base) + int32(disp))
	}
}

func registerScc() {
	for cc := uint16(0); cc < 16; cc++ {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x50C0|cc<<8|mode<<3|reg, 4, opScc)
			}
		}
	}
}

func opScc(c *CPU) {
	cc := (c.ir >> 8) & 0xF
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, size.Byte)
	if c.testCondition(cc) {
		ea.Write(c, 0xFF)
	} else {
		ea.Write(c, 0x00)
	}
}

func registerJMP() {
	for mode := uint16(2); mode < 8; mode++ {
		if mode == eaAddrRegPostInc || mode == eaAddrRegPreDec {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == eaExtended && reg > eaExtPCIndex {
				continue
			}
			setOp(0x4EC0|mode<<3|reg, 8, opJMP)
		}
	}
}

func opJMP(c *CPU) {
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	c.Reg.PC = c.resolveEA(mode, reg, size.Long).Address()
}

func registerJSR() {
	for mode := uint16(2); mode < 8; mode++ {
		if mode == eaAddrRegPostInc || mode == eaAddrRegPreDec {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == eaExtended && reg > eaExtPCIndex {
				continue
			}
			setOp(0x4E80|mode<<3|reg, 16, opJSR)
		}
	}
}

func opJSR(c *CPU) {
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	target := c.resolveEA(mode, reg, size.Long).Address()
	c.pushLong(c.Reg.PC)
	c.Reg.PC = target
}

func registerRTS() {
	setOp(0x4E75, 16, opRTS)
}

func opRTS(c *CPU) {
	c.Reg.PC = c.popLong()
}

func registerRTE() {
	setOp(0x4E73, 20, opRTE)
}

func opRTE(c *CPU) {
	if !c.Supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	sr := c.popWord()
	pc := c.popLong()
	c.setSR(sr)
	c.Reg.PC = pc
}

func registerRTR() {
	setOp(0x4E77, 20, opRTR)
}

func opRTR(c *CPU) {
	ccr := c.popWord()
	pc := c.popLong()
	c.Reg.SR = (c.Reg.SR &^ 0xFF) | (ccr & 0xFF)
	c.Reg.PC = pc
}
