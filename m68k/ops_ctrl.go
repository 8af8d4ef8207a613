package m68k

import "github.com/otleylabs/gencore/size"

func init() {
	registerNOP()
	registerSTOP()
	registerRESET()
	registerTRAP()
	registerTRAPV()
	registerCHK()
	registerLINK()
	registerUNLK()
	registerMoveToFromSR()
	registerMoveUSP()
}

func registerNOP() { setOp(0x4E71, 4, opNOP) }
func opNOP(c *CPU) {}

func registerSTOP() { setOp(0x4E72, 4, opSTOP) }
func opSTOP(c *CPU) {
	if !c.Supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	imm := c.fetchPC()
	c.setSR(imm)
	c.stopped = true
}

func registerRESET() { setOp(0x4E70, 132, opRESET) }
func opRESET(c *CPU) {
	if !c.Supervisor() {
		c.exception(vecPrivilegeViolation)
	}
	// Asserting the RESET line on external devices is the bus/peripheral
	// layer's job; the core itself only gates on privilege.
}

func registerTRAP() {
	for v := uint16(0); v < 16; v++ {
		setOp(0x4E40|v, 34, opTRAP)
	}
}

func opTRAP(c *CPU) {
	vector := int(c.ir&0xF) + vecTrap0
	c.exception(vector)
}

func registerTRAPV() { setOp(0x4E76, 4, opTRAPV) }
func opTRAPV(c *CPU) {
	if c.flag(FlagV) {
		c.exception(vecTRAPV)
	}
}

// registerCHK populates CHK <ea>,Dn: traps if Dn's signed word value is
// outside [0, <ea>].
func registerCHK() {
	for dn := uint16(0); dn < 8; dn++ {
		for mode := uint16(0); mode < 8; mode++ {
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtImmediate {
					continue
				}
				setOp(0x4180|dn<<9|mode<<3|reg, 10, opCHK)
			}
		}
	}
}

func opCHK(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	bound := int16(c.resolveEA(mode, reg, size.Word).Read(c))
	val := int16(c.Reg.D[dn] & 0xFFFF)

	if val < 0 {
		c.setFlag(FlagN, true)
		c.exception(vecCHK)
		return
	}
	if val > bound {
		c.setFlag(FlagN, false)
		c.exception(vecCHK)
		return
	}
}

func registerLINK() {
	for an := uint16(0); an < 8; an++ {
		setOp(0x4E50|an, 16, opLINK)
	}
}

func opLINK(c *CPU) {
	an := c.ir & 7
	disp := int16(c.fetchPC())
	c.pushLong(c.Reg.A[an])
	c.Reg.A[an] = c.Reg.A[7]
	c.Reg.A[7] = uint32(int32(c.Reg.A[7]) + int32(disp))
}

func registerUNLK() {
	for an := uint16(0); an < 8; an++ {
		setOp(0x4E58|an, 12, opUNLK)
	}
}

func opUNLK(c *CPU) {
	an := c.ir & 7
	c.Reg.A[7] = c.Reg.A[an]
	c.Reg.A[an] = c.popLong()
}

// registerMoveToFromSR populates MOVE SR,<ea> / MOVE <ea>,CCR /
// MOVE <ea>,SR. Only the last is privileged.
func registerMoveToFromSR() {
	for mode := uint16(0); mode < 8; mode++ {
		if mode == eaAddrRegDirect {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == eaExtended && reg > eaExtPCIndex {
				continue
			}
			setOp(0x40C0|mode<<3|reg, 6, opMOVEfromSR)
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == eaExtended && reg > eaExtImmediate {
				continue
			}
			setOp(0x44C0|mode<<3|reg, 12, opMOVEtoCCR)
			setOp(0x46C0|mode<<3|reg, 12, opMOVEtoSR)
		}
	}
}

func opMOVEfromSR(c *CPU) {
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	c.resolveEA(mode, reg, size.Word).Write(c, uint32(c.Reg.SR))
}

func opMOVEtoCCR(c *CPU) {
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	v := c.resolveEA(mode, reg, size.Word).Read(c)
	c.Reg.SR = (c.Reg.SR &^ 0xFF) | (uint16(v) & 0xFF)
}

func opMOVEtoSR(c *CPU) {
	if !c.Supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	v := c.resolveEA(mode, reg, size.Word).Read(c)
	c.setSR(uint16(v))
}

// registerMoveUSP populates MOVE An,USP / MOVE USP,An, both privileged.
func registerMoveUSP() {
	for an := uint16(0); an < 8; an++ {
		setOp(0x4E60|an, 4, opMOVEtoUSP)
		setOp(0x4E68|an, 4, opMOVEfromUSP)
	}
}

func opMOVEtoUSP(c *CPU) {
	if !c.Supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	an := c.ir & 7
	c.Reg.USP = c.Reg.A[an]
}

func opMOVEfromUSP(c *CPU) {
	if !c.Supervisor() {
		c.exception(vecPrivilegeViolation)
		return
	}
	an := c.ir & 7
	c.Reg.A[an] = c.Reg.USP
}
