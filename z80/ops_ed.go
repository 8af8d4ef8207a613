package z80

func init() { registerEDOps() }

// registerEDOps populates the extended-miscellaneous table: 16-bit
// ADC/SBC, extended memory loads for BC/DE/HL/SP, NEG, RETN/RETI, the
// interrupt-mode selectors, the I/R accumulator loads, RRD/RLD, IN/OUT
// through the C register, and the four block-transfer/compare families
// with their repeating forms.
func registerEDOps() {
	for rr := byte(0); rr < 4; rr++ {
		pair := rr
		edOps[0x4A|pair<<4] = func(c *CPU) int { c.setHL(c.adc16(c.hl(), c.reg16(pair))); return 15 }
		edOps[0x42|pair<<4] = func(c *CPU) int { c.setHL(c.sbc16(c.hl(), c.reg16(pair))); return 15 }
		edOps[0x43|pair<<4] = func(c *CPU) int {
			addr := c.fetchWord()
			v := c.reg16(pair)
			c.writeMem(addr, byte(v))
			c.writeMem(addr+1, byte(v>>8))
			return 20
		}
		edOps[0x4B|pair<<4] = func(c *CPU) int {
			addr := c.fetchWord()
			lo := c.readMem(addr)
			hi := c.readMem(addr + 1)
			c.setReg16(pair, uint16(hi)<<8|uint16(lo))
			return 20
		}
	}

	neg := func(c *CPU) int {
		v := c.Reg.A
		c.Reg.A = 0
		c.subA(v, 0, true)
		return 8
	}
	for _, op := range []byte{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		edOps[op] = neg
	}

	retn := func(c *CPU) int {
		c.Reg.PC = c.pop()
		c.iff1 = c.iff2
		return 14
	}
	reti := func(c *CPU) int {
		c.Reg.PC = c.pop()
		c.iff1 = c.iff2
		return 14
	}
	for _, op := range []byte{0x45, 0x55, 0x65, 0x75} {
		edOps[op] = retn
	}
	for _, op := range []byte{0x4D, 0x5D, 0x6D, 0x7D} {
		edOps[op] = reti
	}

	edOps[0x46] = func(c *CPU) int { c.im = IM0; return 8 }
	edOps[0x56] = func(c *CPU) int { c.im = IM1; return 8 }
	edOps[0x5E] = func(c *CPU) int { c.im = IM2; return 8 }
	edOps[0x4E] = func(c *CPU) int { c.im = IM0; return 8 } // undocumented duplicate of 0x46

	edOps[0x47] = func(c *CPU) int { c.Reg.I = c.Reg.A; return 9 }
	edOps[0x4F] = func(c *CPU) int { c.Reg.R = c.Reg.A; return 9 }
	edOps[0x57] = func(c *CPU) int {
		c.Reg.A = c.Reg.I
		c.setIRLoadFlags(c.Reg.I)
		return 9
	}
	edOps[0x5F] = func(c *CPU) int {
		c.Reg.A = c.Reg.R
		c.setIRLoadFlags(c.Reg.R)
		return 9
	}

	edOps[0x67] = func(c *CPU) int { c.opRRD(); return 18 }
	edOps[0x6F] = func(c *CPU) int { c.opRLD(); return 18 }

	for code := byte(0); code < 8; code++ {
		reg := code
		edOps[0x40|reg<<3] = func(c *CPU) int {
			v := c.ports.In(c.bc())
			if reg != 6 {
				c.writeReg8(reg, v)
			}
			c.setSZPFlags(v)
			c.Reg.F &^= FlagH | FlagN
			return 12
		}
		edOps[0x41|reg<<3] = func(c *CPU) int {
			var v byte
			if reg == 6 {
				v = 0
			} else {
				v = c.readReg8(reg)
			}
			c.ports.Out(c.bc(), v)
			return 12
		}
	}

	edOps[0xA0] = func(c *CPU) int { return c.opLDI(1) }
	edOps[0xA8] = func(c *CPU) int { return c.opLDI(-1) }
	edOps[0xB0] = func(c *CPU) int { return c.opLDIR(1) }
	edOps[0xB8] = func(c *CPU) int { return c.opLDIR(-1) }

	edOps[0xA1] = func(c *CPU) int { return c.opCPI(1) }
	edOps[0xA9] = func(c *CPU) int { return c.opCPI(-1) }
	edOps[0xB1] = func(c *CPU) int { return c.opCPIR(1) }
	edOps[0xB9] = func(c *CPU) int { return c.opCPIR(-1) }

	edOps[0xA2] = func(c *CPU) int { return c.opINI(1) }
	edOps[0xAA] = func(c *CPU) int { return c.opINI(-1) }
	edOps[0xB2] = func(c *CPU) int { return c.opINIR(1) }
	edOps[0xBA] = func(c *CPU) int { return c.opINIR(-1) }

	edOps[0xA3] = func(c *CPU) int { return c.opOUTI(1) }
	edOps[0xAB] = func(c *CPU) int { return c.opOUTI(-1) }
	edOps[0xB3] = func(c *CPU) int { return c.opOTIR(1) }
	edOps[0xBB] = func(c *CPU) int { return c.opOTIR(-1) }
}

// setIRLoadFlags is LD A,I / LD A,R's flag tail: S/Z from the loaded byte,
// H/N cleared, P/V mirrors IFF2 (used by ISRs to probe whether they were
// interrupted mid-instruction).
func (c *CPU) setIRLoadFlags(v byte) {
	c.Reg.F &^= FlagS | FlagZ | FlagH | FlagN | FlagPV
	if v == 0 {
		c.Reg.F |= FlagZ
	}
	if v&0x80 != 0 {
		c.Reg.F |= FlagS
	}
	if c.iff2 {
		c.Reg.F |= FlagPV
	}
}

func (c *CPU) opRRD() {
	addr := c.hl()
	mem := c.readMem(addr)
	a := c.Reg.A
	c.Reg.A = (a & 0xF0) | (mem & 0x0F)
	c.writeMem(addr, (a<<4)|(mem>>4))
	c.setSZPFlags(c.Reg.A)
	c.Reg.F &^= FlagH | FlagN
}

func (c *CPU) opRLD() {
	addr := c.hl()
	mem := c.readMem(addr)
	a := c.Reg.A
	c.Reg.A = (a & 0xF0) | (mem >> 4)
	c.writeMem(addr, (mem<<4)|(a&0x0F))
	c.setSZPFlags(c.Reg.A)
	c.Reg.F &^= FlagH | FlagN
}

// opLDI implements LDI (step=1) and LDD (step=-1): copy (HL) to (DE),
// advance or retreat both pointers, decrement BC.
func (c *CPU) opLDI(step int16) int {
	v := c.readMem(c.hl())
	c.writeMem(c.de(), v)
	c.setHL(uint16(int32(c.hl()) + int32(step)))
	c.setDE(uint16(int32(c.de()) + int32(step)))
	bc := c.bc() - 1
	c.setBC(bc)
	c.updateBlockMoveFlags(v, bc != 0)
	return 16
}

// opLDIR repeats opLDI while BC remains nonzero after the decrement, per
// the corrected semantics: BC is decremented first, then tested.
func (c *CPU) opLDIR(step int16) int {
	cycles := c.opLDI(step)
	if c.bc() != 0 {
		c.Reg.PC -= 2
		return cycles + 5
	}
	return cycles
}

func (c *CPU) opCPI(step int16) int {
	value := c.readMem(c.hl())
	a := c.Reg.A
	res := a - value
	c.setHL(uint16(int32(c.hl()) + int32(step)))
	bc := c.bc() - 1
	c.setBC(bc)

	c.Reg.F = (c.Reg.F & FlagC) | FlagN
	if res == 0 {
		c.Reg.F |= FlagZ
	}
	if res&0x80 != 0 {
		c.Reg.F |= FlagS
	}
	if int(a&0x0F)-int(value&0x0F) < 0 {
		c.Reg.F |= FlagH
	}
	if bc != 0 {
		c.Reg.F |= FlagPV
	}
	n := res
	if c.Reg.F&FlagH != 0 {
		n--
	}
	c.Reg.F &^= FlagX | FlagY
	c.Reg.F |= (n << 4) & FlagY
	c.Reg.F |= n & FlagX
	return 16
}

func (c *CPU) opCPIR(step int16) int {
	cycles := c.opCPI(step)
	if c.bc() != 0 && c.Reg.F&FlagZ == 0 {
		c.Reg.PC -= 2
		return cycles + 5
	}
	return cycles
}

func (c *CPU) opINI(step int16) int {
	v := c.ports.In(c.bc())
	c.writeMem(c.hl(), v)
	c.setHL(uint16(int32(c.hl()) + int32(step)))
	c.Reg.B--
	c.updateBlockIOFlags()
	return 16
}

func (c *CPU) opINIR(step int16) int {
	cycles := c.opINI(step)
	if c.Reg.B != 0 {
		c.Reg.PC -= 2
		return cycles + 5
	}
	return cycles
}

func (c *CPU) opOUTI(step int16) int {
	v := c.readMem(c.hl())
	c.Reg.B--
	c.ports.Out(c.bc(), v)
	c.setHL(uint16(int32(c.hl()) + int32(step)))
	c.updateBlockIOFlags()
	return 16
}

func (c *CPU) opOTIR(step int16) int {
	cycles := c.opOUTI(step)
	if c.Reg.B != 0 {
		c.Reg.PC -= 2
		return cycles + 5
	}
	return cycles
}
