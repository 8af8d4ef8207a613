package z80

// readReg8/writeReg8 implement the standard three-bit register encoding:
// 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
func (c *CPU) readReg8(code byte) byte {
	switch code {
	case 0:
		return c.Reg.B
	case 1:
		return c.Reg.C
	case 2:
		return c.Reg.D
	case 3:
		return c.Reg.E
	case 4:
		return c.Reg.H
	case 5:
		return c.Reg.L
	case 6:
		return c.readMem(c.hl())
	default:
		return c.Reg.A
	}
}

func (c *CPU) writeReg8(code byte, v byte) {
	switch code {
	case 0:
		c.Reg.B = v
	case 1:
		c.Reg.C = v
	case 2:
		c.Reg.D = v
	case 3:
		c.Reg.E = v
	case 4:
		c.Reg.H = v
	case 5:
		c.Reg.L = v
	case 6:
		c.writeMem(c.hl(), v)
	default:
		c.Reg.A = v
	}
}

// reg16 selects one of BC/DE/HL/SP by the standard two-bit "dd" field.
func (c *CPU) reg16(code byte) uint16 {
	switch code {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	default:
		return c.Reg.SP
	}
}

func (c *CPU) setReg16(code byte, v uint16) {
	switch code {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.Reg.SP = v
	}
}

// reg16push selects BC/DE/HL/AF by the "qq" field PUSH/POP use in place of
// SP.
func (c *CPU) reg16push(code byte) uint16 {
	if code == 3 {
		return c.af()
	}
	return c.reg16(code)
}

func (c *CPU) setReg16push(code byte, v uint16) {
	if code == 3 {
		c.setAF(v)
		return
	}
	c.setReg16(code, v)
}
