package z80

func init() { registerJumpOps() }

// testCC maps the three-bit cc field shared by JP/JR/CALL/RET cc to a
// flag test, in the standard NZ,Z,NC,C,PO,PE,P,M order.
func (c *CPU) testCC(cc byte) bool {
	switch cc {
	case 0:
		return !c.flag(FlagZ)
	case 1:
		return c.flag(FlagZ)
	case 2:
		return !c.flag(FlagC)
	case 3:
		return c.flag(FlagC)
	case 4:
		return !c.flag(FlagPV)
	case 5:
		return c.flag(FlagPV)
	case 6:
		return !c.flag(FlagS)
	default:
		return c.flag(FlagS)
	}
}

func registerJumpOps() {
	baseOps[0xC3] = func(c *CPU) int { c.Reg.PC = c.fetchWord(); return 10 }
	baseOps[0xE9] = func(c *CPU) int { c.Reg.PC = c.hl(); return 4 }

	for cc := byte(0); cc < 8; cc++ {
		cond := cc
		baseOps[0xC2|cond<<3] = func(c *CPU) int {
			addr := c.fetchWord()
			if c.testCC(cond) {
				c.Reg.PC = addr
			}
			return 10
		}
	}

	baseOps[0x18] = func(c *CPU) int {
		d := int8(c.fetchByte())
		c.Reg.PC = uint16(int32(c.Reg.PC) + int32(d))
		return 12
	}
	jrCC := map[byte]byte{0x20: 0, 0x28: 1, 0x30: 2, 0x38: 3} // NZ,Z,NC,C only
	for op, cond := range jrCC {
		cond := cond
		baseOps[op] = func(c *CPU) int {
			d := int8(c.fetchByte())
			if c.testCC(cond) {
				c.Reg.PC = uint16(int32(c.Reg.PC) + int32(d))
				return 12
			}
			return 7
		}
	}
	baseOps[0x10] = func(c *CPU) int {
		d := int8(c.fetchByte())
		c.Reg.B--
		if c.Reg.B != 0 {
			c.Reg.PC = uint16(int32(c.Reg.PC) + int32(d))
			return 13
		}
		return 8
	}

	baseOps[0xCD] = func(c *CPU) int {
		addr := c.fetchWord()
		c.push(c.Reg.PC)
		c.Reg.PC = addr
		return 17
	}
	for cc := byte(0); cc < 8; cc++ {
		cond := cc
		baseOps[0xC4|cond<<3] = func(c *CPU) int {
			addr := c.fetchWord()
			if c.testCC(cond) {
				c.push(c.Reg.PC)
				c.Reg.PC = addr
				return 17
			}
			return 10
		}
	}

	baseOps[0xC9] = func(c *CPU) int { c.Reg.PC = c.pop(); return 10 }
	for cc := byte(0); cc < 8; cc++ {
		cond := cc
		baseOps[0xC0|cond<<3] = func(c *CPU) int {
			if c.testCC(cond) {
				c.Reg.PC = c.pop()
				return 11
			}
			return 5
		}
	}

	for n := byte(0); n < 8; n++ {
		target := uint16(n) * 8
		baseOps[0xC7|n<<3] = func(c *CPU) int {
			c.push(c.Reg.PC)
			c.Reg.PC = target
			return 11
		}
	}

	baseOps[0xD3] = func(c *CPU) int {
		n := c.fetchByte()
		c.ports.Out(uint16(c.Reg.A)<<8|uint16(n), c.Reg.A)
		return 11
	}
	baseOps[0xDB] = func(c *CPU) int {
		n := c.fetchByte()
		c.Reg.A = c.ports.In(uint16(c.Reg.A)<<8 | uint16(n))
		return 11
	}

	baseOps[0xF3] = func(c *CPU) int { c.iff1, c.iff2 = false, false; return 4 }
	baseOps[0xFB] = func(c *CPU) int {
		// The enable takes effect after the instruction following EI runs,
		// so an ISR can't slip in immediately after EI;RET pairs.
		c.iffDelay = 2
		return 4
	}
}

func opNOP(c *CPU) int { return 4 }

func opHALT(c *CPU) int {
	c.halted = true
	c.Reg.PC--
	return 4
}

func opEXAF(c *CPU) int {
	c.Reg.A, c.Reg.A2 = c.Reg.A2, c.Reg.A
	c.Reg.F, c.Reg.F2 = c.Reg.F2, c.Reg.F
	return 4
}

func opEXX(c *CPU) int {
	c.Reg.B, c.Reg.B2 = c.Reg.B2, c.Reg.B
	c.Reg.C, c.Reg.C2 = c.Reg.C2, c.Reg.C
	c.Reg.D, c.Reg.D2 = c.Reg.D2, c.Reg.D
	c.Reg.E, c.Reg.E2 = c.Reg.E2, c.Reg.E
	c.Reg.H, c.Reg.H2 = c.Reg.H2, c.Reg.H
	c.Reg.L, c.Reg.L2 = c.Reg.L2, c.Reg.L
	return 4
}
