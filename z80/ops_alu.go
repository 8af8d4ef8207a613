package z80

func init() { registerALUOps() }

type aluOp byte

const (
	aluAdd aluOp = iota
	aluAdc
	aluSub
	aluSbc
	aluAnd
	aluXor
	aluOr
	aluCp
)

func (c *CPU) performALU(op aluOp, value byte) {
	switch op {
	case aluAdd:
		c.addA(value, 0)
	case aluAdc:
		c.addA(value, boolByte(c.flag(FlagC)))
	case aluSub:
		c.subA(value, 0, true)
	case aluSbc:
		c.subA(value, boolByte(c.flag(FlagC)), true)
	case aluAnd:
		c.andA(value)
	case aluXor:
		c.xorA(value)
	case aluOr:
		c.orA(value)
	case aluCp:
		c.subA(value, 0, false)
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func registerALUOps() {
	for op := 0x80; op <= 0xBF; op++ {
		family := aluOp((op - 0x80) / 8)
		src := byte(op & 7)
		baseOps[op] = func(c *CPU) int {
			c.performALU(family, c.readReg8(src))
			if src == 6 {
				return 7
			}
			return 4
		}
	}

	immOpcodes := map[int]aluOp{0xC6: aluAdd, 0xCE: aluAdc, 0xD6: aluSub, 0xDE: aluSbc, 0xE6: aluAnd, 0xEE: aluXor, 0xF6: aluOr, 0xFE: aluCp}
	for op, family := range immOpcodes {
		f := family
		baseOps[op] = func(c *CPU) int {
			c.performALU(f, c.fetchByte())
			return 7
		}
	}

	baseOps[0x27] = func(c *CPU) int { return c.opDAA() }
	baseOps[0x2F] = func(c *CPU) int {
		c.Reg.A = ^c.Reg.A
		c.Reg.F |= FlagH | FlagN
		c.Reg.F = (c.Reg.F &^ (FlagX | FlagY)) | (c.Reg.A & (FlagX | FlagY))
		return 4
	}
	baseOps[0x37] = func(c *CPU) int {
		c.Reg.F &^= FlagH | FlagN
		c.Reg.F |= FlagC
		c.Reg.F = (c.Reg.F &^ (FlagX | FlagY)) | (c.Reg.A & (FlagX | FlagY))
		return 4
	}
	baseOps[0x3F] = func(c *CPU) int {
		wasC := c.flag(FlagC)
		c.Reg.F &^= FlagN
		if wasC {
			c.Reg.F |= FlagH
			c.Reg.F &^= FlagC
		} else {
			c.Reg.F &^= FlagH
			c.Reg.F |= FlagC
		}
		c.Reg.F = (c.Reg.F &^ (FlagX | FlagY)) | (c.Reg.A & (FlagX | FlagY))
		return 4
	}

	incOpcodes := []byte{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C}
	for i, op := range incOpcodes {
		reg := byte(i)
		baseOps[op] = func(c *CPU) int {
			c.writeReg8(reg, c.inc8(c.readReg8(reg)))
			if reg == 6 {
				return 11
			}
			return 4
		}
	}
	decOpcodes := []byte{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D}
	for i, op := range decOpcodes {
		reg := byte(i)
		baseOps[op] = func(c *CPU) int {
			c.writeReg8(reg, c.dec8(c.readReg8(reg)))
			if reg == 6 {
				return 11
			}
			return 4
		}
	}

	for rr := byte(0); rr < 4; rr++ {
		pair := rr
		baseOps[0x03|pair<<4] = func(c *CPU) int { c.setReg16(pair, c.reg16(pair)+1); return 6 }
		baseOps[0x0B|pair<<4] = func(c *CPU) int { c.setReg16(pair, c.reg16(pair)-1); return 6 }
		baseOps[0x09|pair<<4] = func(c *CPU) int {
			res, half, full := c.add16(c.hl(), c.reg16(pair))
			c.Reg.F &^= FlagN | FlagH | FlagC | FlagX | FlagY
			if half {
				c.Reg.F |= FlagH
			}
			if full {
				c.Reg.F |= FlagC
			}
			c.Reg.F |= byte(res>>8) & (FlagX | FlagY)
			c.setHL(res)
			return 11
		}
	}
}
