package z80

func init() { registerIndexOps(&ddOps, true); registerIndexOps(&fdOps, false) }

// registerIndexOps populates the DD (IX) or FD (IY) table with the subset
// of the base table that the index prefix actually changes: the (HL)-based
// forms become (IX+d)/(IY+d), HL itself becomes IX/IY, and an extra
// displacement byte is fetched immediately after the opcode for every
// indirect access. Everything else keeps the no-effect opUnimplemented
// entry installed by decode.go's init; it does not fall back to the
// unprefixed table.
func registerIndexOps(table *[256]opFunc, isIX bool) {
	getIdx := func(c *CPU) uint16 {
		if isIX {
			return c.Reg.IX
		}
		return c.Reg.IY
	}
	setIdx := func(c *CPU, v uint16) {
		if isIX {
			c.Reg.IX = v
		} else {
			c.Reg.IY = v
		}
	}

	table[0x21] = func(c *CPU) int { setIdx(c, c.fetchWord()); return 14 }
	table[0x22] = func(c *CPU) int {
		addr := c.fetchWord()
		v := getIdx(c)
		c.writeMem(addr, byte(v))
		c.writeMem(addr+1, byte(v>>8))
		return 20
	}
	table[0x2A] = func(c *CPU) int {
		addr := c.fetchWord()
		lo := c.readMem(addr)
		hi := c.readMem(addr + 1)
		setIdx(c, uint16(hi)<<8|uint16(lo))
		return 20
	}
	table[0x23] = func(c *CPU) int { setIdx(c, getIdx(c)+1); return 10 }
	table[0x2B] = func(c *CPU) int { setIdx(c, getIdx(c)-1); return 10 }

	for rr := byte(0); rr < 4; rr++ {
		pair := rr
		table[0x09|pair<<4] = func(c *CPU) int {
			src := c.reg16(pair)
			if pair == 2 { // the HL slot (pair 2) names the index register itself
				src = getIdx(c)
			}
			res, half, full := c.add16(getIdx(c), src)
			c.Reg.F &^= FlagN | FlagH | FlagC | FlagX | FlagY
			if half {
				c.Reg.F |= FlagH
			}
			if full {
				c.Reg.F |= FlagC
			}
			c.Reg.F |= byte(res>>8) & (FlagX | FlagY)
			setIdx(c, res)
			return 15
		}
	}

	table[0xE5] = func(c *CPU) int { c.push(getIdx(c)); return 15 }
	table[0xE1] = func(c *CPU) int { setIdx(c, c.pop()); return 14 }
	table[0xE3] = func(c *CPU) int {
		v := c.pop()
		c.push(getIdx(c))
		setIdx(c, v)
		return 23
	}
	table[0xE9] = func(c *CPU) int { c.Reg.PC = getIdx(c); return 8 }
	table[0xF9] = func(c *CPU) int { c.Reg.SP = getIdx(c); return 10 }

	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		dest, src := byte((op>>3)&7), byte(op&7)
		if dest != 6 && src != 6 {
			continue // no (HL) operand; keeps the no-effect entry
		}
		op := op
		table[op] = func(c *CPU) int {
			disp := int8(c.fetchByte())
			addr := uint16(int32(getIdx(c)) + int32(disp))
			if src == 6 {
				c.writeReg8(dest, c.readMem(addr))
			} else {
				c.writeMem(addr, c.readReg8(src))
			}
			return 19
		}
	}

	aluOpcodes := map[int]aluOp{0x86: aluAdd, 0x8E: aluAdc, 0x96: aluSub, 0x9E: aluSbc, 0xA6: aluAnd, 0xAE: aluXor, 0xB6: aluOr, 0xBE: aluCp}
	for op, family := range aluOpcodes {
		f := family
		table[op] = func(c *CPU) int {
			disp := int8(c.fetchByte())
			v := c.readMem(uint16(int32(getIdx(c)) + int32(disp)))
			c.performALU(f, v)
			return 19
		}
	}

	table[0x34] = func(c *CPU) int {
		disp := int8(c.fetchByte())
		addr := uint16(int32(getIdx(c)) + int32(disp))
		c.writeMem(addr, c.inc8(c.readMem(addr)))
		return 23
	}
	table[0x35] = func(c *CPU) int {
		disp := int8(c.fetchByte())
		addr := uint16(int32(getIdx(c)) + int32(disp))
		c.writeMem(addr, c.dec8(c.readMem(addr)))
		return 23
	}
	table[0x36] = func(c *CPU) int {
		disp := int8(c.fetchByte())
		v := c.fetchByte()
		c.writeMem(uint16(int32(getIdx(c))+int32(disp)), v)
		return 19
	}
}
