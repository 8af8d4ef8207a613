package z80

func init() { registerBaseOps() }

func registerBaseOps() {
	baseOps[0x00] = opNOP

	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		dest, src := byte((op>>3)&7), byte(op&7)
		baseOps[op] = func(c *CPU) int {
			c.writeReg8(dest, c.readReg8(src))
			if dest == 6 || src == 6 {
				return 7
			}
			return 4
		}
	}
	baseOps[0x76] = opHALT

	ldImm := map[int]byte{0x06: 0, 0x0E: 1, 0x16: 2, 0x1E: 3, 0x26: 4, 0x2E: 5, 0x36: 6, 0x3E: 7}
	for op, dest := range ldImm {
		d := dest
		baseOps[op] = func(c *CPU) int {
			v := c.fetchByte()
			c.writeReg8(d, v)
			if d == 6 {
				return 10
			}
			return 7
		}
	}

	baseOps[0x01] = func(c *CPU) int { c.setBC(c.fetchWord()); return 10 }
	baseOps[0x11] = func(c *CPU) int { c.setDE(c.fetchWord()); return 10 }
	baseOps[0x21] = func(c *CPU) int { c.setHL(c.fetchWord()); return 10 }
	baseOps[0x31] = func(c *CPU) int { c.Reg.SP = c.fetchWord(); return 10 }

	baseOps[0x02] = func(c *CPU) int { c.writeMem(c.bc(), c.Reg.A); return 7 }
	baseOps[0x12] = func(c *CPU) int { c.writeMem(c.de(), c.Reg.A); return 7 }
	baseOps[0x0A] = func(c *CPU) int { c.Reg.A = c.readMem(c.bc()); return 7 }
	baseOps[0x1A] = func(c *CPU) int { c.Reg.A = c.readMem(c.de()); return 7 }

	baseOps[0x22] = func(c *CPU) int {
		addr := c.fetchWord()
		c.writeMem(addr, c.Reg.L)
		c.writeMem(addr+1, c.Reg.H)
		return 16
	}
	baseOps[0x2A] = func(c *CPU) int {
		addr := c.fetchWord()
		c.Reg.L = c.readMem(addr)
		c.Reg.H = c.readMem(addr + 1)
		return 16
	}
	baseOps[0x32] = func(c *CPU) int { c.writeMem(c.fetchWord(), c.Reg.A); return 13 }
	baseOps[0x3A] = func(c *CPU) int { c.Reg.A = c.readMem(c.fetchWord()); return 13 }

	baseOps[0xF9] = func(c *CPU) int { c.Reg.SP = c.hl(); return 6 }

	for code := byte(0); code < 4; code++ {
		rr := code
		baseOps[0xC1|rr<<4] = func(c *CPU) int { c.setReg16push(rr, c.pop()); return 10 }
		baseOps[0xC5|rr<<4] = func(c *CPU) int { c.push(c.reg16push(rr)); return 11 }
	}

	baseOps[0xE3] = func(c *CPU) int {
		v := c.pop()
		c.push(c.hl())
		c.setHL(v)
		return 19
	}
	baseOps[0x08] = opEXAF
	baseOps[0xEB] = func(c *CPU) int {
		c.Reg.D, c.Reg.H = c.Reg.H, c.Reg.D
		c.Reg.E, c.Reg.L = c.Reg.L, c.Reg.E
		return 4
	}
	baseOps[0xD9] = opEXX
}
