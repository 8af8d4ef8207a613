package m68k

import "github.com/otleylabs/gencore/size"

func init() {
	registerMOVE()
	registerMOVEA()
	registerMOVEQ()
	registerMOVEP()
	registerLEA()
	registerPEA()
	registerMOVEM()
	registerEXG()
	registerSWAP()
	registerEXT()
}

// moveSizeMap maps MOVE's non-standard size encoding (01=B, 11=W, 10=L) to
// size.Size.
var moveSizeMap = [4]size.Size{0, size.Byte, size.Long, size.Word}

// registerMOVE populates MOVE.B/W/L: 00SS DDDd ddss ssss.
func registerMOVE() {
	for _, szBits := range []uint16{0x1000, 0x2000, 0x3000} {
		for dstMode := uint16(0); dstMode < 8; dstMode++ {
			if dstMode == eaAddrRegDirect {
				continue // MOVEA handles address-register destinations
			}
			for dstReg := uint16(0); dstReg < 8; dstReg++ {
				if dstMode == eaExtended && dstReg > eaExtPCIndex {
					continue
				}
				for srcMode := uint16(0); srcMode < 8; srcMode++ {
					for srcReg := uint16(0); srcReg < 8; srcReg++ {
						if srcMode == eaExtended && srcReg > eaExtImmediate {
							continue
						}
						opcode := szBits | dstReg<<9 | dstMode<<6 | srcMode<<3 | srcReg
						setOp(opcode, 4, opMOVE)
					}
				}
			}
		}
	}
}

func opMOVE(c *CPU) {
	sz := moveSizeMap[(c.ir>>12)&3]
	srcMode, srcReg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	dstMode, dstReg := uint8((c.ir>>6)&7), uint8((c.ir>>9)&7)

	src := c.resolveEA(srcMode, srcReg, sz)
	val := src.Read(c)
	dst := c.resolveEA(dstMode, dstReg, sz)
	dst.Write(c, val)

	c.setFlagsLogical(val, sz)
}

func registerMOVEA() {
	for _, szBits := range []uint16{0x2000, 0x3000} { // long, word
		for dstReg := uint16(0); dstReg < 8; dstReg++ {
			for srcMode := uint16(0); srcMode < 8; srcMode++ {
				for srcReg := uint16(0); srcReg < 8; srcReg++ {
					if srcMode == eaExtended && srcReg > eaExtImmediate {
						continue
					}
					opcode := szBits | dstReg<<9 | eaAddrRegDirect<<6 | srcMode<<3 | srcReg
					setOp(opcode, 4, opMOVEA)
				}
			}
		}
	}
}

func opMOVEA(c *CPU) {
	sz := moveSizeMap[(c.ir>>12)&3]
	srcMode, srcReg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	an := (c.ir >> 9) & 7

	src := c.resolveEA(srcMode, srcReg, sz)
	val := src.Read(c)
	if sz == size.Word {
		val = size.Word.SignExtend(val)
	}
	c.Reg.A[an] = val
	// MOVEA does not affect condition codes.
}

func registerMOVEQ() {
	for dn := uint16(0); dn < 8; dn++ {
		for data := uint16(0); data < 256; data++ {
			setOp(0x7000|dn<<9|data, 4, opMOVEQ)
		}
	}
}

func opMOVEQ(c *CPU) {
	dn := (c.ir >> 9) & 7
	val := size.Byte.SignExtend(uint32(c.ir & 0xFF))
	c.Reg.D[dn] = val
	c.setFlagsLogical(val, size.Long)
}

// registerMOVEP populates MOVEP, byte-interleaved I/O transfer between a
// data register and alternating bytes of (d16,An): 0000 DDD1 MM001 AAA.
func registerMOVEP() {
	for dn := uint16(0); dn < 8; dn++ {
		for _, mm := range []uint16{0b100, 0b101, 0b110, 0b111} {
			for an := uint16(0); an < 8; an++ {
				opcode := 0x0008 | dn<<9 | mm<<6 | an
				setOp(opcode, 16, opMOVEP)
			}
		}
	}
}

func opMOVEP(c *CPU) {
	dn := (c.ir >> 9) & 7
	mm := (c.ir >> 6) & 7
	an := c.ir & 7
	disp := int16(c.fetchPC())
	addr := uint32(int32(c.Reg.A[an]) + int32(disp))

	toMemory := mm&1 == 0
	isLong := mm&2 != 0

	n := 2
	if isLong {
		n = 4
	}
	if toMemory {
		val := c.Reg.D[dn]
		shift := (n - 1) * 8
		for i := 0; i < n; i++ {
			c.writeBus(addr+uint32(i)*2, (val>>uint(shift))&0xFF, size.Byte)
			shift -= 8
		}
		return
	}
	var val uint32
	for i := 0; i < n; i++ {
		val = val<<8 | c.readBus(addr+uint32(i)*2, size.Byte)
	}
	if isLong {
		c.Reg.D[dn] = val
	} else {
		c.Reg.D[dn] = (c.Reg.D[dn] &^ 0xFFFF) | val
	}
}

func registerLEA() {
	for an := uint16(0); an < 8; an++ {
		for mode := uint16(2); mode < 8; mode++ { // memory-only modes
			if mode == eaAddrRegPostInc || mode == eaAddrRegPreDec {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				opcode := 0x41C0 | an<<9 | mode<<3 | reg
				setOp(opcode, 4, opLEA)
			}
		}
	}
}

func opLEA(c *CPU) {
	an := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, size.Long)
	c.Reg.A[an] = ea.Address()
}

func registerPEA() {
	for mode := uint16(2); mode < 8; mode++ {
		if mode == eaAddrRegPostInc || mode == eaAddrRegPreDec {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == eaExtended && reg > eaExtPCIndex {
				continue
			}
			opcode := 0x4840 | mode<<3 | reg
			setOp(opcode, 12, opPEA)
		}
	}
}

func opPEA(c *CPU) {
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, size.Long)
	c.pushLong(ea.Address())
}

// registerMOVEM populates register-to-memory (0100 1000 1Sss ssss) and
// memory-to-register (0100 1100 1Sss ssss) multi-register transfers.
func registerMOVEM() {
	for _, sBit := range []uint16{0, 0x0040} { // word, long
		for mode := uint16(2); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			if mode == eaAddrRegPostInc {
				continue // only valid for memory-to-register
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x4880|sBit|mode<<3|reg, 8, opMOVEMStore)
			}
		}
		for mode := uint16(2); mode < 8; mode++ {
			if mode == eaAddrRegDirect || mode == eaAddrRegPreDec {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtImmediate {
					continue
				}
				setOp(0x4C80|sBit|mode<<3|reg, 12, opMOVEMLoad)
			}
		}
		for reg := uint16(0); reg < 8; reg++ {
			setOp(0x4880|sBit|eaAddrRegPreDec<<3|reg, 8, opMOVEMStore)
			setOp(0x4C80|sBit|eaAddrRegPostInc<<3|reg, 12, opMOVEMLoad)
		}
	}
}

// opMOVEMStore walks the register mask and writes selected registers to
// memory. Pre-decrement destinations walk A7..A0,D7..D0 (the reversed
// order hardware uses so pushes land registers in ascending address order);
// every other destination walks D0..D7,A0..A7. The address register is
// updated exactly once, at the end of the transfer.
func opMOVEMStore(c *CPU) {
	sz := size.Word
	if c.ir&0x0040 != 0 {
		sz = size.Long
	}
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	mask := c.fetchPC()

	if mode == eaAddrRegPreDec {
		addr := c.Reg.A[reg]
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			var val uint32
			if i < 8 {
				val = c.Reg.A[7-i]
			} else {
				val = c.Reg.D[15-i]
			}
			addr -= uint32(sz)
			c.writeBus(addr, val, sz)
		}
		c.Reg.A[reg] = addr
		return
	}

	ea := c.resolveEA(mode, reg, sz)
	idx := 0
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		var val uint32
		if i < 8 {
			val = c.Reg.D[i]
		} else {
			val = c.Reg.A[i-8]
		}
		ea.WriteOffset(c, sz, idx, val)
		idx++
	}
}

func opMOVEMLoad(c *CPU) {
	sz := size.Word
	if c.ir&0x0040 != 0 {
		sz = size.Long
	}
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	mask := c.fetchPC()

	if mode == eaAddrRegPostInc {
		addr := c.Reg.A[reg]
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			val := c.readBus(addr, sz)
			if sz == size.Word {
				val = size.Word.SignExtend(val)
			}
			if i < 8 {
				c.Reg.D[i] = val
			} else {
				c.Reg.A[i-8] = val
			}
			addr += uint32(sz)
		}
		c.Reg.A[reg] = addr
		return
	}

	ea := c.resolveEA(mode, reg, sz)
	idx := 0
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		val := ea.ReadOffset(c, sz, idx)
		idx++
		if sz == size.Word {
			val = size.Word.SignExtend(val)
		}
		if i < 8 {
			c.Reg.D[i] = val
		} else {
			c.Reg.A[i-8] = val
		}
	}
}

// registerEXG populates EXG Dx,Dy / Ax,Ay / Dx,Ay: 1100 xxx1 oooo oyyy.
func registerEXG() {
	for x := uint16(0); x < 8; x++ {
		for y := uint16(0); y < 8; y++ {
			setOp(0xC140|x<<9|y, 6, opEXGData)
			setOp(0xC148|x<<9|y, 6, opEXGAddr)
			setOp(0xC188|x<<9|y, 6, opEXGDataAddr)
		}
	}
}

func opEXGData(c *CPU) {
	x, y := (c.ir>>9)&7, c.ir&7
	c.Reg.D[x], c.Reg.D[y] = c.Reg.D[y], c.Reg.D[x]
}
func opEXGAddr(c *CPU) {
	x, y := (c.ir>>9)&7, c.ir&7
	c.Reg.A[x], c.Reg.A[y] = c.Reg.A[y], c.Reg.A[x]
}
func opEXGDataAddr(c *CPU) {
	x, y := (c.ir>>9)&7, c.ir&7
	c.Reg.D[x], c.Reg.A[y] = c.Reg.A[y], c.Reg.D[x]
}

func registerSWAP() {
	for dn := uint16(0); dn < 8; dn++ {
		setOp(0x4840|dn, 4, opSWAP)
	}
}

func opSWAP(c *CPU) {
	dn := c.ir & 7
	v := c.Reg.D[dn]
	v = v<<16 | v>>16
	c.Reg.D[dn] = v
	c.setFlagsLogical(v, size.Long)
}

// registerEXT populates EXT.W (byte->word) and EXT.L (word->long):
// 0100 1000 1S000 DDD.
func registerEXT() {
	for dn := uint16(0); dn < 8; dn++ {
		setOp(0x4880|dn, 4, opEXTWord)
		setOp(0x48C0|dn, 4, opEXTLong)
	}
}

func opEXTWord(c *CPU) {
	dn := c.ir & 7
	v := size.Byte.SignExtend(c.Reg.D[dn]) & size.Word.Mask()
	c.Reg.D[dn] = (c.Reg.D[dn] &^ size.Word.Mask()) | v
	c.setFlagsLogical(v, size.Word)
}

func opEXTLong(c *CPU) {
	dn := c.ir & 7
	v := size.Word.SignExtend(c.Reg.D[dn])
	c.Reg.D[dn] = v
	c.setFlagsLogical(v, size.Long)
}
