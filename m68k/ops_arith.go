package m68k

import "github.com/otleylabs/gencore/size"

func init() {
	registerADD()
	registerADDA()
	registerADDI()
	registerADDQ()
	registerADDX()
	registerSUB()
	registerSUBA()
	registerSUBI()
	registerSUBQ()
	registerSUBX()
	registerCMP()
	registerCMPA()
	registerCMPI()
	registerCMPM()
	registerMUL()
	registerDIV()
	registerBCD()
}

var opSizeBits = [3]uint16{0, 0x0040, 0x0080} // byte, word, long at bits 6-7
var opSizeList = [3]size.Size{size.Byte, size.Word, size.Long}

// registerADD populates ADD Dn,<ea> / ADD <ea>,Dn: 1101 DDD o SSmm mrrr,
// o=0 is <ea>+Dn->Dn, o=1 is Dn+<ea>-><ea> (memory destination only).
func registerADD() {
	for dn := uint16(0); dn < 8; dn++ {
		for si, szBits := range opSizeBits {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtImmediate {
						continue
					}
					if mode == eaAddrRegDirect && opSizeList[si] == size.Byte {
						continue
					}
					setOp(0xD000|dn<<9|szBits|mode<<3|reg, 4, opADDtoReg)
					if mode != eaDataRegDirect && mode != eaAddrRegDirect {
						setOp(0xD100|dn<<9|szBits|mode<<3|reg, 8, opADDtoMem)
					}
				}
			}
		}
	}
}

func opADDtoReg(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := c.resolveEA(mode, reg, sz).Read(c)
	dst := c.Reg.D[dn] & sz.Mask()
	result := (dst + src) & sz.Mask()
	c.Reg.D[dn] = (c.Reg.D[dn] &^ sz.Mask()) | result
	c.setFlagsAdd(src, dst, result, sz)
}

func opADDtoMem(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	dst := ea.Read(c)
	src := c.Reg.D[dn] & sz.Mask()
	result := (dst + src) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsAdd(src, dst, result, sz)
}

func registerADDA() {
	for an := uint16(0); an < 8; an++ {
		for _, szBits := range []uint16{0x00C0, 0x01C0} { // word, long
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtImmediate {
						continue
					}
					setOp(0xD000|an<<9|szBits|mode<<3|reg, 8, opADDA)
				}
			}
		}
	}
}

func opADDA(c *CPU) {
	sz := size.Word
	if c.ir&0x0100 != 0 {
		sz = size.Long
	}
	an := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := c.resolveEA(mode, reg, sz).Read(c)
	if sz == size.Word {
		src = size.Word.SignExtend(src)
	}
	c.Reg.A[an] += src
	// ADDA never affects condition codes.
}

func registerADDI() {
	for si, szBits := range opSizeBits {
		for mode := uint16(0); mode < 8; mode++ {
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				if mode == eaAddrRegDirect {
					continue
				}
				_ = opSizeList[si]
				setOp(0x0600|szBits|mode<<3|reg, 8, opADDI)
			}
		}
	}
}

func opADDI(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	imm := c.fetchImmediate(sz)
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	dst := ea.Read(c)
	result := (dst + imm) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsAdd(imm, dst, result, sz)
}

// fetchImmediate reads an immediate of size sz from the instruction stream
// for the ADDI/SUBI/ANDI/ORI/EORI/CMPI family, which encode it inline
// rather than through resolveEA's eaExtImmediate path.
func (c *CPU) fetchImmediate(sz size.Size) uint32 {
	switch sz {
	case size.Byte:
		return uint32(c.fetchPC() & 0xFF)
	case size.Word:
		return uint32(c.fetchPC())
	default:
		return c.fetchPCLong()
	}
}

func registerADDQ() {
	for data := uint16(1); data <= 8; data++ {
		d3 := data & 7 // 8 encodes as 0
		for si, szBits := range opSizeBits {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtPCIndex {
						continue
					}
					if mode == eaAddrRegDirect && opSizeList[si] == size.Byte {
						continue
					}
					setOp(0x5000|d3<<9|szBits|mode<<3|reg, 4, opADDQ)
				}
			}
		}
	}
}

func opADDQ(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	data := (c.ir >> 9) & 7
	if data == 0 {
		data = 8
	}
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	if mode == eaAddrRegDirect {
		// ADDQ to An always operates on the full long, no flags.
		c.Reg.A[reg] += uint32(data)
		return
	}
	dst := ea.Read(c)
	result := (dst + uint32(data)) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsAdd(uint32(data), dst, result, sz)
}

// registerADDX populates data-register and predecrement-memory ADDX forms:
// 1101 xxx1 SS00 0yyy (Dy,Dx) / 1101 xxx1 SS00 1yyy (-(Ay),-(Ax)).
func registerADDX() {
	for si, szBits := range opSizeBits {
		_ = si
		for x := uint16(0); x < 8; x++ {
			for y := uint16(0); y < 8; y++ {
				setOp(0xD100|x<<9|szBits|y, 4, opADDXReg)
				setOp(0xD108|x<<9|szBits|y, 18, opADDXMem)
			}
		}
	}
}

func opADDXReg(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	x, y := (c.ir>>9)&7, c.ir&7
	xv := int(0)
	if c.flag(FlagX) {
		xv = 1
	}
	src := c.Reg.D[y] & sz.Mask()
	dst := c.Reg.D[x] & sz.Mask()
	result := (dst + src + uint32(xv)) & sz.Mask()
	c.Reg.D[x] = (c.Reg.D[x] &^ sz.Mask()) | result
	c.setFlagsAddX(src, dst, result, sz)
}

func opADDXMem(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	x, y := (c.ir>>9)&7, c.ir&7
	c.Reg.A[y] -= c.indexStep(uint8(y), sz)
	src := c.readBus(c.Reg.A[y], sz)
	c.Reg.A[x] -= c.indexStep(uint8(x), sz)
	dst := c.readBus(c.Reg.A[x], sz)
	xv := uint32(0)
	if c.flag(FlagX) {
		xv = 1
	}
	result := (dst + src + xv) & sz.Mask()
	c.writeBus(c.Reg.A[x], result, sz)
	c.setFlagsAddX(src, dst, result, sz)
}

// --- SUB family mirrors ADD family exactly, sign-inverted flags ---

func registerSUB() {
	for dn := uint16(0); dn < 8; dn++ {
		for si, szBits := range opSizeBits {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtImmediate {
						continue
					}
					if mode == eaAddrRegDirect && opSizeList[si] == size.Byte {
						continue
					}
					setOp(0x9000|dn<<9|szBits|mode<<3|reg, 4, opSUBtoReg)
					if mode != eaDataRegDirect && mode != eaAddrRegDirect {
						setOp(0x9100|dn<<9|szBits|mode<<3|reg, 8, opSUBtoMem)
					}
				}
			}
		}
	}
}

func opSUBtoReg(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := c.resolveEA(mode, reg, sz).Read(c)
	dst := c.Reg.D[dn] & sz.Mask()
	result := (dst - src) & sz.Mask()
	c.Reg.D[dn] = (c.Reg.D[dn] &^ sz.Mask()) | result
	c.setFlagsSub(src, dst, result, sz)
}

func opSUBtoMem(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	dst := ea.Read(c)
	src := c.Reg.D[dn] & sz.Mask()
	result := (dst - src) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsSub(src, dst, result, sz)
}

func registerSUBA() {
	for an := uint16(0); an < 8; an++ {
		for _, szBits := range []uint16{0x00C0, 0x01C0} {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtImmediate {
						continue
					}
					setOp(0x9000|an<<9|szBits|mode<<3|reg, 8, opSUBA)
				}
			}
		}
	}
}

func opSUBA(c *CPU) {
	sz := size.Word
	if c.ir&0x0100 != 0 {
		sz = size.Long
	}
	an := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := c.resolveEA(mode, reg, sz).Read(c)
	if sz == size.Word {
		src = size.Word.SignExtend(src)
	}
	c.Reg.A[an] -= src
}

func registerSUBI() {
	for _, szBits := range opSizeBits {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x0400|szBits|mode<<3|reg, 8, opSUBI)
			}
		}
	}
}

func opSUBI(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	imm := c.fetchImmediate(sz)
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	dst := ea.Read(c)
	result := (dst - imm) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsSub(imm, dst, result, sz)
}

func registerSUBQ() {
	for data := uint16(1); data <= 8; data++ {
		d3 := data & 7
		for si, szBits := range opSizeBits {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtPCIndex {
						continue
					}
					if mode == eaAddrRegDirect && opSizeList[si] == size.Byte {
						continue
					}
					setOp(0x5100|d3<<9|szBits|mode<<3|reg, 4, opSUBQ)
				}
			}
		}
	}
}

func opSUBQ(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	data := (c.ir >> 9) & 7
	if data == 0 {
		data = 8
	}
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, sz)
	if mode == eaAddrRegDirect {
		c.Reg.A[reg] -= uint32(data)
		return
	}
	dst := ea.Read(c)
	result := (dst - uint32(data)) & sz.Mask()
	ea.Write(c, result)
	c.setFlagsSub(uint32(data), dst, result, sz)
}

func registerSUBX() {
	for _, szBits := range opSizeBits {
		for x := uint16(0); x < 8; x++ {
			for y := uint16(0); y < 8; y++ {
				setOp(0x9100|x<<9|szBits|y, 4, opSUBXReg)
				setOp(0x9108|x<<9|szBits|y, 18, opSUBXMem)
			}
		}
	}
}

func opSUBXReg(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	x, y := (c.ir>>9)&7, c.ir&7
	xv := uint32(0)
	if c.flag(FlagX) {
		xv = 1
	}
	src := c.Reg.D[y] & sz.Mask()
	dst := c.Reg.D[x] & sz.Mask()
	result := (dst - src - xv) & sz.Mask()
	c.Reg.D[x] = (c.Reg.D[x] &^ sz.Mask()) | result
	c.setFlagsSubX(src, dst, result, sz)
}

func opSUBXMem(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	x, y := (c.ir>>9)&7, c.ir&7
	c.Reg.A[y] -= c.indexStep(uint8(y), sz)
	src := c.readBus(c.Reg.A[y], sz)
	c.Reg.A[x] -= c.indexStep(uint8(x), sz)
	dst := c.readBus(c.Reg.A[x], sz)
	xv := uint32(0)
	if c.flag(FlagX) {
		xv = 1
	}
	result := (dst - src - xv) & sz.Mask()
	c.writeBus(c.Reg.A[x], result, sz)
	c.setFlagsSubX(src, dst, result, sz)
}

// --- CMP family: subtraction's flags without storing the result ---

func registerCMP() {
	for dn := uint16(0); dn < 8; dn++ {
		for _, szBits := range opSizeBits {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtImmediate {
						continue
					}
					setOp(0xB000|dn<<9|szBits|mode<<3|reg, 4, opCMP)
				}
			}
		}
	}
}

func opCMP(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := c.resolveEA(mode, reg, sz).Read(c)
	dst := c.Reg.D[dn] & sz.Mask()
	result := (dst - src) & sz.Mask()
	c.setFlagsCmp(src, dst, result, sz)
}

func registerCMPA() {
	for an := uint16(0); an < 8; an++ {
		for _, szBits := range []uint16{0x00C0, 0x01C0} {
			for mode := uint16(0); mode < 8; mode++ {
				for reg := uint16(0); reg < 8; reg++ {
					if mode == eaExtended && reg > eaExtImmediate {
						continue
					}
					setOp(0xB000|an<<9|szBits|mode<<3|reg, 6, opCMPA)
				}
			}
		}
	}
}

func opCMPA(c *CPU) {
	sz := size.Word
	if c.ir&0x0100 != 0 {
		sz = size.Long
	}
	an := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := c.resolveEA(mode, reg, sz).Read(c)
	if sz == size.Word {
		src = size.Word.SignExtend(src)
	}
	dst := c.Reg.A[an]
	result := dst - src
	c.setFlagsCmp(src, dst, result, size.Long)
}

func registerCMPI() {
	for _, szBits := range opSizeBits {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x0C00|szBits|mode<<3|reg, 8, opCMPI)
			}
		}
	}
}

func opCMPI(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	imm := c.fetchImmediate(sz)
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	dst := c.resolveEA(mode, reg, sz).Read(c)
	result := (dst - imm) & sz.Mask()
	c.setFlagsCmp(imm, dst, result, sz)
}

func registerCMPM() {
	for _, szBits := range opSizeBits {
		for x := uint16(0); x < 8; x++ {
			for y := uint16(0); y < 8; y++ {
				setOp(0xB108|x<<9|szBits|y, 12, opCMPM)
			}
		}
	}
}

func opCMPM(c *CPU) {
	sz := opSizeList[(c.ir>>6)&3]
	x, y := (c.ir>>9)&7, c.ir&7
	src := c.readBus(c.Reg.A[y], sz)
	c.Reg.A[y] += c.indexStep(uint8(y), sz)
	dst := c.readBus(c.Reg.A[x], sz)
	c.Reg.A[x] += c.indexStep(uint8(x), sz)
	result := (dst - src) & sz.Mask()
	c.setFlagsCmp(src, dst, result, sz)
}

// --- Multiply / divide ---

func registerMUL() {
	for dn := uint16(0); dn < 8; dn++ {
		for mode := uint16(0); mode < 8; mode++ {
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtImmediate {
					continue
				}
				setOp(0xC0C0|dn<<9|mode<<3|reg, 70, opMULU)
				setOp(0xC1C0|dn<<9|mode<<3|reg, 70, opMULS)
			}
		}
	}
}

func opMULU(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := c.resolveEA(mode, reg, size.Word).Read(c) & 0xFFFF
	dst := c.Reg.D[dn] & 0xFFFF
	result := src * dst
	c.Reg.D[dn] = result
	c.setFlagsLogical(result, size.Long)
}

func opMULS(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	src := int32(int16(c.resolveEA(mode, reg, size.Word).Read(c)))
	dst := int32(int16(c.Reg.D[dn]))
	result := uint32(src * dst)
	c.Reg.D[dn] = result
	c.setFlagsLogical(result, size.Long)
}

func registerDIV() {
	for dn := uint16(0); dn < 8; dn++ {
		for mode := uint16(0); mode < 8; mode++ {
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtImmediate {
					continue
				}
				setOp(0x80C0|dn<<9|mode<<3|reg, 140, opDIVU)
				setOp(0x81C0|dn<<9|mode<<3|reg, 158, opDIVS)
			}
		}
	}
}

func opDIVU(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	divisor := c.resolveEA(mode, reg, size.Word).Read(c) & 0xFFFF
	if divisor == 0 {
		c.exception(vecZeroDivide)
		return
	}
	dividend := c.Reg.D[dn]
	quot := dividend / divisor
	rem := dividend % divisor
	if quot > 0xFFFF {
		c.setFlag(FlagV, true)
		return
	}
	c.Reg.D[dn] = rem<<16 | (quot & 0xFFFF)
	c.setFlag(FlagC, false)
	c.setFlagsLogical(quot&0xFFFF, size.Word)
}

func opDIVS(c *CPU) {
	dn := (c.ir >> 9) & 7
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	divisor := int32(int16(c.resolveEA(mode, reg, size.Word).Read(c)))
	if divisor == 0 {
		c.exception(vecZeroDivide)
		return
	}
	dividend := int32(c.Reg.D[dn])
	quot := dividend / divisor
	rem := dividend % divisor
	if quot > 32767 || quot < -32768 {
		c.setFlag(FlagV, true)
		return
	}
	c.Reg.D[dn] = uint32(rem)<<16 | uint32(uint16(quot))
	c.setFlag(FlagC, false)
	c.setFlagsLogical(uint32(uint16(quot)), size.Word)
}

// --- BCD: ABCD, SBCD, NBCD (byte-sized, packed decimal) ---

func registerBCD() {
	for x := uint16(0); x < 8; x++ {
		for y := uint16(0); y < 8; y++ {
			setOp(0xC100|x<<9|y, 6, opABCDReg)
			setOp(0xC108|x<<9|y, 18, opABCDMem)
			setOp(0x8100|x<<9|y, 6, opSBCDReg)
			setOp(0x8108|x<<9|y, 18, opSBCDMem)
		}
	}
	for mode := uint16(0); mode < 8; mode++ {
		if mode == eaAddrRegDirect {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == eaExtended && reg > eaExtPCIndex {
				continue
			}
			setOp(0x4800|mode<<3|reg, 6, opNBCD)
		}
	}
}

func bcdAdd(c *CPU, a, b byte) byte {
	xv := byte(0)
	if c.flag(FlagX) {
		xv = 1
	}
	result := int(a) + int(b) + int(xv)
	if (a&0xF)+(b&0xF)+xv > 9 {
		result += 6
	}
	carry := false
	if result > 0x99 {
		result += 0x60
		carry = true
	}
	r := byte(result)
	c.setFlag(FlagC, carry)
	c.setFlag(FlagX, carry)
	if r != 0 {
		c.setFlag(FlagZ, false)
	}
	c.setFlag(FlagN, r&0x80 != 0)
	return r
}

func bcdSub(c *CPU, a, b byte) byte {
	xv := byte(0)
	if c.flag(FlagX) {
		xv = 1
	}
	result := int(a) - int(b) - int(xv)
	borrowLow := (a&0xF) < (b&0xF)+xv
	if borrowLow {
		result -= 6
	}
	borrow := false
	if result < 0 {
		result -= 0x60
		borrow = true
	}
	r := byte(result)
	c.setFlag(FlagC, borrow)
	c.setFlag(FlagX, borrow)
	if r != 0 {
		c.setFlag(FlagZ, false)
	}
	c.setFlag(FlagN, r&0x80 != 0)
	return r
}

func opABCDReg(c *CPU) {
	x, y := (c.ir>>9)&7, c.ir&7
	r := bcdAdd(c, byte(c.Reg.D[x]), byte(c.Reg.D[y]))
	c.Reg.D[x] = c.Reg.D[x]&^0xFF | uint32(r)
}

func opABCDMem(c *CPU) {
	x, y := (c.ir>>9)&7, c.ir&7
	c.Reg.A[y]--
	b := c.readBus(c.Reg.A[y], size.Byte)
	c.Reg.A[x]--
	a := c.readBus(c.Reg.A[x], size.Byte)
	r := bcdAdd(c, byte(a), byte(b))
	c.writeBus(c.Reg.A[x], uint32(r), size.Byte)
}

func opSBCDReg(c *CPU) {
	x, y := (c.ir>>9)&7, c.ir&7
	r := bcdSub(c, byte(c.Reg.D[x]), byte(c.Reg.D[y]))
	c.Reg.D[x] = c.Reg.D[x]&^0xFF | uint32(r)
}

func opSBCDMem(c *CPU) {
	x, y := (c.ir>>9)&7, c.ir&7
	c.Reg.A[y]--
	b := c.readBus(c.Reg.A[y], size.Byte)
	c.Reg.A[x]--
	a := c.readBus(c.Reg.A[x], size.Byte)
	r := bcdSub(c, byte(a), byte(b))
	c.writeBus(c.Reg.A[x], uint32(r), size.Byte)
}

func opNBCD(c *CPU) {
	mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
	ea := c.resolveEA(mode, reg, size.Byte)
	v := byte(ea.Read(c))
	r := bcdSub(c, 0, v)
	ea.Write(c, uint32(r))
}
