package m68k

import "github.com/otleylabs/gencore/size"

// bitOp selects the operation applied once the old bit value has been
// captured into Z.
type bitOp uint8

const (
	bitTest bitOp = iota
	bitChange
	bitClear
	bitSet
)

func init() {
	registerBitDynamic()
	registerBitStatic()
}

// registerBitDynamic populates BTST/BCHG/BCLR/BSET Dn,<ea>: the bit number
// comes from a data register, encoding 0000 rrr1 oo mmm rrr (oo selects
// the operation).
func registerBitDynamic() {
	for dn := uint16(0); dn < 8; dn++ {
		for mode := uint16(0); mode < 8; mode++ {
			if mode == eaAddrRegDirect {
				continue
			}
			for reg := uint16(0); reg < 8; reg++ {
				if mode == eaExtended && reg > eaExtPCIndex {
					continue
				}
				setOp(0x0100|dn<<9|0<<6|mode<<3|reg, 4, makeBitDynamic(bitTest))
				setOp(0x0100|dn<<9|1<<6|mode<<3|reg, 8, makeBitDynamic(bitChange))
				setOp(0x0100|dn<<9|2<<6|mode<<3|reg, 8, makeBitDynamic(bitClear))
				setOp(0x0100|dn<<9|3<<6|mode<<3|reg, 8, makeBitDynamic(bitSet))
			}
		}
	}
}

func makeBitDynamic(op bitOp) opFunc {
	return func(c *CPU) {
		dn := (c.ir >> 9) & 7
		mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
		bitNum := c.Reg.D[dn]
		c.execBitOp(op, mode, reg, bitNum)
	}
}

// registerBitStatic populates the #imm,<ea> forms: 0000 1000 oo mmm rrr
// followed by an extension word carrying the bit number.
func registerBitStatic() {
	for mode := uint16(0); mode < 8; mode++ {
		if mode == eaAddrRegDirect {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == eaExtended && reg > eaExtPCIndex {
				continue
			}
			setOp(0x0800|0<<6|mode<<3|reg, 8, makeBitStatic(bitTest))
			setOp(0x0800|1<<6|mode<<3|reg, 12, makeBitStatic(bitChange))
			setOp(0x0800|2<<6|mode<<3|reg, 12, makeBitStatic(bitClear))
			setOp(0x0800|3<<6|mode<<3|reg, 12, makeBitStatic(bitSet))
		}
	}
}

func makeBitStatic(op bitOp) opFunc {
	return func(c *CPU) {
		bitNum := uint32(c.fetchPC() & 0xFF)
		mode, reg := uint8((c.ir>>3)&7), uint8(c.ir&7)
		c.execBitOp(op, mode, reg, bitNum)
	}
}

// execBitOp implements the bit-test-and-manipulate rule: the bit index is
// modulo 8 for a memory destination, modulo 32 for a data-register
// destination; Z reflects the old bit; the operation then applies.
func (c *CPU) execBitOp(op bitOp, mode, reg uint8, bitNum uint32) {
	sz := size.Byte
	if mode == eaDataRegDirect {
		sz = size.Long
	}
	modulus := uint32(8)
	if sz == size.Long {
		modulus = 32
	}
	bit := bitNum % modulus
	mask := uint32(1) << bit

	ea := c.resolveEA(mode, reg, sz)
	val := ea.Read(c)
	old := val & mask

	c.setFlag(FlagZ, old == 0)

	switch op {
	case bitTest:
		return
	case bitChange:
		val ^= mask
	case bitClear:
		val &^= mask
	case bitSet:
		val |= mask
	}
	ea.Write(c, val)
}
