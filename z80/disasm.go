package z80

import "fmt"

var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var reg16Names = [4]string{"BC", "DE", "HL", "SP"}
var reg16PushNames = [4]string{"BC", "DE", "HL", "AF"}
var ccNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

// disasmZ80Ctx threads the byte fetcher and a running byte count, the
// secondary-core counterpart of m68k's disasmCtx.
type disasmZ80Ctx struct {
	fetch func() byte
	bytes int
}

func (d *disasmZ80Ctx) next() byte {
	d.bytes++
	return d.fetch()
}

// Disassemble renders one secondary-CPU instruction as text given its first
// opcode byte and a callback to fetch subsequent bytes (displacement,
// immediate, or prefix continuation). Returned length is the instruction's
// total size in bytes including the opcode.
func Disassemble(opcode byte, fetchNext func() byte) (string, int) {
	d := &disasmZ80Ctx{fetch: fetchNext}
	text := d.decodeBase(opcode)
	return text, 1 + d.bytes
}

func (d *disasmZ80Ctx) decodeBase(op byte) string {
	switch {
	case op == 0xCB:
		return d.decodeCB(d.next())
	case op == 0xED:
		return d.decodeED(d.next())
	case op == 0xDD:
		return d.decodeIndexed(d.next(), "IX")
	case op == 0xFD:
		return d.decodeIndexed(d.next(), "IY")
	case op == 0x00:
		return "NOP"
	case op == 0x76:
		return "HALT"
	case op == 0xF3:
		return "DI"
	case op == 0xFB:
		return "EI"
	case op >= 0x40 && op <= 0x7F:
		dest, src := (op>>3)&7, op&7
		return fmt.Sprintf("LD %s, %s", reg8Names[dest], reg8Names[src])
	case op&0xC7 == 0x06:
		dest := (op >> 3) & 7
		n := d.next()
		return fmt.Sprintf("LD %s, $%02X", reg8Names[dest], n)
	case op&0xCF == 0x01:
		rr := (op >> 4) & 3
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("LD %s, $%04X", reg16Names[rr], uint16(hi)<<8|uint16(lo))
	case op == 0x22:
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("LD ($%04X), HL", uint16(hi)<<8|uint16(lo))
	case op == 0x2A:
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("LD HL, ($%04X)", uint16(hi)<<8|uint16(lo))
	case op == 0x32:
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("LD ($%04X), A", uint16(hi)<<8|uint16(lo))
	case op == 0x3A:
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("LD A, ($%04X)", uint16(hi)<<8|uint16(lo))
	case op == 0x02:
		return "LD (BC), A"
	case op == 0x12:
		return "LD (DE), A"
	case op == 0x0A:
		return "LD A, (BC)"
	case op == 0x1A:
		return "LD A, (DE)"
	case op == 0xF9:
		return "LD SP, HL"
	case op == 0xEB:
		return "EX DE, HL"
	case op == 0x08:
		return "EX AF, AF'"
	case op == 0xD9:
		return "EXX"
	case op == 0xE3:
		return "EX (SP), HL"
	case op&0xC7 == 0x04:
		return fmt.Sprintf("INC %s", reg8Names[(op>>3)&7])
	case op&0xC7 == 0x05:
		return fmt.Sprintf("DEC %s", reg8Names[(op>>3)&7])
	case op&0xCF == 0x03:
		return fmt.Sprintf("INC %s", reg16Names[(op>>4)&3])
	case op&0xCF == 0x0B:
		return fmt.Sprintf("DEC %s", reg16Names[(op>>4)&3])
	case op&0xCF == 0x09:
		return fmt.Sprintf("ADD HL, %s", reg16Names[(op>>4)&3])
	case op >= 0x80 && op <= 0xBF:
		family := aluNames[(op-0x80)/8]
		return fmt.Sprintf("%s %s", family, reg8Names[op&7])
	case op&0xC7 == 0xC6:
		n := d.next()
		family := aluNames[(op>>3)&7]
		return fmt.Sprintf("%s $%02X", family, n)
	case op == 0xC3:
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("JP $%04X", uint16(hi)<<8|uint16(lo))
	case op&0xC7 == 0xC2:
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("JP %s, $%04X", ccNames[(op>>3)&7], uint16(hi)<<8|uint16(lo))
	case op == 0xE9:
		return "JP (HL)"
	case op == 0x18:
		d8 := int8(d.next())
		return fmt.Sprintf("JR %d", d8)
	case op == 0x10:
		d8 := int8(d.next())
		return fmt.Sprintf("DJNZ %d", d8)
	case op == 0x20 || op == 0x28 || op == 0x30 || op == 0x38:
		ccIdx := map[byte]byte{0x20: 0, 0x28: 1, 0x30: 2, 0x38: 3}[op]
		d8 := int8(d.next())
		return fmt.Sprintf("JR %s, %d", ccNames[ccIdx], d8)
	case op == 0xCD:
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("CALL $%04X", uint16(hi)<<8|uint16(lo))
	case op&0xC7 == 0xC4:
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("CALL %s, $%04X", ccNames[(op>>3)&7], uint16(hi)<<8|uint16(lo))
	case op == 0xC9:
		return "RET"
	case op&0xC7 == 0xC0:
		return fmt.Sprintf("RET %s", ccNames[(op>>3)&7])
	case op&0xC7 == 0xC7:
		return fmt.Sprintf("RST $%02X", op&0x38)
	case op&0xCF == 0xC5:
		return fmt.Sprintf("PUSH %s", reg16PushNames[(op>>4)&3])
	case op&0xCF == 0xC1:
		return fmt.Sprintf("POP %s", reg16PushNames[(op>>4)&3])
	case op == 0x07:
		return "RLCA"
	case op == 0x0F:
		return "RRCA"
	case op == 0x17:
		return "RLA"
	case op == 0x1F:
		return "RRA"
	case op == 0x27:
		return "DAA"
	case op == 0x2F:
		return "CPL"
	case op == 0x37:
		return "SCF"
	case op == 0x3F:
		return "CCF"
	}
	return fmt.Sprintf("DB $%02X", op)
}

func (d *disasmZ80Ctx) decodeCB(op byte) string {
	reg := op & 7
	switch {
	case op <= 0x3F:
		names := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
		return fmt.Sprintf("%s %s", names[op>>3], reg8Names[reg])
	case op <= 0x7F:
		return fmt.Sprintf("BIT %d, %s", (op>>3)&7, reg8Names[reg])
	case op <= 0xBF:
		return fmt.Sprintf("RES %d, %s", (op>>3)&7, reg8Names[reg])
	default:
		return fmt.Sprintf("SET %d, %s", (op>>3)&7, reg8Names[reg])
	}
}

func (d *disasmZ80Ctx) decodeED(op byte) string {
	switch op {
	case 0xA0:
		return "LDI"
	case 0xB0:
		return "LDIR"
	case 0xA8:
		return "LDD"
	case 0xB8:
		return "LDDR"
	case 0xA1:
		return "CPI"
	case 0xB1:
		return "CPIR"
	case 0xA9:
		return "CPD"
	case 0xB9:
		return "CPDR"
	case 0x44:
		return "NEG"
	case 0x45:
		return "RETN"
	case 0x4D:
		return "RETI"
	case 0x46:
		return "IM 0"
	case 0x56:
		return "IM 1"
	case 0x5E:
		return "IM 2"
	case 0x47:
		return "LD I, A"
	case 0x4F:
		return "LD R, A"
	case 0x57:
		return "LD A, I"
	case 0x5F:
		return "LD A, R"
	case 0x67:
		return "RRD"
	case 0x6F:
		return "RLD"
	}
	if op&0xC7 == 0x42 {
		return fmt.Sprintf("SBC HL, %s", reg16Names[(op>>4)&3])
	}
	if op&0xC7 == 0x4A {
		return fmt.Sprintf("ADC HL, %s", reg16Names[(op>>4)&3])
	}
	if op&0xC7 == 0x43 {
		return fmt.Sprintf("LD ($nn), %s", reg16Names[(op>>4)&3])
	}
	if op&0xC7 == 0x4B {
		return fmt.Sprintf("LD %s, ($nn)", reg16Names[(op>>4)&3])
	}
	return fmt.Sprintf("DB $ED, $%02X", op)
}

// decodeIndexed renders a DD/FD-prefixed opcode; CB-prefixed index forms
// (DDCB/FDCB) have a displacement before the sub-opcode, unlike every
// other prefixed instruction.
func (d *disasmZ80Ctx) decodeIndexed(op byte, ixName string) string {
	if op == 0xCB {
		disp := int8(d.next())
		sub := d.next()
		return fmt.Sprintf("%s (%s%+d) ; %s-indexed bit op", d.decodeCB(sub&0xF8|6), ixName, disp, ixName)
	}
	switch op {
	case 0x21:
		lo, hi := d.next(), d.next()
		return fmt.Sprintf("LD %s, $%04X", ixName, uint16(hi)<<8|uint16(lo))
	case 0xE5:
		return fmt.Sprintf("PUSH %s", ixName)
	case 0xE1:
		return fmt.Sprintf("POP %s", ixName)
	case 0x36:
		disp := int8(d.next())
		n := d.next()
		return fmt.Sprintf("LD (%s%+d), $%02X", ixName, disp, n)
	case 0xE9:
		return fmt.Sprintf("JP (%s)", ixName)
	case 0xF9:
		return fmt.Sprintf("LD SP, %s", ixName)
	}
	if op == 0x34 || op == 0x35 || (op&0xC0 == 0x40 && op != 0x76 && (op&7 == 6 || op&0x38 == 0x30)) || (op >= 0x86 && op <= 0xBE && op&7 == 6) {
		disp := int8(d.next())
		return fmt.Sprintf("%s ; (%s%+d)", d.decodeBase(op), ixName, disp)
	}
	return d.decodeBase(op)
}

// String renders a one-line register summary for trace output, the
// secondary-core counterpart of m68k.Registers.String.
func (r Registers) String() string {
	return fmt.Sprintf("AF=%02X%02X BC=%02X%02X DE=%02X%02X HL=%02X%02X IX=%04X IY=%04X SP=%04X PC=%04X",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.IX, r.IY, r.SP, r.PC)
}
