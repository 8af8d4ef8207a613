package m68k

import (
	"fmt"
	"strings"
)

// sizeSuffixTable holds the mnemonic-suffix table (".B"/".W"/".L"/none)
// for the three two-bit size encodings the opcode space uses: bits 7-6
// for most groups, bits 13-12 for MOVE.
var sizeSuffixTable = [4]string{".B", ".W", ".L", ""}

var condNames = [16]string{
	"T", "F", "HI", "LS", "CC", "CS", "NE", "EQ",
	"VC", "VS", "PL", "MI", "GE", "LT", "GT", "LE",
}

// disasmCtx threads the extension-word fetcher and a running word count
// through EA formatting with an explicit running word count.
type disasmCtx struct {
	fetch func() uint16
	words int
}

func (d *disasmCtx) nextWord() uint16 {
	d.words++
	return d.fetch()
}

// Disassemble renders one primary-CPU instruction as text, given its first
// word and a callback to fetch subsequent extension words. It is a pure
// function of its inputs: calling fetch the same way twice yields the
// same text. Returned length is the instruction's total
// size in bytes, including the opcode word.
func Disassemble(opcode uint16, fetchExt func() uint16) (string, int) {
	d := &disasmCtx{fetch: fetchExt}
	text := d.decode(opcode)
	return text, 2 + d.words*2
}

func (d *disasmCtx) decode(w uint16) string {
	switch (w >> 12) & 0xF {
	case 0x0:
		return d.decodeGroup0(w)
	case 0x1:
		return d.decodeMove(w, size1)
	case 0x2:
		return d.decodeMove(w, size3)
	case 0x3:
		return d.decodeMove(w, size2)
	case 0x4:
		return d.decodeGroup4(w)
	case 0x5:
		return d.decodeGroup5(w)
	case 0x6:
		return d.decodeGroup6(w)
	case 0x7:
		dn := (w >> 9) & 7
		data := int8(w & 0xFF)
		return fmt.Sprintf("MOVEQ #%d, D%d", data, dn)
	case 0x8:
		return d.decodeArithLike(w, "OR", "SBCD", "DIVU", "DIVS")
	case 0x9:
		return d.decodeArithLike(w, "SUB", "SUBX", "SUBA", "SUBA")
	case 0xA:
		return fmt.Sprintf("DC.W $%04X ; Line-A", w)
	case 0xB:
		return d.decodeGroupB(w)
	case 0xC:
		return d.decodeArithLike(w, "AND", "ABCD", "MULU", "MULS")
	case 0xD:
		return d.decodeArithLike(w, "ADD", "ADDX", "ADDA", "ADDA")
	case 0xE:
		return d.decodeShift(w)
	default:
		return fmt.Sprintf("DC.W $%04X ; Line-F", w)
	}
}

// size indices as the opcode's own two bits encode them (00=byte,01=word,10=long)
const (
	size1 = 0
	size2 = 1
	size3 = 2
)

func (d *disasmCtx) ea(mode, reg uint16, szIdx int) string {
	switch mode {
	case 0:
		return fmt.Sprintf("D%d", reg)
	case 1:
		return fmt.Sprintf("A%d", reg)
	case 2:
		return fmt.Sprintf("(A%d)", reg)
	case 3:
		return fmt.Sprintf("(A%d)+", reg)
	case 4:
		return fmt.Sprintf("-(A%d)", reg)
	case 5:
		disp := int16(d.nextWord())
		return fmt.Sprintf("%d(A%d)", disp, reg)
	case 6:
		ext := d.nextWord()
		return fmt.Sprintf("%d(A%d,%s)", int8(ext&0xFF), reg, briefIndex(ext))
	default:
		switch reg {
		case 0:
			return fmt.Sprintf("$%04X.W", d.nextWord())
		case 1:
			hi := d.nextWord()
			lo := d.nextWord()
			return fmt.Sprintf("$%08X.L", uint32(hi)<<16|uint32(lo))
		case 2:
			disp := int16(d.nextWord())
			return fmt.Sprintf("%d(PC)", disp)
		case 3:
			ext := d.nextWord()
			return fmt.Sprintf("%d(PC,%s)", int8(ext&0xFF), briefIndex(ext))
		case 4:
			switch szIdx {
			case size1:
				return fmt.Sprintf("#$%02X", d.nextWord()&0xFF)
			case size3:
				hi := d.nextWord()
				lo := d.nextWord()
				return fmt.Sprintf("#$%08X", uint32(hi)<<16|uint32(lo))
			default:
				return fmt.Sprintf("#$%04X", d.nextWord())
			}
		}
	}
	return "???"
}

func briefIndex(ext uint16) string {
	kind := "D"
	if ext&0x8000 != 0 {
		kind = "A"
	}
	idx := (ext >> 12) & 7
	sz := ".W"
	if ext&0x0800 != 0 {
		sz = ".L"
	}
	return fmt.Sprintf("%s%d%s", kind, idx, sz)
}

func (d *disasmCtx) decodeMove(w uint16, szIdx int) string {
	destMode := (w >> 6) & 7
	destReg := (w >> 9) & 7
	srcMode := (w >> 3) & 7
	srcReg := w & 7
	src := d.ea(srcMode, srcReg, szIdx)
	dst := d.ea(destMode, destReg, szIdx)
	suffix := sizeSuffixTable[szIdx]
	if destMode == 1 {
		return fmt.Sprintf("MOVEA%s %s, %s", suffix, src, dst)
	}
	return fmt.Sprintf("MOVE%s %s, %s", suffix, src, dst)
}

func (d *disasmCtx) decodeGroup0(w uint16) string {
	if w&0x0100 != 0 {
		dn := (w >> 9) & 7
		mode, reg := (w>>3)&7, w&7
		ops := [4]string{"BTST", "BCHG", "BCLR", "BSET"}
		op := ops[(w>>6)&3]
		ea := d.ea(mode, reg, size1)
		return fmt.Sprintf("%s D%d, %s", op, dn, ea)
	}
	if (w>>8)&0xF == 0x8 {
		mode, reg := (w>>3)&7, w&7
		bit := d.nextWord() & 0x3F
		ops := [4]string{"BTST", "BCHG", "BCLR", "BSET"}
		op := ops[(w>>6)&3]
		ea := d.ea(mode, reg, size1)
		return fmt.Sprintf("%s #%d, %s", op, bit, ea)
	}
	szIdx := int((w >> 6) & 3)
	mode, reg := (w>>3)&7, w&7
	names := map[uint16]string{0: "ORI", 1: "ANDI", 2: "SUBI", 3: "ADDI", 5: "EORI", 6: "CMPI"}
	if name, ok := names[(w>>9)&7]; ok {
		imm := d.ea(7, 4, szIdx)
		ea := d.ea(mode, reg, szIdx)
		return fmt.Sprintf("%s %s, %s", name, imm, ea)
	}
	return fmt.Sprintf("DC.W $%04X", w)
}

func (d *disasmCtx) decodeGroup4(w uint16) string {
	switch {
	case w == 0x4E71:
		return "NOP"
	case w == 0x4E70:
		return "RESET"
	case w == 0x4E72:
		imm := d.nextWord()
		return fmt.Sprintf("STOP #$%04X", imm)
	case w == 0x4E73:
		return "RTE"
	case w == 0x4E75:
		return "RTS"
	case w == 0x4E77:
		return "RTR"
	case w == 0x4E76:
		return "TRAPV"
	case w&0xFFF0 == 0x4E40:
		return fmt.Sprintf("TRAP #%d", w&0xF)
	case w&0xFFF8 == 0x4E50:
		disp := int16(d.nextWord())
		return fmt.Sprintf("LINK A%d, #%d", w&7, disp)
	case w&0xFFF8 == 0x4E58:
		return fmt.Sprintf("UNLK A%d", w&7)
	case w&0xFFF8 == 0x4E60:
		return fmt.Sprintf("MOVE A%d, USP", w&7)
	case w&0xFFF8 == 0x4E68:
		return fmt.Sprintf("MOVE USP, A%d", w&7)
	case w&0xFFC0 == 0x4E80:
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("JSR %s", d.ea(mode, reg, size3))
	case w&0xFFC0 == 0x4EC0:
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("JMP %s", d.ea(mode, reg, size3))
	case w&0xFFF8 == 0x4840:
		return fmt.Sprintf("SWAP D%d", w&7)
	case w&0xFFC0 == 0x4840:
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("PEA %s", d.ea(mode, reg, size3))
	case w&0xFFC0 == 0x4800:
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("NBCD %s", d.ea(mode, reg, size1))
	case w&0xFB80 == 0x4880:
		dir := "reg-to-mem"
		longSz := w&0x40 != 0
		mask := d.nextWord()
		mode, reg := (w>>3)&7, w&7
		ea := d.ea(mode, reg, size3)
		suffix := ".W"
		if longSz {
			suffix = ".L"
		}
		if w&0x0400 != 0 {
			dir = "mem-to-reg"
			return fmt.Sprintf("MOVEM%s %s, #$%04X(%s)", suffix, ea, mask, dir)
		}
		return fmt.Sprintf("MOVEM%s #$%04X, %s(%s)", suffix, mask, ea, dir)
	case w&0xFF00 == 0x4A00 && w&0xC0 != 0xC0:
		szIdx := int((w >> 6) & 3)
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("TST%s %s", sizeSuffixTable[szIdx], d.ea(mode, reg, szIdx))
	case w&0xFFC0 == 0x4AC0:
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("TAS %s", d.ea(mode, reg, size1))
	case w&0xF1C0 == 0x4180:
		dn := (w >> 9) & 7
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("CHK %s, D%d", d.ea(mode, reg, size2), dn)
	case w&0xF1C0 == 0x41C0:
		an := (w >> 9) & 7
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("LEA %s, A%d", d.ea(mode, reg, size3), an)
	case w&0xFF00 == 0x4000 && w&0xC0 != 0xC0:
		szIdx := int((w >> 6) & 3)
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("NEGX%s %s", sizeSuffixTable[szIdx], d.ea(mode, reg, szIdx))
	case w&0xFF00 == 0x4200:
		szIdx := int((w >> 6) & 3)
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("CLR%s %s", sizeSuffixTable[szIdx], d.ea(mode, reg, szIdx))
	case w&0xFF00 == 0x4400 && w&0xC0 != 0xC0:
		szIdx := int((w >> 6) & 3)
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("NEG%s %s", sizeSuffixTable[szIdx], d.ea(mode, reg, szIdx))
	case w&0xFF00 == 0x4600 && w&0xC0 != 0xC0:
		szIdx := int((w >> 6) & 3)
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("NOT%s %s", sizeSuffixTable[szIdx], d.ea(mode, reg, szIdx))
	case w == 0x46FC:
		imm := d.nextWord()
		return fmt.Sprintf("MOVE #$%04X, SR", imm)
	case w&0xFFC0 == 0x40C0:
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("MOVE SR, %s", d.ea(mode, reg, size2))
	case w&0xFFC0 == 0x44C0:
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("MOVE %s, CCR", d.ea(mode, reg, size2))
	case w&0xFFC0 == 0x46C0:
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("MOVE %s, SR", d.ea(mode, reg, size2))
	}
	return fmt.Sprintf("DC.W $%04X", w)
}

func (d *disasmCtx) decodeGroup5(w uint16) string {
	mode, reg := (w>>3)&7, w&7
	if (w>>6)&3 == 3 {
		cc := condNames[(w>>8)&0xF]
		if mode == 1 {
			disp := int16(d.nextWord())
			return fmt.Sprintf("DB%s D%d, %d", cc, reg, disp)
		}
		return fmt.Sprintf("S%s %s", cc, d.ea(mode, reg, size1))
	}
	szIdx := int((w >> 6) & 3)
	data := (w >> 9) & 7
	if data == 0 {
		data = 8
	}
	name := "ADDQ"
	if w&0x0100 != 0 {
		name = "SUBQ"
	}
	return fmt.Sprintf("%s%s #%d, %s", name, sizeSuffixTable[szIdx], data, d.ea(mode, reg, szIdx))
}

func (d *disasmCtx) decodeGroup6(w uint16) string {
	cc := condNames[(w>>8)&0xF]
	disp8 := int8(w & 0xFF)
	name := "B" + cc
	if cc == "T" {
		name = "BRA"
	} else if cc == "F" {
		name = "BSR"
	}
	if disp8 == 0 {
		disp16 := int16(d.nextWord())
		return fmt.Sprintf("%s %d", name, disp16)
	}
	return fmt.Sprintf("%s %d", name, disp8)
}

func (d *disasmCtx) decodeArithLike(w uint16, baseName, xName, toAddrName, mulDivName string) string {
	reg := (w >> 9) & 7
	opMode := (w >> 6) & 7
	mode, eaReg := (w>>3)&7, w&7

	switch opMode {
	case 3:
		if baseName == "AND" || baseName == "OR" {
			break
		}
		return fmt.Sprintf("%s %s, A%d", toAddrName, d.ea(mode, eaReg, size2), reg)
	case 7:
		if baseName == "AND" || baseName == "OR" {
			break
		}
		return fmt.Sprintf("%s %s, A%d", toAddrName, d.ea(mode, eaReg, size3), reg)
	case 4, 5, 6:
		if mode == 0 || mode == 1 {
			szIdx := int(opMode - 4)
			rm := w&0x08 != 0
			if rm {
				return fmt.Sprintf("%s%s -(A%d), -(A%d)", xName, sizeSuffixTable[szIdx], eaReg, reg)
			}
			return fmt.Sprintf("%s%s D%d, D%d", xName, sizeSuffixTable[szIdx], eaReg, reg)
		}
	}
	if baseName == "AND" && opMode == 3 {
		return fmt.Sprintf("MULU %s, D%d", d.ea(mode, eaReg, size2), reg)
	}
	if baseName == "AND" && opMode == 7 {
		return fmt.Sprintf("MULS %s, D%d", d.ea(mode, eaReg, size2), reg)
	}
	if baseName == "OR" && opMode == 3 {
		return fmt.Sprintf("DIVU %s, D%d", d.ea(mode, eaReg, size2), reg)
	}
	if baseName == "OR" && opMode == 7 {
		return fmt.Sprintf("DIVS %s, D%d", d.ea(mode, eaReg, size2), reg)
	}
	szIdx := int(opMode & 3)
	if opMode < 3 {
		return fmt.Sprintf("%s%s %s, D%d", baseName, sizeSuffixTable[szIdx], d.ea(mode, eaReg, szIdx), reg)
	}
	return fmt.Sprintf("%s%s D%d, %s", baseName, sizeSuffixTable[szIdx&3], reg, d.ea(mode, eaReg, szIdx&3))
}

func (d *disasmCtx) decodeGroupB(w uint16) string {
	reg := (w >> 9) & 7
	opMode := (w >> 6) & 7
	mode, eaReg := (w>>3)&7, w&7
	switch opMode {
	case 3:
		return fmt.Sprintf("CMPA %s, A%d", d.ea(mode, eaReg, size2), reg)
	case 7:
		return fmt.Sprintf("CMPA %s, A%d", d.ea(mode, eaReg, size3), reg)
	}
	if opMode <= 2 {
		szIdx := int(opMode)
		return fmt.Sprintf("CMP%s %s, D%d", sizeSuffixTable[szIdx], d.ea(mode, eaReg, szIdx), reg)
	}
	szIdx := int(opMode - 4)
	if mode == 1 {
		return fmt.Sprintf("CMPM%s (A%d)+, (A%d)+", sizeSuffixTable[szIdx], eaReg, reg)
	}
	return fmt.Sprintf("EOR%s D%d, %s", sizeSuffixTable[szIdx], reg, d.ea(mode, eaReg, szIdx))
}

func (d *disasmCtx) decodeShift(w uint16) string {
	if (w>>6)&3 == 3 {
		dir := "R"
		if w&0x0100 != 0 {
			dir = "L"
		}
		kind := [4]string{"AS", "LS", "ROX", "RO"}[(w>>9)&3]
		mode, reg := (w>>3)&7, w&7
		return fmt.Sprintf("%s%s %s", kind, dir, d.ea(mode, reg, size2))
	}
	szIdx := int((w >> 6) & 3)
	dir := "R"
	if w&0x0100 != 0 {
		dir = "L"
	}
	group := (w >> 3) & 3
	kindName := [4]string{"AS", "LS", "ROX", "RO"}[group]
	dn := w & 7
	if w&0x0020 != 0 {
		count := (w >> 9) & 7
		return fmt.Sprintf("%s%s%s D%d, D%d", kindName, dir, sizeSuffixTable[szIdx], count, dn)
	}
	count := (w >> 9) & 7
	if count == 0 {
		count = 8
	}
	return fmt.Sprintf("%s%s%s #%d, D%d", kindName, dir, sizeSuffixTable[szIdx], count, dn)
}

// String renders the Registers block for tracing, in the style of the
// register-dump idiom (debug_commands.go) but as a single-line summary
// suited to per-step trace output.
func (r Registers) String() string {
	var b strings.Builder
	for i, v := range r.D {
		fmt.Fprintf(&b, "D%d=%08X ", i, v)
	}
	for i, v := range r.A {
		fmt.Fprintf(&b, "A%d=%08X ", i, v)
	}
	fmt.Fprintf(&b, "PC=%08X SR=%04X", r.PC, r.SR)
	return b.String()
}
