package size

import "testing"

func TestMask(t *testing.T) {
	cases := map[Size]uint32{Byte: 0xFF, Word: 0xFFFF, Long: 0xFFFFFFFF}
	for sz, want := range cases {
		if got := sz.Mask(); got != want {
			t.Errorf("%v.Mask() = %#x, want %#x", sz, got, want)
		}
	}
}

func TestMSBBit(t *testing.T) {
	cases := map[Size]uint32{Byte: 0x80, Word: 0x8000, Long: 0x80000000}
	for sz, want := range cases {
		if got := sz.MSBBit(); got != want {
			t.Errorf("%v.MSBBit() = %#x, want %#x", sz, got, want)
		}
	}
}

func TestBits(t *testing.T) {
	cases := map[Size]uint32{Byte: 8, Word: 16, Long: 32}
	for sz, want := range cases {
		if got := sz.Bits(); got != want {
			t.Errorf("%v.Bits() = %d, want %d", sz, got, want)
		}
	}
}

func TestSignExtend(t *testing.T) {
	if got := Byte.SignExtend(0xFF); got != 0xFFFFFFFF {
		t.Errorf("Byte.SignExtend(0xFF) = %#x, want 0xFFFFFFFF", got)
	}
	if got := Byte.SignExtend(0x7F); got != 0x7F {
		t.Errorf("Byte.SignExtend(0x7F) = %#x, want 0x7F", got)
	}
	if got := Word.SignExtend(0x8000); got != 0xFFFF8000 {
		t.Errorf("Word.SignExtend(0x8000) = %#x, want 0xFFFF8000", got)
	}
	if got := Long.SignExtend(0x80000000); got != 0x80000000 {
		t.Errorf("Long.SignExtend is a no-op, got %#x", got)
	}
}

func TestIsNegativeAndIsZero(t *testing.T) {
	if !IsNegative(0x80, Byte) {
		t.Error("0x80 should read as negative at Byte size")
	}
	if IsNegative(0x7F, Byte) {
		t.Error("0x7F should not read as negative at Byte size")
	}
	if !IsZero(0x100, Byte) {
		t.Error("0x100 masked to Byte is zero")
	}
	if IsZero(0x100, Word) {
		t.Error("0x100 masked to Word is nonzero")
	}
}

func TestString(t *testing.T) {
	cases := map[Size]string{Byte: "B", Word: "W", Long: "L"}
	for sz, want := range cases {
		if got := sz.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", sz, got, want)
		}
	}
}
