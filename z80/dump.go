package z80

import "github.com/davecgh/go-spew/spew"

// Dump renders the register set as a deterministic, nested struct dump, the
// secondary-core counterpart of m68k.Registers.Dump.
func (r Registers) Dump() string {
	return spew.Sdump(r)
}
