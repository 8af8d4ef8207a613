package m68k

import "github.com/davecgh/go-spew/spew"

// Dump renders the register set as a deterministic, nested struct dump for
// tracing and test-failure output.
func (r Registers) Dump() string {
	return spew.Sdump(r)
}
