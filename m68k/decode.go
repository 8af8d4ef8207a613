package m68k

import "github.com/otleylabs/gencore/bus"

// opFunc is the handler for one primary-CPU instruction. By the time it
// runs, c.ir holds the first instruction word and PC has already been
// advanced past it; the handler resolves its own operands (consuming any
// further extension words) and charges cycles itself.
type opFunc func(*CPU)

// opEntry is the operation-table-entry triple,
// collapsed to what Go needs: the executor already encodes its own operand
// producers (each addressing-mode resolution is cheap and opcode-specific,
// so a separate producer list buys nothing a closure doesn't), plus the
// base cycle cost charged before any executor-computed extras.
type opEntry struct {
	exec   opFunc
	cycles uint16
}

// opcodeTable is the 65536-entry flat dispatch table.
// It is populated once, at package init, by the registerXxx family below;
// after that it is treated as immutable. A zero-value entry (nil exec) is
// an illegal-instruction stub.
var opcodeTable [65536]opEntry

func setOp(opcode uint16, cycles uint16, fn opFunc) {
	opcodeTable[opcode] = opEntry{exec: fn, cycles: cycles}
}

// fault is how an executor or addressing-mode producer reports a bus or
// address error. It always raises a synchronous trap; it never panics or
// blocks; there is no local recovery from a faulted instruction.
func (c *CPU) fault(err error) {
	switch err.(type) {
	case *bus.AddressError:
		c.exception(vecAddressError)
	default:
		c.exception(vecBusError)
	}
}
