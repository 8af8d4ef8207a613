package z80

// The five opcode tables are flat, built once at package init time by the
// registerXxx loops in each ops_*.go file, mirroring the primary core's
// dispatch-table shape.
var (
	baseOps [256]opFunc
	cbOps   [256]opFunc
	edOps   [256]opFunc
	ddOps   [256]opFunc
	fdOps   [256]opFunc
)

func init() {
	for i := range baseOps {
		baseOps[i] = opUnimplemented
	}
	for i := range cbOps {
		cbOps[i] = opUnimplemented
	}
	for i := range edOps {
		edOps[i] = opUnimplemented
	}
	for i := range ddOps {
		ddOps[i] = opUnimplemented
	}
	for i := range fdOps {
		fdOps[i] = opUnimplemented
	}

	baseOps[0xCB] = opCBPrefix
	baseOps[0xED] = opEDPrefix
	baseOps[0xDD] = opDDPrefix
	baseOps[0xFD] = opFDPrefix
	ddOps[0xCB] = opDDCBPrefix
	fdOps[0xCB] = opFDCBPrefix
}

// opUnimplemented is the no-effect trace marker for an opcode slot with no
// handler. Prefixed tables that don't carry an entry for a given byte fall
// through to this marker, never to the root table.
func opUnimplemented(c *CPU) int { return 4 }

func opCBPrefix(c *CPU) int {
	op := c.fetchByte()
	c.ir = uint16(op)
	return 4 + cbOps[op](c)
}

func opEDPrefix(c *CPU) int {
	op := c.fetchByte()
	c.ir = uint16(op)
	return 4 + edOps[op](c)
}

func opDDPrefix(c *CPU) int {
	op := c.fetchByte()
	c.ir = uint16(op)
	return 4 + ddOps[op](c)
}

func opFDPrefix(c *CPU) int {
	op := c.fetchByte()
	c.ir = uint16(op)
	return 4 + fdOps[op](c)
}

// opDDCBPrefix and opFDCBPrefix handle the doubly-prefixed bit-instruction
// forms: DD CB <displacement> <opcode>. The displacement always precedes
// the opcode byte, unlike every other prefixed form.
func opDDCBPrefix(c *CPU) int {
	disp := int8(c.fetchByte())
	op := c.fetchByte()
	return 4 + execIndexedCB(c, c.Reg.IX, disp, op)
}

func opFDCBPrefix(c *CPU) int {
	disp := int8(c.fetchByte())
	op := c.fetchByte()
	return 4 + execIndexedCB(c, c.Reg.IY, disp, op)
}
