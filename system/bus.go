// Package system provides the smallest wiring a host needs to drive both
// CPU cores against one shared address space: a unified-memory bus
// satisfying both bus.Bus32 and bus.Bus16, and a helper that alternates
// Step calls between the two CPUs in a fixed ratio. It is not a scheduler,
// video chip, or cartridge loader — those remain external collaborators
// it is not.
package system

import (
	"sync"

	"github.com/otleylabs/gencore/bus"
	"github.com/otleylabs/gencore/size"
)

// IOHandler intercepts a fixed address window, letting an external
// peripheral (video, sound, cartridge mapper) observe or override reads and
// writes without the bus itself knowing anything about their meaning.
type IOHandler interface {
	Read(addr uint32, sz size.Size) (uint32, bool)
	Write(addr uint32, val uint32, sz size.Size) (bool, bool)
}

// SharedBus is a contiguous byte-addressable memory block implementing both
// the primary CPU's wide-address Bus32 and the secondary CPU's 16-bit
// Bus16, adapted to the two narrow bus.Bus32/Bus16 capabilities the CPU
// packages consume instead of a wider 8/16/32 Read/Write method set.
//
// Word and long accesses are big-endian.
// A mutex protects concurrent access from an external peripheral goroutine;
// the two CPUs themselves never run concurrently.
type SharedBus struct {
	mu   sync.Mutex
	mem  []byte
	io   []ioRegion
}

type ioRegion struct {
	start, end uint32
	handler    IOHandler
}

// NewSharedBus allocates a bus backed by size bytes of zeroed memory.
func NewSharedBus(size int) *SharedBus {
	return &SharedBus{mem: make([]byte, size)}
}

// MapIO registers handler to intercept [start, end) before it falls
// through to plain memory.
func (b *SharedBus) MapIO(start, end uint32, handler IOHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.io = append(b.io, ioRegion{start: start, end: end, handler: handler})
}

// Memory exposes the backing slice directly, e.g. for a cartridge loader to
// populate ROM contents before Reset.
func (b *SharedBus) Memory() []byte { return b.mem }

func (b *SharedBus) findIO(addr uint32) IOHandler {
	for _, r := range b.io {
		if addr >= r.start && addr < r.end {
			return r.handler
		}
	}
	return nil
}

// Read implements bus.Bus32.
func (b *SharedBus) Read(addr uint32, sz size.Size) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if h := b.findIO(addr); h != nil {
		if v, ok := h.Read(addr, sz); ok {
			return v, nil
		}
	}
	if addr+uint32(sz) > uint32(len(b.mem)) {
		return 0, &bus.BusFault{Addr: addr, Size: sz}
	}
	switch sz {
	case size.Byte:
		return uint32(b.mem[addr]), nil
	case size.Word:
		return uint32(b.mem[addr])<<8 | uint32(b.mem[addr+1]), nil
	default:
		return uint32(b.mem[addr])<<24 | uint32(b.mem[addr+1])<<16 |
			uint32(b.mem[addr+2])<<8 | uint32(b.mem[addr+3]), nil
	}
}

// Write implements bus.Bus32.
func (b *SharedBus) Write(addr uint32, val uint32, sz size.Size) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if h := b.findIO(addr); h != nil {
		if handled, ok := h.Write(addr, val, sz); ok {
			if handled {
				return nil
			}
		}
	}
	if addr+uint32(sz) > uint32(len(b.mem)) {
		return &bus.BusFault{Addr: addr, Size: sz, Write: true}
	}
	switch sz {
	case size.Byte:
		b.mem[addr] = byte(val)
	case size.Word:
		b.mem[addr] = byte(val >> 8)
		b.mem[addr+1] = byte(val)
	default:
		b.mem[addr] = byte(val >> 24)
		b.mem[addr+1] = byte(val >> 16)
		b.mem[addr+2] = byte(val >> 8)
		b.mem[addr+3] = byte(val)
	}
	return nil
}

// Read16 implements bus.Bus16 for the secondary CPU, sharing the same
// backing memory as the primary's address space (the common arrangement on
// a Mega-Drive-class machine, where the Z80 sees a window of the same RAM).
func (b *SharedBus) Read16(addr uint16, sz size.Size) (uint16, error) {
	if sz == size.Long {
		return 0, &bus.AddressError{Addr: uint32(addr), Size: sz}
	}
	v, err := b.Read(uint32(addr), sz)
	return uint16(v), err
}

// Write16 implements bus.Bus16.
func (b *SharedBus) Write16(addr uint16, val uint16, sz size.Size) error {
	if sz == size.Long {
		return &bus.AddressError{Addr: uint32(addr), Size: sz, Write: true}
	}
	return b.Write(uint32(addr), uint32(val), sz)
}

// bus16View adapts SharedBus's Read16/Write16 pair to the bus.Bus16
// interface's Read/Write method names, since Go forbids two interfaces with
// identical method names but different signatures on one type.
type bus16View struct{ b *SharedBus }

func (v bus16View) Read(addr uint16, sz size.Size) (uint16, error)       { return v.b.Read16(addr, sz) }
func (v bus16View) Write(addr uint16, val uint16, sz size.Size) error { return v.b.Write16(addr, val, sz) }

// AsBus16 returns the bus.Bus16 view of this memory for the secondary CPU.
func (b *SharedBus) AsBus16() bus.Bus16 { return bus16View{b} }

var _ bus.Bus32 = (*SharedBus)(nil)
