// Package bus defines the narrow capabilities the CPU cores consume from
// the surrounding machine: a wide-address bus for the primary processor, a
// 16-bit-address bus for the secondary processor, and an interrupt inlet.
// Nothing in this package knows about video, audio, or cartridges — those
// are external collaborators that happen to also implement Bus32.
package bus

import (
	"fmt"

	"github.com/otleylabs/gencore/size"
)

// Bus32 is the memory interface consumed by the primary (M68K-family) CPU.
// Word and long accesses are big-endian at the bus boundary; the core never
// issues a misaligned access.
type Bus32 interface {
	Read(addr uint32, sz size.Size) (uint32, error)
	Write(addr uint32, val uint32, sz size.Size) error
}

// Bus16 is the memory interface consumed by the secondary (Z80-family) CPU.
// Only Byte and Word requests are valid; a Long request fails with an
// error rather than being silently truncated.
type Bus16 interface {
	Read(addr uint16, sz size.Size) (uint16, error)
	Write(addr uint16, val uint16, sz size.Size) error
}

// InterruptSink is the narrow inlet external hardware uses to assert an
// interrupt against the primary CPU.
type InterruptSink interface {
	Signal(level uint8)
}

// BusFault is returned by a Bus32/Bus16 implementation when it rejects a
// read or write. The step driver surfaces it to the active CPU, which
// records it as a synchronous trap.
type BusFault struct {
	Addr  uint32
	Size  size.Size
	Write bool
}

func (e *BusFault) Error() string {
	dir := "read"
	if e.Write {
		dir = "write"
	}
	return fmt.Sprintf("bus fault: %s%s at %#x", dir, e.Size, e.Addr)
}

// AddressError indicates the executor attempted an operation on an invalid
// address: an odd address for a word/long access, or an access outside the
// owning CPU's address space.
type AddressError struct {
	Addr  uint32
	Size  size.Size
	Write bool
}

func (e *AddressError) Error() string {
	dir := "read"
	if e.Write {
		dir = "write"
	}
	return fmt.Sprintf("address error: %s%s at %#x", dir, e.Size, e.Addr)
}
