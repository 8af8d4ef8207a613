package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otleylabs/gencore/bus"
	"github.com/otleylabs/gencore/size"
)

func TestSharedBusReadWriteRoundTrip(t *testing.T) {
	b := NewSharedBus(0x10000)

	require.NoError(t, b.Write(0x100, 0x1234, size.Word))
	v, err := b.Read(0x100, size.Word)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1234), v)

	require.NoError(t, b.Write(0x200, 0xDEADBEEF, size.Long))
	v, err = b.Read(0x200, size.Long)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), v)
}

func TestSharedBusOutOfRangeFaults(t *testing.T) {
	b := NewSharedBus(0x100)

	_, err := b.Read(0x100, size.Byte)
	require.Error(t, err)
	var fault *bus.BusFault
	require.ErrorAs(t, err, &fault)
	require.False(t, fault.Write)

	err = b.Write(0x100, 1, size.Byte)
	require.Error(t, err)
	require.ErrorAs(t, err, &fault)
	require.True(t, fault.Write)
}

type stubIO struct {
	readVal uint32
	reads   int
	writes  int
}

func (s *stubIO) Read(addr uint32, sz size.Size) (uint32, bool) {
	s.reads++
	return s.readVal, true
}

func (s *stubIO) Write(addr uint32, val uint32, sz size.Size) (bool, bool) {
	s.writes++
	return true, true
}

func TestSharedBusMapIOInterceptsBeforeMemory(t *testing.T) {
	b := NewSharedBus(0x10000)
	io := &stubIO{readVal: 0xAA}
	b.MapIO(0xC00000, 0xC00010, io)

	v, err := b.Read(0xC00004, size.Byte)
	require.NoError(t, err)
	require.Equal(t, uint32(0xAA), v)
	require.Equal(t, 1, io.reads)

	require.NoError(t, b.Write(0xC00004, 0x5, size.Byte))
	require.Equal(t, 1, io.writes)
}

func TestSharedBusAsBus16SharesMemoryWithBus32(t *testing.T) {
	b := NewSharedBus(0x10000)
	require.NoError(t, b.Write(0x500, 0x55, size.Byte))

	view := b.AsBus16()
	v, err := view.Read(0x500, size.Byte)
	require.NoError(t, err)
	require.Equal(t, uint16(0x55), v)

	require.NoError(t, view.Write(0x600, 0x1234, size.Word))
	full, err := b.Read(0x600, size.Word)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1234), full)
}

func TestBus16LongAccessIsAddressError(t *testing.T) {
	b := NewSharedBus(0x10000)
	view := b.AsBus16()

	_, err := view.Read(0x10, size.Long)
	require.Error(t, err)
	var ae *bus.AddressError
	require.ErrorAs(t, err, &ae)
}
