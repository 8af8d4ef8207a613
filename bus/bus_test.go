package bus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otleylabs/gencore/size"
)

func TestBusFaultErrorFormatsDirectionAndAddress(t *testing.T) {
	read := &BusFault{Addr: 0x1000, Size: size.Word}
	require.Equal(t, "bus fault: readW at 0x1000", read.Error())

	write := &BusFault{Addr: 0x2000, Size: size.Long, Write: true}
	require.Equal(t, "bus fault: writeL at 0x2000", write.Error())
}

func TestAddressErrorErrorFormatsDirectionAndAddress(t *testing.T) {
	read := &AddressError{Addr: 0x1001, Size: size.Word}
	require.Contains(t, read.Error(), "0x1001")
	require.Contains(t, read.Error(), "read")

	write := &AddressError{Addr: 0x3, Size: size.Long, Write: true}
	require.Contains(t, write.Error(), "write")
}
