package transport_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/cyclone-msm/cyclone-msm/transport"
)

func TestPacketIsExactlyOneCacheLine(t *testing.T) {
	var p transport.Packet
	require.Equal(t, 64, int(unsafe.Sizeof(p)))
}

func TestPacketPutUint64RoundTrips(t *testing.T) {
	p := transport.NewPacket()
	p.PutUint64(0, 0x0102030405060708)
	p.PutUint64(8, 0xaabbccddeeff0011)

	require.Equal(t, byte(0x08), p[0])
	require.Equal(t, byte(0x01), p[7])
	require.Equal(t, byte(0x11), p[8])
}

func TestPacketPutUint16(t *testing.T) {
	p := transport.NewPacket()
	p.PutUint16(48, 0xbeef)
	require.Equal(t, byte(0xef), p[48])
	require.Equal(t, byte(0xbe), p[49])
}

// TestNewPacketIsAligned is testable property 7: every dispatched packet
// address is 64-byte-aligned.
func TestNewPacketIsAligned(t *testing.T) {
	for i := 0; i < 64; i++ {
		p := transport.NewPacket()
		addr := uintptr(unsafe.Pointer(p))
		require.Zerof(t, addr%64, "NewPacket returned address %#x, not 64-byte aligned", addr)
	}
}
