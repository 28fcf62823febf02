package transport_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyclone-msm/cyclone-msm/transport"
)

func TestNullRecordsPacketsPerChannel(t *testing.T) {
	n := transport.NewNull()

	p0, p1 := transport.NewPacket(), transport.NewPacket()
	p0.PutUint64(0, 1)
	p1.PutUint64(0, 2)

	n.WritePacket(5, p0)
	n.WritePacket(5, p1)
	n.WritePacket(9, p0)

	require.Len(t, n.Packets(5), 2)
	require.Len(t, n.Packets(9), 1)
	require.Len(t, n.Packets(42), 0)
}

func TestNullRegistersRoundTrip(t *testing.T) {
	n := transport.NewNull()
	n.WriteRegister(0x20, 7)
	require.Equal(t, uint32(7), n.ReadRegister(0x20))
}

func TestNullFlushCounted(t *testing.T) {
	n := transport.NewNull()
	n.Flush()
	n.Flush()
	require.Equal(t, 2, n.Flushes())
}

func TestNullOnWritePacketCallback(t *testing.T) {
	n := transport.NewNull()
	var seen uint64
	n.OnWritePacket = func(index uint64, p *transport.Packet) {
		seen = index
	}
	p := transport.NewPacket()
	n.WritePacket(3, p)
	require.Equal(t, uint64(3), seen)
}
