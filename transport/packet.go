// Package transport attaches to the accelerator's two PCIe BAR regions — a
// control BAR for 32-bit register MMIO and a stream BAR for bulk packet
// dispatch — and exposes the raw register and streaming operations the
// session and streaming layers build on.
package transport

import (
	"encoding/binary"
	"unsafe"
)

// packetSize is one 64-byte cache-line-sized accelerator packet: two
// adjacent 256-bit (32-byte) halves, written in hi, lo order because the
// host bus has no native 512-bit posted write.
const packetSize = 64

// packetAlignment is the byte alignment the streaming store intrinsics
// require of a Packet's address: a correctness requirement, not a
// performance hint, since an unaligned source address faults a real
// non-temporal SIMD store.
const packetAlignment = 64

// Packet is a single 64-byte stream-channel payload. Its size is fixed at
// the type level so every write to the stream BAR is a whole number of
// cache lines; there is no partial-packet path anywhere in this package.
//
// Go has no type-level alignment annotation reaching 64 bytes, so the
// alignment guarantee is enforced at construction instead: every Packet
// that will be passed to Transport.WritePacket must come from NewPacket,
// which carves a packetAlignment-aligned window out of an over-allocated
// backing array. A bare `var p Packet` is only safe for building a value
// to compare or copy from (as the tests in this package do); it carries
// no alignment guarantee on its own.
type Packet [packetSize]byte

// NewPacket allocates a Packet guaranteed to begin at a packetAlignment-
// byte-aligned address. It over-allocates by packetAlignment-1 bytes and
// slices to the first aligned offset, the same trick used to align
// cache-line-sized buffers when the language provides no alignment
// directive.
func NewPacket() *Packet {
	buf := make([]byte, packetSize+packetAlignment-1)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	pad := (packetAlignment - addr%packetAlignment) % packetAlignment
	return (*Packet)(unsafe.Pointer(&buf[pad]))
}

// PutUint64 writes v as little-endian at byte offset off within the
// packet. Used to pack the six 64-bit limbs of a field element into a
// packet's low 48 bytes, or eight SetDigit command words into all 64.
func (p *Packet) PutUint64(off int, v uint64) {
	binary.LittleEndian.PutUint64(p[off:off+8], v)
}

// PutUint16 writes v as little-endian at byte offset off within the
// packet.
func (p *Packet) PutUint16(off int, v uint16) {
	binary.LittleEndian.PutUint16(p[off:off+2], v)
}

// halves splits the packet into its two 256-bit (32-byte) halves, returned
// in (hi, lo) order to match the write order Device.WritePacket uses.
func (p *Packet) halves() (hi, lo *[32]byte) {
	return (*[32]byte)(p[32:64]), (*[32]byte)(p[0:32])
}
