package transport

// controlBARSize is the byte size mapped for the control BAR: a command
// slot and a data/response slot, word-aligned, with generous headroom.
const controlBARSize = 4096

// streamBARSize is the byte size mapped for the stream BAR: 2^32 bytes of
// write-combining address space, addressed by the channel-relative packet
// index shifted into its channel's 1<<26 window.
const streamBARSize = 1 << 32

// Device is a Transport backed by a real accelerator attached over PCIe.
// Construction and the actual mmap syscalls are platform-specific; see
// device_linux.go.
type Device struct {
	control []byte // mmap'd control BAR, at least controlBARSize bytes
	stream  []byte // mmap'd stream BAR, streamBARSize bytes

	closeControl func() error
	closeStream  func() error
}

const (
	controlCommandSlot = 0 // offset of the 32-bit command word
	controlDataSlot    = 4 // offset of the 32-bit data/response word
)

func (d *Device) ReadRegister(index uint32) uint32 {
	cmd := queryCommandBit | (index << 2)
	putLE32(d.control[controlCommandSlot:], cmd)
	return getLE32(d.control[controlDataSlot:])
}

func (d *Device) WriteRegister(index uint32, value uint32) {
	// Order matters: the FPGA latches value on seeing the command word,
	// so the data slot must already hold it.
	putLE32(d.control[controlDataSlot:], value)
	cmd := writeCommandBit | (index << 2)
	putLE32(d.control[controlCommandSlot:], cmd)
}

func (d *Device) WritePacket(index uint64, p *Packet) {
	// The FPGA's write-combining buffer flushes on the second half, so the
	// two 256-bit halves must be emitted hi, then lo.
	hi, lo := p.halves()
	base := index * packetSize
	writeCombining256(d.stream[base+32:base+64], hi)
	writeCombining256(d.stream[base:base+32], lo)
}

func (d *Device) Close() error {
	var err error
	if d.closeStream != nil {
		if e := d.closeStream(); e != nil {
			err = e
		}
	}
	if d.closeControl != nil {
		if e := d.closeControl(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getLE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
