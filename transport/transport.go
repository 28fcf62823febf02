package transport

import (
	"fmt"

	"github.com/cyclone-msm/cyclone-msm"
)

// ErrPermissionDenied is returned by Open when attaching to the
// accelerator's BAR regions fails, which on Linux typically means the
// calling process lacks the privilege (or /dev/mem / VFIO group access)
// required to map the device's PCIe BARs. It wraps cyclonemsm.ErrPermissionDenied.
var ErrPermissionDenied = fmt.Errorf("transport: mapping BARs: %w", cyclonemsm.ErrPermissionDenied)

// controlRegisterCount bounds the control BAR's register space this
// package addresses. The protocol only ever names indices up to 0x34; a
// generous margin avoids retuning this if the register map grows.
const controlRegisterCount = 0x40

// queryCommandBit is OR'd with a register index, shifted left by 2, to
// form a read command word: the FPGA latches the index into its query
// slot, then responds with the requested value.
const queryCommandBit = 0x4000_0000

// writeCommandBit is OR'd with a register index, shifted left by 2, to
// form a write command word. The FPGA latches whatever was most recently
// written to the data slot when it sees this word land on the command
// slot.
const writeCommandBit = 0x8000_0000

// Transport is the minimal MMIO surface the streaming and session layers
// depend on. Device implements it against real hardware; Null implements
// it in memory for host-only tests.
type Transport interface {
	// ReadRegister reads the 32-bit register at index.
	ReadRegister(index uint32) uint32

	// WriteRegister writes value to the 32-bit register at index.
	WriteRegister(index uint32, value uint32)

	// WritePacket issues a non-temporal 64-byte write of p to the stream
	// BAR at channel-relative packet index.
	WritePacket(index uint64, p *Packet)

	// Flush drains any pending write-combining buffers (an sfence on
	// real hardware), so that Packets already written are guaranteed
	// visible to the device.
	Flush()

	// Close detaches the BAR mappings. Callers must not invoke any other
	// method after Close, and must not call Close while an MSM is in
	// flight: dropping a session mid-operation does not stop in-flight
	// transactions.
	Close() error
}
