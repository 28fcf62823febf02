package transport

import "sync"

// Null is a Transport backed entirely by host memory: no device, no mmap,
// no MMIO. It exists for tests that exercise the session and streaming
// layers without real hardware attached.
//
// Null records every packet written, keyed by its exact packet index
// (channel base plus offset), so tests can assert on the exact sequence a
// session dispatched, and lets a test
// preload the register file (e.g. DigitsQueue, Aggregated, X/Y/Z/T) to
// drive a session through its polling loops deterministically.
type Null struct {
	mu sync.Mutex

	registers [controlRegisterCount]uint32
	packets   map[uint64][]Packet
	flushes   int

	// OnWritePacket, if set, is called synchronously after every
	// WritePacket, letting a test mutate registers (e.g. flip Aggregated
	// to 1) in response to traffic on a particular channel.
	OnWritePacket func(index uint64, p *Packet)
}

// NewNull constructs an empty Null transport.
func NewNull() *Null {
	return &Null{packets: make(map[uint64][]Packet)}
}

func (n *Null) ReadRegister(index uint32) uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.registers[index]
}

func (n *Null) WriteRegister(index uint32, value uint32) {
	n.mu.Lock()
	n.registers[index] = value
	n.mu.Unlock()
}

// SetRegister is the test-only counterpart of WriteRegister, used to seed
// read-only registers (Aggregated, DigitsQueue, the X/Y/Z/T limbs) that a
// real device would populate on its own.
func (n *Null) SetRegister(index uint32, value uint32) {
	n.WriteRegister(index, value)
}

func (n *Null) WritePacket(index uint64, p *Packet) {
	n.mu.Lock()
	cp := *p
	n.packets[index] = append(n.packets[index], cp)
	cb := n.OnWritePacket
	n.mu.Unlock()
	if cb != nil {
		cb(index, &cp)
	}
}

func (n *Null) Flush() {
	n.mu.Lock()
	n.flushes++
	n.mu.Unlock()
}

func (n *Null) Close() error { return nil }

// Packets returns the packets written to exactly the given packet index,
// in write order; packets at other offsets of the same channel are not
// included.
func (n *Null) Packets(index uint64) []Packet {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Packet(nil), n.packets[index]...)
}

// Flushes returns the number of times Flush has been called.
func (n *Null) Flushes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.flushes
}
