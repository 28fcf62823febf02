package transport

// Write register indices.
const (
	RegQuery       uint32 = 0x10 // parameter for the next parameterised read
	RegDdrReadLen  uint32 = 0x11 // bucket-read burst length (fixed 64)
	RegMsmLength   uint32 = 0x20 // n
	RegLastBucket  uint32 = 0x21 // 2^15 - 1
	RegFirstBucket uint32 = 0x22 // 0
)

// Read register indices.
const (
	RegStatistic   uint32 = 0x20 // parameterised (selector in RegQuery)
	RegDigitsQueue uint32 = 0x21 // current depth of the FPGA input FIFO
	RegAggregated  uint32 = 0x30 // 1 iff a column result is ready
	RegX           uint32 = 0x31
	RegY           uint32 = 0x32
	RegZ           uint32 = 0x33
	RegT           uint32 = 0x34
)

// Stream channel base addresses. The packet-write index parameter encodes
// the channel in its top bits.
const (
	ChannelSetX      uint64 = 1 << 26
	ChannelSetY      uint64 = 2 << 26
	ChannelSetKT     uint64 = 3 << 26
	ChannelMsmColumn uint64 = 4 << 26
	ChannelSetZero   uint64 = 5 << 26
)

// Command opcodes packed into the low bits of a 64-bit digit word on the
// MsmColumn channel.
const (
	OpStartColumn uint64 = 1
	opSetDigit    uint64 = 3
)

// EncodeSetDigit packs a signed digit into a SetDigit command word: opcode
// 3 in the low bits, the digit's 16-bit two's-complement pattern shifted
// into bits [14:30).
func EncodeSetDigit(digit int16) uint64 {
	return opSetDigit | uint64(uint16(digit))<<14
}

// LastBucket and FirstBucket are the fixed bucket-range bounds every
// session configures: the FPGA's bucket accumulator always spans the full
// signed 16-bit digit range.
const (
	LastBucket  uint32 = 1<<15 - 1
	FirstBucket uint32 = 0
)

// DdrReadLen is the fixed bucket-read burst length every session
// configures.
const DdrReadLen uint32 = 64

// MaxDigitsQueueDepth is the threshold DigitBackoff spins on: it waits
// until the FPGA's input FIFO depth falls to at most this many entries
// before allowing more digits to be queued.
const MaxDigitsQueueDepth = 64
