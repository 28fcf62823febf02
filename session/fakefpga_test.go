package session_test

import (
	"encoding/binary"

	"github.com/cyclone-msm/cyclone-msm/curve"
	"github.com/cyclone-msm/cyclone-msm/field"
	"github.com/cyclone-msm/cyclone-msm/transport"
)

// fakeFPGA is a test-only transport.Transport that actually performs the
// bucket-method column reduction the real accelerator would, so that
// session.MSM can be checked end to end against an independent reference
// multi-scalar multiplication instead of merely checking which packets it
// sent.
type fakeFPGA struct {
	n int

	registers map[uint32]uint32
	queryWord uint32

	xs, ys, kts []field.Element
	points      []curve.TEProjective
	built       bool

	digits     []int16
	aggregated bool
	resultX    [6]uint64
	resultY    [6]uint64
	resultZ    [6]uint64
	resultT    [6]uint64
}

const channelMask = (1 << 26) - 1

func newFakeFPGA(n int) *fakeFPGA {
	return &fakeFPGA{
		n:         n,
		registers: map[uint32]uint32{},
		xs:        make([]field.Element, n),
		ys:        make([]field.Element, n),
		kts:       make([]field.Element, n),
	}
}

func (f *fakeFPGA) ReadRegister(index uint32) uint32 {
	switch index {
	case transport.RegAggregated:
		if f.aggregated {
			return 1
		}
		return 0
	case transport.RegX:
		return readWord(f.resultX, f.queryWord)
	case transport.RegY:
		return readWord(f.resultY, f.queryWord)
	case transport.RegZ:
		return readWord(f.resultZ, f.queryWord)
	case transport.RegT:
		return readWord(f.resultT, f.queryWord)
	default:
		return f.registers[index]
	}
}

func readWord(limbs [6]uint64, word uint32) uint32 {
	limb := limbs[word/2]
	if word%2 == 0 {
		return uint32(limb)
	}
	return uint32(limb >> 32)
}

func (f *fakeFPGA) WriteRegister(index uint32, value uint32) {
	if index == transport.RegQuery {
		f.queryWord = value
		return
	}
	f.registers[index] = value
}

func (f *fakeFPGA) Flush() {}
func (f *fakeFPGA) Close() error { return nil }

func (f *fakeFPGA) WritePacket(index uint64, p *transport.Packet) {
	channel := index &^ channelMask
	offset := int(index & channelMask)

	switch channel {
	case transport.ChannelSetX:
		f.xs[offset] = readElementPacket(p)
	case transport.ChannelSetY:
		f.ys[offset] = readElementPacket(p)
	case transport.ChannelSetKT:
		f.kts[offset] = readElementPacket(p)
	case transport.ChannelSetZero:
		// identity is fixed; nothing to capture.
	case transport.ChannelMsmColumn:
		if offset == 0 {
			f.digits = f.digits[:0]
			f.aggregated = false
			return
		}
		for w := 0; w < 8 && len(f.digits) < f.n; w++ {
			word := binary.LittleEndian.Uint64(p[w*8 : w*8+8])
			digit := int16(uint16(word >> 14))
			f.digits = append(f.digits, digit)
		}
		if len(f.digits) == f.n {
			f.computeColumn()
		}
	}
}

func (f *fakeFPGA) ensurePoints() {
	if f.built {
		return
	}
	f.points = make([]curve.TEProjective, f.n)
	for i := range f.points {
		var t field.Element
		t.Mul(&f.xs[i], &f.ys[i])
		f.points[i] = curve.TEProjective{X: f.xs[i], Y: f.ys[i], Z: field.One(), T: t}
	}
	f.built = true
}

// maxBucket is the largest bucket a digit selects: |-2^15|, the magnitude
// of the most negative Digit the recoder can emit.
const maxBucket = 1 << 15

func (f *fakeFPGA) computeColumn() {
	f.ensurePoints()

	buckets := make([]curve.TEProjective, maxBucket+1)
	for i := range buckets {
		buckets[i] = curve.TEIdentity()
	}

	for i, d := range f.digits {
		if d == 0 {
			continue
		}
		idx := int(d)
		p := f.points[i]
		if idx < 0 {
			idx = -idx
			curve.Negate(&p, p)
		}
		var sum curve.TEProjective
		curve.Add(&sum, buckets[idx], p)
		buckets[idx] = sum
	}

	runningSum := curve.TEIdentity()
	acc := curve.TEIdentity()
	for k := maxBucket; k >= 1; k-- {
		var nextRunning curve.TEProjective
		curve.Add(&nextRunning, runningSum, buckets[k])
		runningSum = nextRunning

		var nextAcc curve.TEProjective
		curve.Add(&nextAcc, acc, runningSum)
		acc = nextAcc
	}

	f.resultX = field.ToLimbs(acc.X)
	f.resultY = field.ToLimbs(acc.Y)
	f.resultZ = field.ToLimbs(acc.Z)
	f.resultT = field.ToLimbs(acc.T)
	f.aggregated = true
}

func readElementPacket(p *transport.Packet) field.Element {
	var limbs [6]uint64
	for i := range limbs {
		limbs[i] = binary.LittleEndian.Uint64(p[i*8 : i*8+8])
	}
	return field.FromLimbs(limbs)
}
