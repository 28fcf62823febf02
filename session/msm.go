package session

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cyclone-msm/cyclone-msm/curve"
	"github.com/cyclone-msm/cyclone-msm/field"
	"github.com/cyclone-msm/cyclone-msm/scalar"
	"github.com/cyclone-msm/cyclone-msm/stream"
	"github.com/cyclone-msm/cyclone-msm/transport"
)

// digitsPerPacket is how many 16-bit SetDigit commands a single 64-byte
// MsmColumn packet holds: 8 commands of 8 bytes each.
const digitsPerPacket = 8

// windowWidth is the number of doublings a window fold shifts the running
// accumulator by: one 16-bit digit's worth of weight.
const windowWidth = 16

// finalShiftWidth realigns total (built from limbs 1-3, each limb
// contributing one extra trailing doubling past its own last window) to
// total0's frame: three windows' worth of weight, 3*16 = 48 bits.
const finalShiftWidth = 3 * windowWidth

// windowOrder is the descending window visitation order within a limb, as
// the accelerator's bucket reduction processes the most significant
// 16-bit digit of a limb first.
var windowOrder = [4]int{3, 2, 1, 0}

// limbOrder is the descending limb visitation order for the higher three
// limbs; limb 0 is folded separately (and concurrently) into total0.
var limbOrder = [3]int{3, 2, 1}

// MSM computes the multi-scalar multiplication of scalars against the
// points most recently uploaded with SetPreprocessedPoints, returning the
// resulting Weierstrass-affine point. len(scalars) must equal s.Len().
//
// Scalars are recoded into sixteen signed 16-bit digits each (four limbs
// times four windows), and the accelerator's bucket-method reduction is
// driven one window at a time: limb 0's four windows fold into total0
// concurrently with the recode pass computing carried digits for limbs
// 1-3 (§5 notes these two tasks share no mutable state), then limbs 3, 2,
// 1 fold continuously into total, and a final realignment shift combines
// the two accumulators.
func (s *Session) MSM(scalars []scalar.Scalar) curve.WeierstrassAffine {
	if len(scalars) != s.n {
		panic("session: MSM: scalar count does not match session length")
	}

	total0 := curve.TEIdentity()
	total := curve.TEIdentity()

	var g errgroup.Group
	g.Go(func() error {
		s.foldLimb(0, s.rawLimbZeroDigitAt(scalars), &total0)
		return nil
	})
	g.Go(func() error {
		scalar.Recode(scalars, s.carry)
		return nil
	})
	_ = g.Wait() // neither task returns an error; this is purely the join point

	for _, limb := range limbOrder {
		l := limb
		s.foldLimb(l, func(i, w int) int16 { return int16(scalar.ColumnDigit(s.carry[i], l, w)) }, &total)
	}

	curve.DoubleInPlace(&total, finalShiftWidth)
	var folded curve.TEProjective
	curve.Add(&folded, total, total0)

	return curve.IntoWeierstrass(folded)
}

// rawLimbZeroDigitAt precomputes limb 0's four digits for every scalar
// once (from the raw, un-recoded input), rather than recomputing them on
// every one of the four window passes foldLimb makes.
func (s *Session) rawLimbZeroDigitAt(scalars []scalar.Scalar) func(i, w int) int16 {
	cache := make([][4]scalar.Digit, len(scalars))
	for i, sc := range scalars {
		cache[i] = scalar.LimbZeroDigits(sc)
	}
	return func(i, w int) int16 { return int16(cache[i][w]) }
}

// foldLimb drives one limb's four window passes (most significant first),
// doubling the accumulator by one digit width after each fold except the
// very last window of the very last limb overall (limb 0's window 0),
// which needs no further realignment.
func (s *Session) foldLimb(limb int, digitAt func(i, w int) int16, accumulator *curve.TEProjective) {
	for _, w := range windowOrder {
		window := w
		s.runWindow(limb, window, func(i int) int16 { return digitAt(i, window) }, accumulator)
		if !(limb == 0 && window == 0) {
			curve.DoubleInPlace(accumulator, windowWidth)
		}
	}
}

// runWindow drives a single MsmColumn round trip: it opens the channel
// with a StartColumn command, streams digitAt(i) for every scalar index i
// in source order, polls Aggregated until the FPGA reports a result,
// reads it back, and folds it into *accumulator.
func (s *Session) runWindow(limb, window int, digitAt func(i int) int16, accumulator *curve.TEProjective) {
	start := transport.NewPacket()
	start.PutUint64(0, transport.OpStartColumn)
	s.t.WritePacket(transport.ChannelMsmColumn, start)
	s.t.Flush()

	st := stream.OpenAt(s.t, transport.ChannelMsmColumn, 1, stream.DigitBackoff{Ctx: s.cfg.ctx})
	for i := 0; i < s.n; i += digitsPerPacket {
		p := transport.NewPacket()
		end := i + digitsPerPacket
		if end > s.n {
			end = s.n
		}
		for off, idx := 0, i; idx < end; off, idx = off+1, idx+1 {
			p.PutUint64(off*8, transport.EncodeSetDigit(digitAt(idx)))
		}
		st.Write(p)
	}
	st.Close()

	for s.t.ReadRegister(transport.RegAggregated) != 1 {
		s.checkCancel()
	}

	point := curve.TEProjective{
		X: s.readCoordinate(transport.RegX),
		Y: s.readCoordinate(transport.RegY),
		Z: s.readCoordinate(transport.RegZ),
		T: s.readCoordinate(transport.RegT),
	}

	var folded curve.TEProjective
	curve.Add(&folded, *accumulator, point)
	*accumulator = folded

	if s.cfg.verbose {
		logWindowFold(limb, window)
	}
}

// RunColumn drives a single, standalone column round trip against the
// points currently uploaded, returning the reduced bucket-method result
// directly as a Weierstrass-affine point rather than folding it into an
// MSM total. This is what the "column" CLI check and isolated
// dispatch-ordering tests exercise: one StartColumn packet followed by
// ceil(n/8) SetDigit packets on the MsmColumn channel, with no further
// doubling or shifting applied.
func (s *Session) RunColumn(digitAt func(i int) int16) curve.WeierstrassAffine {
	acc := curve.TEIdentity()
	s.runWindow(0, 0, digitAt, &acc)
	return curve.IntoWeierstrass(acc)
}

// checkCancel panics if the session's configured context has been
// canceled, the same "abort the process" idiom used elsewhere for
// internal invariant violations: an Aggregated poll has no partial state
// to unwind, so cancellation can only stop the process, not the MSM.
func (s *Session) checkCancel() {
	if s.cfg.ctx == nil {
		return
	}
	select {
	case <-s.cfg.ctx.Done():
		panic(fmt.Errorf("session: aggregated poll: %w", s.cfg.ctx.Err()))
	default:
	}
}

// readCoordinate assembles one Fq coordinate from the register file: six
// 64-bit limbs, each read as two 32-bit words selected via RegQuery, for
// twelve register reads in total.
func (s *Session) readCoordinate(reg uint32) field.Element {
	var limbs [6]uint64
	for word := uint32(0); word < 12; word++ {
		s.t.WriteRegister(transport.RegQuery, word)
		v := uint64(s.t.ReadRegister(reg))
		if word%2 == 0 {
			limbs[word/2] = v
		} else {
			limbs[word/2] |= v << 32
		}
	}
	return field.FromLimbs(limbs)
}
