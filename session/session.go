// Package session drives the accelerator end to end: lifecycle setup,
// preprocessed-point upload, and the central MSM algorithm, built on the
// stream and transport packages.
package session

import (
	"fmt"

	"github.com/cyclone-msm/cyclone-msm"
	"github.com/cyclone-msm/cyclone-msm/curve"
	"github.com/cyclone-msm/cyclone-msm/scalar"
	"github.com/cyclone-msm/cyclone-msm/stream"
	"github.com/cyclone-msm/cyclone-msm/transport"
)

// MaxK is the largest supported MSM size exponent: n = 2^k points, with
// k <= MaxK so the carry scratch and bucket range comfortably fit the
// accelerator's fixed 2^15-bucket design.
const MaxK = 27

// Session owns the accelerator's transport for the duration of its
// lifetime and is not safe for concurrent use by multiple goroutines:
// only one stream may be open on the device at a time.
type Session struct {
	t   transport.Transport
	cfg *Config
	k   int
	n   int

	carry []scalar.Scalar // scratch reused across calls to MSM
}

// New configures a fresh session against t for 2^k points: it sets the
// fixed register parameters (MsmLength, FirstBucket, LastBucket,
// DdrReadLen), pushes the group identity to the SetZero channel, and
// allocates the carry scratch buffer MSM reuses on every call.
func New(t transport.Transport, k int, cfg *Config) (*Session, error) {
	if k < 0 || k > MaxK {
		return nil, fmt.Errorf("session: k=%d out of range [0, %d]: %w", k, MaxK, cyclonemsm.ErrSizeOverflow)
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	n := 1 << k
	s := &Session{t: t, cfg: cfg, k: k, n: n, carry: make([]scalar.Scalar, n)}

	t.WriteRegister(transport.RegMsmLength, uint32(n))
	t.WriteRegister(transport.RegFirstBucket, transport.FirstBucket)
	t.WriteRegister(transport.RegLastBucket, transport.LastBucket)
	t.WriteRegister(transport.RegDdrReadLen, transport.DdrReadLen)

	s.pushIdentity()
	return s, nil
}

// Len returns n = 2^k, the number of points and scalars this session is
// configured for.
func (s *Session) Len() int { return s.n }

func (s *Session) pushIdentity() {
	st := stream.Open(s.t, transport.ChannelSetZero, stream.UploadBackoff{})
	id := curve.TEIdentity()
	writeElementPacket(st, id.X)
	writeElementPacket(st, id.Y)
	writeElementPacket(st, id.Z)
	writeElementPacket(st, id.T)
	st.Close()
}

// SetPreprocessedPoints uploads points to the accelerator in three
// passes — X, then Y, then KT — each paced with UploadBackoff. It panics
// if len(points) != n, matching the upload's fixed-size contract with the
// session it was allocated for.
func (s *Session) SetPreprocessedPoints(points []curve.PreprocessedAffine) {
	if len(points) != s.n {
		panic(fmt.Sprintf("session: SetPreprocessedPoints: got %d points, want %d", len(points), s.n))
	}

	sx := stream.Open(s.t, transport.ChannelSetX, stream.UploadBackoff{})
	for _, p := range points {
		writeElementPacket(sx, p.X)
	}
	sx.Close()

	sy := stream.Open(s.t, transport.ChannelSetY, stream.UploadBackoff{})
	for _, p := range points {
		writeElementPacket(sy, p.Y)
	}
	sy.Close()

	skt := stream.Open(s.t, transport.ChannelSetKT, stream.UploadBackoff{})
	for _, p := range points {
		writeElementPacket(skt, p.KT)
	}
	skt.Close()
}

// Close releases the underlying transport. Callers must not call Close
// while an MSM is running.
func (s *Session) Close() error {
	return s.t.Close()
}
