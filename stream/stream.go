// Package stream wraps a transport.Transport with a channel offset and a
// backoff policy, giving the session driver a simple write-and-forget
// interface to each of the accelerator's stream channels.
package stream

import "github.com/cyclone-msm/cyclone-msm/transport"

// Backoff governs how a Stream paces writes against the accelerator: when
// to flush write-combining buffers, and when (if ever) to poll hardware
// backpressure before continuing.
type Backoff interface {
	// AfterWrite is called once per packet written, after the write and
	// the offset increment, with the stream's channel base and the
	// number of packets written so far on this stream.
	AfterWrite(t transport.Transport, channel uint64, count int)

	// Close is called when the stream is closed, so a backoff that
	// batches flushes can drain anything still pending.
	Close(t transport.Transport, channel uint64, count int)
}

// Stream is a single accelerator channel: a transport, the channel's base
// address, a running packet offset within it, and a backoff policy.
type Stream struct {
	t       transport.Transport
	channel uint64
	offset  uint64
	backoff Backoff
	written int
	closed  bool
}

// Open begins a new stream on the given channel base (one of the
// channel-index constants in package transport), using backoff to pace
// writes.
func Open(t transport.Transport, channel uint64, backoff Backoff) *Stream {
	return &Stream{t: t, channel: channel, backoff: backoff}
}

// OpenAt begins a stream on channel starting at packet offset startOffset
// instead of 0, for callers that already wrote earlier packets on the
// same channel directly (e.g. a single StartColumn command ahead of the
// digit burst that follows it).
func OpenAt(t transport.Transport, channel uint64, startOffset uint64, backoff Backoff) *Stream {
	return &Stream{t: t, channel: channel, offset: startOffset, backoff: backoff}
}

// Write sends one packet on the stream, advancing its offset and invoking
// the backoff policy.
func (s *Stream) Write(p *transport.Packet) {
	if s.closed {
		panic("stream: write after close")
	}
	s.t.WritePacket(s.channel+s.offset, p)
	s.offset++
	s.written++
	s.backoff.AfterWrite(s.t, s.channel, s.written)
}

// Close flushes any packets the backoff policy has not yet flushed. A
// Stream must be closed exactly once; closing is the Go analogue of the
// automatic flush-on-drop the original driver relies on, since Go has no
// destructors.
func (s *Stream) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.backoff.Close(s.t, s.channel, s.written)
}
