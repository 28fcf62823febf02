package stream

import (
	"context"
	"fmt"

	"github.com/cyclone-msm/cyclone-msm/transport"
)

// UploadBackoff flushes write-combining buffers every 1024 packets and on
// close. It never polls hardware backpressure: the accelerator's upload
// FIFOs are deep enough that point-coordinate uploads never need it.
type UploadBackoff struct{}

const uploadFlushInterval = 1024

func (UploadBackoff) AfterWrite(t transport.Transport, channel uint64, count int) {
	if count%uploadFlushInterval == 0 {
		t.Flush()
	}
}

func (UploadBackoff) Close(t transport.Transport, channel uint64, count int) {
	if count%uploadFlushInterval != 0 {
		t.Flush()
	}
}

// DigitBackoff flushes and polls the digits-queue depth register every
// 512 packets, spin-waiting until it falls to at most
// transport.MaxDigitsQueueDepth. This is the sole backpressure mechanism
// preventing the host from overrunning the FPGA's digit-processing
// pipeline; a poll that never drains is a hard hang by design, matching
// hardware liveness assumptions — there is no hardware timeout. Ctx, if
// set, is checked on every spin so a caller can still bail out at the Go
// level; a nil Ctx spins forever, as before.
type DigitBackoff struct {
	Ctx context.Context
}

const digitFlushInterval = 512

func (b DigitBackoff) AfterWrite(t transport.Transport, channel uint64, count int) {
	if count%digitFlushInterval != 0 {
		return
	}
	t.Flush()
	for t.ReadRegister(transport.RegDigitsQueue) > transport.MaxDigitsQueueDepth {
		b.checkCancel()
	}
}

func (b DigitBackoff) Close(t transport.Transport, channel uint64, count int) {
	if count%digitFlushInterval != 0 {
		t.Flush()
	}
}

// checkCancel panics if Ctx has been canceled, the same "abort the
// process" idiom the session package uses for internal invariant
// violations: there is no meaningful way to unwind a half-drained digit
// burst and resume later.
func (b DigitBackoff) checkCancel() {
	if b.Ctx == nil {
		return
	}
	select {
	case <-b.Ctx.Done():
		panic(fmt.Errorf("stream: digit backoff: %w", b.Ctx.Err()))
	default:
	}
}
