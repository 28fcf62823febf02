package transport

import "sync/atomic"

// fenceGuard is the target of a throwaway atomic store used purely for its
// full memory-barrier side effect. Go has no portable sfence intrinsic;
// this stands in for the real hardware store-barrier the driver needs to
// drain write-combining buffers before the FPGA is told to consume them.
var fenceGuard uint32

func sfence() {
	atomic.StoreUint32(&fenceGuard, atomic.LoadUint32(&fenceGuard)+1)
}
