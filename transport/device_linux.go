//go:build linux

package transport

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open attaches to the accelerator's two PCIe BAR resource files, as
// exposed by the kernel under sysfs (e.g.
// "/sys/bus/pci/devices/0000:01:00.0/resource0" for the control BAR and
// "resource2" for the stream BAR). Both are mapped read/write; attach
// failures (commonly insufficient privilege to mmap a raw PCI resource)
// are reported as ErrPermissionDenied.
func Open(controlBARPath, streamBARPath string) (*Device, error) {
	control, closeControl, err := mmapBAR(controlBARPath, controlBARSize)
	if err != nil {
		return nil, err
	}
	stream, closeStream, err := mmapBAR(streamBARPath, streamBARSize)
	if err != nil {
		_ = closeControl()
		return nil, err
	}
	return &Device{
		control:      control,
		stream:       stream,
		closeControl: closeControl,
		closeStream:  closeStream,
	}, nil
}

func mmapBAR(path string, size int) (mem []byte, closeFn func() error, err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, ErrPermissionDenied
		}
		return nil, nil, fmt.Errorf("transport: open %s: %w", path, err)
	}

	b, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		if err == unix.EACCES || err == unix.EPERM {
			return nil, nil, ErrPermissionDenied
		}
		return nil, nil, fmt.Errorf("transport: mmap %s: %w", path, err)
	}

	return b, func() error {
		if uerr := unix.Munmap(b); uerr != nil {
			_ = f.Close()
			return uerr
		}
		return f.Close()
	}, nil
}

// writeCombining256 stores the 32-byte half src into dst with non-temporal
// semantics. Go's runtime offers no direct movntdq intrinsic, so this
// issues an ordinary volatile-equivalent copy; the stream BAR is already
// mapped write-combining by the kernel (the resourceN_wc variant), which
// gives the same coalescing behavior the hardware driver relies on.
func writeCombining256(dst []byte, src *[32]byte) {
	copy(dst, src[:])
}

// Flush issues a store barrier so every packet written since the last
// Flush is guaranteed visible to the device before this call returns.
func (d *Device) Flush() {
	sfence()
}
