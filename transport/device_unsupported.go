//go:build !linux

package transport

import "fmt"

// Open is unimplemented outside Linux: the accelerator's BARs are only
// ever exposed through the Linux sysfs resourceN convention this package
// knows how to map.
func Open(controlBARPath, streamBARPath string) (*Device, error) {
	return nil, fmt.Errorf("transport: device attach is only supported on linux")
}

func writeCombining256(dst []byte, src *[32]byte) {
	copy(dst, src[:])
}

func (d *Device) Flush() {
	sfence()
}
