// Package cyclonemsm collects the sentinel errors shared across the
// accelerator driver's layers, so callers can use errors.Is regardless of
// which package actually returned the error.
package cyclonemsm

import "errors"

var (
	// ErrPermissionDenied is returned when attaching to the accelerator's
	// memory-mapped BAR regions fails because the calling process lacks
	// the privilege (or /dev/mem / VFIO group access) the mapping needs.
	ErrPermissionDenied = errors.New("cyclonemsm: permission denied attaching accelerator")

	// ErrSizeOverflow is returned when a requested MSM size exceeds the
	// accelerator's fixed bucket-count design, k > session.MaxK.
	ErrSizeOverflow = errors.New("cyclonemsm: requested size exceeds accelerator capacity")

	// ErrLengthMismatch identifies a slice of points, scalars, or digits
	// whose length does not match the session's configured length n = 2^k.
	// The session package treats such a mismatch as a contract violation
	// and panics rather than returning this error.
	ErrLengthMismatch = errors.New("cyclonemsm: length mismatch")
)
