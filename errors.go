package planfft

import "errors"

// Sentinel errors returned by cache and transform operations.
var (
	// ErrInvalidLength is returned for lengths below 1 or lengths the
	// configured backend cannot plan.
	ErrInvalidLength = errors.New("planfft: invalid transform length")

	// ErrNilSlice is returned when a nil buffer is passed to a transform.
	ErrNilSlice = errors.New("planfft: nil slice")

	// ErrLengthMismatch is returned when a buffer is shorter than
	// length*batch elements.
	ErrLengthMismatch = errors.New("planfft: slice length mismatch")

	// ErrInvalidBatch is returned when the batch count is below 1.
	ErrInvalidBatch = errors.New("planfft: invalid batch count")

	// ErrInvalidDirection is returned for directions other than Forward and
	// Backward. No transform is applied and the buffer is left untouched.
	ErrInvalidDirection = errors.New("planfft: invalid direction")

	// ErrResourceExhausted is returned when scratch allocation or plan
	// preparation fails. The cache is left as it was before the call.
	ErrResourceExhausted = errors.New("planfft: resource exhausted")

	// ErrUnknownBackend is returned when no backend is registered under a name.
	ErrUnknownBackend = errors.New("planfft: unknown backend")

	// ErrClosed is returned by a Manager after Close.
	ErrClosed = errors.New("planfft: manager closed")

	// ErrInvalidConfig is returned when configuration values are out of range.
	ErrInvalidConfig = errors.New("planfft: invalid configuration")
)

// errEntryReleased is returned by an entry evicted between lookup and use.
var errEntryReleased = errors.New("planfft: entry released")
