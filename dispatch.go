package planfft

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/planfft/internal/fft"
	"github.com/cwbudde/planfft/internal/memory"
)

// TransformComplex applies howmany consecutive length-n complex transforms
// to buf in place. With normalize set the result is scaled by 1/n.
//
// Buffers are checked in order: nil buffer, length, batch count, buffer
// size, direction, backend support. An invalid direction is logged at warn
// level, leaves buf untouched and returns ErrInvalidDirection.
func (m *Manager) TransformComplex(buf []complex128, n int, dir Direction, howmany int, normalize bool) error {
	if buf == nil {
		return ErrNilSlice
	}

	return m.transform(memory.ComplexAsFloat64(buf), KindComplex, n, dir, howmany, normalize)
}

// TransformReal applies howmany consecutive length-n real transforms to
// buf in place. Forward output and backward input use the standard packed
// layout r0 r1 i1 r2 i2 .. with a trailing r(n/2) when n is even.
// Validation matches TransformComplex.
func (m *Manager) TransformReal(buf []float64, n int, dir Direction, howmany int, normalize bool) error {
	if buf == nil {
		return ErrNilSlice
	}

	return m.transform(buf, KindReal, n, dir, howmany, normalize)
}

func (m *Manager) transform(buf []float64, kind Kind, n int, dir Direction, howmany int, normalize bool) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	if howmany < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBatch, howmany)
	}

	stride := kind.Floats(n)
	if stride > len(buf)/howmany {
		return fmt.Errorf("%w: %d x %s length %d needs %d values, got %d",
			ErrLengthMismatch, howmany, kind, n, stride*howmany, len(buf))
	}

	if !dir.Valid() {
		m.logger.Warn("invalid transform direction",
			zap.Int("direction", int(dir)),
			zap.Int("length", n),
			zap.Stringer("kind", kind),
		)

		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	if !m.backend.Supports(n, kind) {
		return fmt.Errorf("%w: backend %s cannot plan %s length %d", ErrInvalidLength, m.backend.Name(), kind, n)
	}

	buf = buf[:stride*howmany]

	key := CacheKey{
		Length:    n,
		Kind:      kind,
		Direction: dir,
		Aligned:   m.batchAligned(buf, stride, howmany),
		Flags:     m.flags,
	}

	for {
		e, err := m.Get(key)
		if err != nil {
			return err
		}

		err = e.applyBatch(buf, dir, howmany)
		if errors.Is(err, errEntryReleased) {
			continue
		}

		if err != nil {
			return err
		}

		break
	}

	if normalize {
		fft.ScaleFloat64InPlace(buf, 1/float64(n))
	}

	return nil
}

// batchAligned reports whether every buffer in the batch is aligned. The
// first two buffers decide it since the rest repeat the second's offset.
func (m *Manager) batchAligned(buf []float64, stride, howmany int) bool {
	align := m.arena.Alignment()
	if !memory.IsAligned(buf, align) {
		return false
	}

	return howmany == 1 || memory.IsAligned(buf[stride:], align)
}
