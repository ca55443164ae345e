package planfft

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cwbudde/planfft/internal/layout"
	"github.com/cwbudde/planfft/internal/memory"
)

// Entry owns one prepared plan and the two scratch blocks it runs on.
// Entries are created and owned by a Manager; callers receive references
// that stay valid until the entry is evicted.
//
// Applies on one entry are serialized because the scratch blocks are
// shared state. Applies on distinct entries may run concurrently.
type Entry struct {
	id        uuid.UUID
	key       CacheKey
	plan      Plan
	work      *memory.Block
	aux       *memory.Block
	alignment uintptr

	mu       sync.Mutex
	released bool
}

// newEntry allocates scratch and prepares a plan for key. On failure
// every resource acquired so far is released and the error wraps
// ErrResourceExhausted.
func newEntry(key CacheKey, b Backend, arena *memory.Arena) (*Entry, error) {
	var owned releaser
	defer owned.release()

	work, err := arena.Alloc(2 * key.Length)
	if err != nil {
		return nil, fmt.Errorf("%w: work buffer for %s: %w", ErrResourceExhausted, key, err)
	}

	owned.add(work.Free)

	aux, err := arena.Alloc(2 * key.Length)
	if err != nil {
		return nil, fmt.Errorf("%w: aux buffer for %s: %w", ErrResourceExhausted, key, err)
	}

	owned.add(aux.Free)

	plan, err := b.Prepare(key.spec(), Workspace{Buffer: work.Data, Scratch: aux.Data})
	if err != nil {
		return nil, fmt.Errorf("%w: %s plan for %s: %w", ErrResourceExhausted, b.Name(), key, err)
	}

	owned.disarm()

	return &Entry{
		id:        uuid.New(),
		key:       key,
		plan:      plan,
		work:      work,
		aux:       aux,
		alignment: arena.Alignment(),
	}, nil
}

// ID returns the identifier used for this entry in logs.
func (e *Entry) ID() uuid.UUID {
	return e.id
}

// Key returns the key the entry was built for.
func (e *Entry) Key() CacheKey {
	return e.key
}

// Algorithm returns the kernel the plan runs.
func (e *Entry) Algorithm() Algorithm {
	return e.plan.Algorithm()
}

// ScratchBytes returns the bytes of scratch owned by the entry.
func (e *Entry) ScratchBytes() int64 {
	return e.work.Bytes() + e.aux.Bytes()
}

// Forward transforms buf in place. buf holds the entry length in samples
// (interleaved for complex entries). The entry must have been built for
// the Forward direction.
func (e *Entry) Forward(buf []float64) error {
	return e.applyBatch(buf, Forward, 1)
}

// Backward transforms buf in place. It mirrors Forward.
func (e *Entry) Backward(buf []float64) error {
	return e.applyBatch(buf, Backward, 1)
}

// applyBatch transforms count consecutive buffers under the entry lock.
func (e *Entry) applyBatch(buf []float64, dir Direction, count int) error {
	if dir != e.key.Direction {
		return fmt.Errorf("%w: entry %s cannot run %s", ErrInvalidDirection, e.key, dir)
	}

	stride := e.key.floats()
	if len(buf) < stride*count {
		return fmt.Errorf("%w: need %d values, got %d", ErrLengthMismatch, stride*count, len(buf))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.released {
		return errEntryReleased
	}

	for i := range count {
		one := buf[i*stride : (i+1)*stride]
		e.checkAligned(one)

		if dir == Forward {
			e.forward(one)
		} else {
			e.backward(one)
		}
	}

	return nil
}

func (e *Entry) forward(buf []float64) {
	work := e.work.Data
	e.plan.Execute(work, buf, e.aux.Data)

	if e.key.Kind == KindReal {
		layout.ToStandard(buf, work[:len(buf)])
		return
	}

	copy(buf, work)
}

func (e *Entry) backward(buf []float64) {
	work := e.work.Data

	if e.key.Kind == KindReal {
		layout.ToBackend(work, buf)
		e.plan.Execute(buf, work, e.aux.Data)

		return
	}

	e.plan.Execute(work, buf, e.aux.Data)
	copy(buf, work)
}

func (e *Entry) checkAligned(buf []float64) {
	if debugChecks && e.key.Aligned && !memory.IsAligned(buf, e.alignment) {
		panic(fmt.Sprintf("planfft: entry %s used with a buffer not aligned to %d bytes", e.key, e.alignment))
	}
}

// release destroys the plan, then the scratch blocks. It waits for an
// apply in progress and is idempotent.
func (e *Entry) release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.released {
		return
	}

	e.released = true
	e.plan.Release()
	e.aux.Free()
	e.work.Free()
}

// releaser runs registered release functions in reverse order when
// release is called, unless disarm was called first.
type releaser struct {
	fns []func()
}

func (r *releaser) add(fn func()) {
	r.fns = append(r.fns, fn)
}

func (r *releaser) disarm() {
	r.fns = nil
}

func (r *releaser) release() {
	for i := len(r.fns) - 1; i >= 0; i-- {
		r.fns[i]()
	}

	r.fns = nil
}
