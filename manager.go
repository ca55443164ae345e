package planfft

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cwbudde/planfft/internal/backend"
	"github.com/cwbudde/planfft/internal/cpu"
	"github.com/cwbudde/planfft/internal/memory"
)

// DefaultCapacity is the number of entries a Manager keeps by default.
const DefaultCapacity = 10

// EvictionPolicy decides which resident entry is replaced when a full
// Manager needs room.
type EvictionPolicy uint8

const (
	// EvictFIFO replaces the entry that was inserted first.
	EvictFIFO EvictionPolicy = iota
	// EvictLRU replaces the entry that was used least recently.
	EvictLRU
)

func (p EvictionPolicy) String() string {
	switch p {
	case EvictFIFO:
		return "fifo"
	case EvictLRU:
		return "lru"
	default:
		return "unknown"
	}
}

// ParseEvictionPolicy accepts "fifo" or "lru" in any case.
func ParseEvictionPolicy(s string) (EvictionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo", "":
		return EvictFIFO, nil
	case "lru":
		return EvictLRU, nil
	default:
		return EvictFIFO, fmt.Errorf("%w: eviction policy %q", ErrInvalidConfig, s)
	}
}

// Stats is a snapshot of Manager counters.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Constructions uint64
	Evictions     uint64
	Failures      uint64
	Resident      int
	ScratchBytes  int64
}

// Manager is a bounded pool of cache entries. Lookups, construction and
// eviction happen under one lock, so concurrent callers racing on a
// missing key build it once.
type Manager struct {
	backend  Backend
	capacity int
	policy   EvictionPolicy
	flags    Flags
	arena    *memory.Arena
	logger   *zap.Logger

	mu      sync.Mutex
	entries []*Entry // eviction order; entries[0] is the next victim
	stats   Stats
	closed  bool
}

// Option configures a Manager.
type Option func(*managerOptions)

type managerOptions struct {
	capacity     int
	policy       EvictionPolicy
	flags        Flags
	scratchLimit int64
	alignment    uintptr
	logger       *zap.Logger
}

// WithCapacity sets the maximum number of resident entries. Values below
// 1 are raised to 1.
func WithCapacity(n int) Option {
	return func(o *managerOptions) {
		o.capacity = max(n, 1)
	}
}

// WithEviction selects the eviction policy. The default is EvictFIFO.
func WithEviction(p EvictionPolicy) Option {
	return func(o *managerOptions) {
		o.policy = p
	}
}

// WithFlags sets the planning flags placed in every key the manager
// builds from a transform call.
func WithFlags(f Flags) Option {
	return func(o *managerOptions) {
		o.flags = f
	}
}

// WithScratchLimit caps the scratch bytes all resident entries may hold.
// Zero means unlimited.
func WithScratchLimit(bytes int64) Option {
	return func(o *managerOptions) {
		o.scratchLimit = bytes
	}
}

// WithAlignment overrides the byte boundary that makes a buffer aligned.
// The default follows the CPU's widest vector unit.
func WithAlignment(align uintptr) Option {
	return func(o *managerOptions) {
		o.alignment = align
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *managerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewManager returns an empty manager preparing plans with b.
// A nil b selects DefaultBackend.
func NewManager(b Backend, opts ...Option) *Manager {
	if b == nil {
		b, _ = backend.Lookup(DefaultBackend)
	}

	o := managerOptions{
		capacity:  DefaultCapacity,
		policy:    EvictFIFO,
		alignment: cpu.DetectFeatures().SIMDAlignment(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Manager{
		backend:  b,
		capacity: o.capacity,
		policy:   o.policy,
		flags:    o.flags,
		arena:    memory.NewArena(o.scratchLimit, o.alignment),
		logger:   o.logger.With(zap.String("backend", b.Name())),
		entries:  make([]*Entry, 0, o.capacity),
	}
}

// Backend returns the backend the manager prepares plans with.
func (m *Manager) Backend() Backend {
	return m.backend
}

// Capacity returns the maximum number of resident entries.
func (m *Manager) Capacity() int {
	return m.capacity
}

// Get returns the resident entry for key, building it on a miss. When the
// manager is full, the entry chosen by the eviction policy is replaced.
// The new entry is built before the victim is removed, so a failed build
// leaves the resident set unchanged.
func (m *Manager) Get(key CacheKey) (*Entry, error) {
	m.mu.Lock()

	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}

	if i := m.find(key); i >= 0 {
		e := m.entries[i]
		m.stats.Hits++

		if m.policy == EvictLRU {
			m.moveToBack(i)
		}

		m.mu.Unlock()

		return e, nil
	}

	m.stats.Misses++

	e, err := newEntry(key, m.backend, m.arena)
	if err != nil {
		m.stats.Failures++
		m.mu.Unlock()

		m.logger.Error("plan construction failed", keyFields(key, zap.Error(err))...)

		return nil, err
	}

	m.stats.Constructions++

	var victim *Entry
	if len(m.entries) >= m.capacity {
		victim = m.entries[0]
		copy(m.entries, m.entries[1:])
		m.entries[len(m.entries)-1] = nil
		m.entries = m.entries[:len(m.entries)-1]
		m.stats.Evictions++
	}

	m.entries = append(m.entries, e)
	m.mu.Unlock()

	if victim != nil {
		victim.release()
		m.logger.Debug("plan evicted", keyFields(victim.key, zap.Stringer("entry", victim.id))...)
	}

	m.logger.Debug("plan constructed", keyFields(key,
		zap.Stringer("entry", e.id),
		zap.Stringer("algorithm", e.Algorithm()),
		zap.Int64("scratch_bytes", e.ScratchBytes()),
	)...)

	return e, nil
}

// Len returns the number of resident entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Keys returns the resident keys in eviction order, next victim first.
func (m *Manager) Keys() []CacheKey {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]CacheKey, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}

	return keys
}

// Stats returns a snapshot of the manager counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	s := m.stats
	s.Resident = len(m.entries)
	m.mu.Unlock()

	s.ScratchBytes = m.arena.InUse()

	return s
}

// Purge releases every resident entry. The manager stays usable.
func (m *Manager) Purge() {
	m.mu.Lock()
	evicted := m.entries
	m.entries = make([]*Entry, 0, m.capacity)
	m.mu.Unlock()

	for _, e := range evicted {
		e.release()
	}

	if len(evicted) > 0 {
		m.logger.Debug("plans purged", zap.Int("count", len(evicted)))
	}
}

// Close releases every resident entry; later calls to Get fail with
// ErrClosed. Close is idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.Purge()

	return nil
}

func (m *Manager) find(key CacheKey) int {
	for i, e := range m.entries {
		if e.key == key {
			return i
		}
	}

	return -1
}

func (m *Manager) moveToBack(i int) {
	last := len(m.entries) - 1
	if i == last {
		return
	}

	e := m.entries[i]
	copy(m.entries[i:], m.entries[i+1:])
	m.entries[last] = e
}

func keyFields(key CacheKey, extra ...zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.Int("length", key.Length),
		zap.Stringer("kind", key.Kind),
		zap.Stringer("direction", key.Direction),
		zap.Bool("aligned", key.Aligned),
		zap.Stringer("flags", key.Flags),
	}, extra...)
}
