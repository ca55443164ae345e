// Package planner remembers which kernel measured planning chose for a
// given transform so later plans of the same shape skip the measurement.
package planner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cwbudde/planfft/internal/fftypes"
)

// ErrMalformedWisdom is returned by Import for lines it cannot parse.
var ErrMalformedWisdom = errors.New("planner: malformed wisdom line")

// WisdomKey identifies a measured planning decision.
type WisdomKey struct {
	Size        int
	Kind        fftypes.Kind
	Direction   fftypes.Direction
	CPUFeatures uint64
}

// WisdomEntry records the kernel chosen for a key.
type WisdomEntry struct {
	Key       WisdomKey
	Algorithm fftypes.Algorithm
	Timestamp time.Time
}

// Wisdom is a concurrency-safe store of planning decisions.
type Wisdom struct {
	mu      sync.RWMutex
	entries map[WisdomKey]WisdomEntry
}

// DefaultWisdom is the process-wide store used by the built-in backends.
var DefaultWisdom = NewWisdom()

// NewWisdom returns an empty store.
func NewWisdom() *Wisdom {
	return &Wisdom{entries: make(map[WisdomKey]WisdomEntry)}
}

// Store records entry, replacing any previous decision for its key.
func (w *Wisdom) Store(entry WisdomEntry) {
	w.mu.Lock()
	w.entries[entry.Key] = entry
	w.mu.Unlock()
}

// Lookup returns the entry recorded for key.
func (w *Wisdom) Lookup(key WisdomKey) (WisdomEntry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	entry, ok := w.entries[key]

	return entry, ok
}

// Len returns the number of recorded decisions.
func (w *Wisdom) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.entries)
}

// Clear removes every decision.
func (w *Wisdom) Clear() {
	w.mu.Lock()
	w.entries = make(map[WisdomKey]WisdomEntry)
	w.mu.Unlock()
}

// Entries returns the recorded decisions sorted by size, kind and direction.
func (w *Wisdom) Entries() []WisdomEntry {
	w.mu.RLock()
	out := make([]WisdomEntry, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e)
	}
	w.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.Size != b.Size {
			return a.Size < b.Size
		}

		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}

		if a.Direction != b.Direction {
			return a.Direction > b.Direction
		}

		return a.CPUFeatures < b.CPUFeatures
	})

	return out
}

// Export writes one line per decision in the form
// size:kind:direction:features:algorithm:timestamp.
func (w *Wisdom) Export(out io.Writer) error {
	bw := bufio.NewWriter(out)

	for _, e := range w.Entries() {
		_, err := fmt.Fprintf(bw, "%d:%d:%d:%d:%s:%d\n",
			e.Key.Size, e.Key.Kind, e.Key.Direction, e.Key.CPUFeatures, e.Algorithm, e.Timestamp.Unix())
		if err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Import reads lines produced by Export and stores them. Blank lines and
// lines starting with '#' are skipped. Entries parsed before a malformed
// line are kept.
func (w *Wisdom) Import(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		w.Store(entry)
	}

	return scanner.Err()
}

func parseLine(line string) (WisdomEntry, error) {
	fields := strings.Split(line, ":")
	if len(fields) != 6 {
		return WisdomEntry{}, fmt.Errorf("%w: want 6 fields, got %d", ErrMalformedWisdom, len(fields))
	}

	ints := make([]int64, 0, 4)
	for _, f := range []string{fields[0], fields[1], fields[2], fields[5]} {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return WisdomEntry{}, fmt.Errorf("%w: %q: %w", ErrMalformedWisdom, f, err)
		}

		ints = append(ints, v)
	}

	features, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return WisdomEntry{}, fmt.Errorf("%w: %q: %w", ErrMalformedWisdom, fields[3], err)
	}

	size, kind, dir, stamp := ints[0], ints[1], ints[2], ints[3]

	if size < 1 {
		return WisdomEntry{}, fmt.Errorf("%w: size %d", ErrMalformedWisdom, size)
	}

	if kind != int64(fftypes.KindComplex) && kind != int64(fftypes.KindReal) {
		return WisdomEntry{}, fmt.Errorf("%w: kind %d", ErrMalformedWisdom, kind)
	}

	if !fftypes.Direction(dir).Valid() {
		return WisdomEntry{}, fmt.Errorf("%w: direction %d", ErrMalformedWisdom, dir)
	}

	algorithm, ok := fftypes.ParseAlgorithm(fields[4])
	if !ok {
		return WisdomEntry{}, fmt.Errorf("%w: algorithm %q", ErrMalformedWisdom, fields[4])
	}

	return WisdomEntry{
		Key: WisdomKey{
			Size:        int(size),
			Kind:        fftypes.Kind(kind),
			Direction:   fftypes.Direction(dir),
			CPUFeatures: features,
		},
		Algorithm: algorithm,
		Timestamp: time.Unix(stamp, 0),
	}, nil
}
