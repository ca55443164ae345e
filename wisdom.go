package planfft

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/planfft/internal/planner"
)

// Wisdom stores the kernel choices made by measured planning, so plans of
// the same shape on the same CPU skip the measurement.
type Wisdom = planner.Wisdom

// NewWisdom returns an empty wisdom store.
func NewWisdom() *Wisdom {
	return planner.NewWisdom()
}

// DefaultWisdom returns the store the registered radix2 backend consults.
func DefaultWisdom() *Wisdom {
	return planner.DefaultWisdom
}

// ImportWisdom merges the wisdom lines in filename into the default store.
// A missing file yields an error matching os.ErrNotExist.
func ImportWisdom(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("planfft: open wisdom: %w", err)
	}
	defer f.Close()

	if err := planner.DefaultWisdom.Import(f); err != nil {
		return fmt.Errorf("planfft: import wisdom %s: %w", filename, err)
	}

	return nil
}

// ImportWisdomFromString merges wisdom lines held in data.
func ImportWisdomFromString(data string) error {
	if err := planner.DefaultWisdom.Import(strings.NewReader(data)); err != nil {
		return fmt.Errorf("planfft: import wisdom: %w", err)
	}

	return nil
}

// ExportWisdom writes the default store to filename.
func ExportWisdom(filename string) error {
	return ExportWisdomTo(filename, planner.DefaultWisdom)
}

// ExportWisdomTo writes w to filename, replacing its contents.
func ExportWisdomTo(filename string, w *Wisdom) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("planfft: create wisdom: %w", err)
	}

	if err := w.Export(f); err != nil {
		f.Close()
		return fmt.Errorf("planfft: export wisdom %s: %w", filename, err)
	}

	return f.Close()
}

// ClearWisdom empties the default store.
func ClearWisdom() {
	planner.DefaultWisdom.Clear()
}

// WisdomLen returns the number of decisions in the default store.
func WisdomLen() int {
	return planner.DefaultWisdom.Len()
}
