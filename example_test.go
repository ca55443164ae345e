package planfft_test

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/planfft"
)

func ExampleManager_TransformReal() {
	m := planfft.NewManager(nil)
	defer m.Close()

	const n = 8

	buf := make([]float64, n)
	for i := range buf {
		buf[i] = math.Cos(2 * math.Pi * float64(i) / n)
	}

	if err := m.TransformReal(buf, n, planfft.Forward, 1, true); err != nil {
		panic(err)
	}

	// r0 r1 i1 r2 i2 r3 i3 r4
	fields := make([]string, len(buf))
	for i, v := range buf {
		fields[i] = fmt.Sprintf("%.2f", math.Abs(v))
	}
	fmt.Println(strings.Join(fields, " "))
	fmt.Println("resident:", m.Len())

	// Output:
	// 0.00 0.50 0.00 0.00 0.00 0.00 0.00 0.00
	// resident: 1
}

func ExampleManager_Stats() {
	m := planfft.NewManager(nil, planfft.WithCapacity(2))
	defer m.Close()

	buf := make([]complex128, 16)
	for range 3 {
		_ = m.TransformComplex(buf, 16, planfft.Forward, 1, false)
	}
	_ = m.TransformComplex(buf, 8, planfft.Forward, 2, false)
	_ = m.TransformComplex(buf, 4, planfft.Forward, 4, false)

	s := m.Stats()
	fmt.Println(s.Hits, s.Misses, s.Evictions, s.Resident)

	// Output:
	// 2 3 1 2
}
