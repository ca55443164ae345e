package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cwbudde/planfft"
)

var (
	benchSizes  string
	benchIters  int
	benchReal   bool
	benchSeed   int64
	benchWisdom string

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Compare the first, plan-building call with cached calls",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
)

func init() {
	flags := benchCmd.Flags()
	flags.StringVar(&benchSizes, "sizes", "64,1024,4096,16384", "comma-separated transform lengths")
	flags.IntVar(&benchIters, "iters", 200, "cached iterations per size")
	flags.BoolVar(&benchReal, "real", false, "benchmark real transforms")
	flags.Int64Var(&benchSeed, "seed", 1, "rng seed")
	flags.StringVar(&benchWisdom, "wisdom", "", "export wisdom to file afterwards")
}

func runBench(cmd *cobra.Command, _ []string) error {
	sizes, err := parseSizes(benchSizes)
	if err != nil {
		return err
	}

	if benchIters < 1 {
		return fmt.Errorf("iters must be at least 1, got %d", benchIters)
	}

	m, logger, err := newManager()
	if err != nil {
		return err
	}

	defer logger.Sync() //nolint:errcheck
	defer m.Close()

	rnd := rand.New(rand.NewSource(benchSeed))

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "size\tkernel\tfirst call\tcached/op\tspeedup\tscratch\t")

	for _, n := range sizes {
		run := benchInput(rnd, n)

		start := time.Now()
		if err := run(m); err != nil {
			return fmt.Errorf("size %d: %w", n, err)
		}

		first := time.Since(start)

		start = time.Now()
		for range benchIters {
			if err := run(m); err != nil {
				return fmt.Errorf("size %d: %w", n, err)
			}
		}

		cached := time.Since(start) / time.Duration(benchIters)

		keys := m.Keys()
		entry, err := m.Get(keys[len(keys)-1])
		if err != nil {
			return err
		}

		speedup := float64(first) / float64(max(cached, 1))

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1fx\t%s\t\n",
			humanize.Comma(int64(n)),
			entry.Algorithm(),
			first.Round(time.Microsecond),
			cached.Round(100*time.Nanosecond),
			speedup,
			humanize.IBytes(uint64(entry.ScratchBytes())),
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	stats := m.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s hits, %s misses, %s evictions, %s scratch resident\n",
		humanize.Comma(int64(stats.Hits)),
		humanize.Comma(int64(stats.Misses)),
		humanize.Comma(int64(stats.Evictions)),
		humanize.IBytes(uint64(stats.ScratchBytes)),
	)

	if benchWisdom != "" {
		if err := planfft.ExportWisdom(benchWisdom); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wisdom (%d entries) written to %s\n", planfft.WisdomLen(), benchWisdom)
	}

	return nil
}

// benchInput returns a forward transform of random data of length n.
func benchInput(rnd *rand.Rand, n int) func(*planfft.Manager) error {
	if benchReal {
		buf := make([]float64, n)
		for i := range buf {
			buf[i] = rnd.Float64()
		}

		return func(m *planfft.Manager) error {
			return m.TransformReal(buf, n, planfft.Forward, 1, true)
		}
	}

	buf := make([]complex128, n)
	for i := range buf {
		buf[i] = complex(rnd.Float64(), rnd.Float64())
	}

	return func(m *planfft.Manager) error {
		return m.TransformComplex(buf, n, planfft.Forward, 1, true)
	}
}

func parseSizes(list string) ([]int, error) {
	parts := strings.Split(list, ",")

	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid size %q", part)
		}

		out = append(out, n)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes in %q", list)
	}

	return out, nil
}
