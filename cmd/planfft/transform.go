package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/planfft"
)

var (
	transformComplex   bool
	transformInverse   bool
	transformNormalize bool
	transformBatch     int

	transformCmd = &cobra.Command{
		Use:   "transform [VALUE...]",
		Short: "Transform numbers given as arguments or on stdin",
		Long: `Transform reads whitespace separated numbers and prints the result one
value per line. Complex input is interleaved real and imaginary parts.
Real output uses the packed layout r0 r1 i1 r2 i2 ... The values are split
into --batch transforms of equal length.`,
		RunE: runTransform,
	}
)

func init() {
	flags := transformCmd.Flags()
	flags.BoolVar(&transformComplex, "complex", false, "treat input as interleaved complex values")
	flags.BoolVarP(&transformInverse, "inverse", "i", false, "run the backward transform")
	flags.BoolVarP(&transformNormalize, "normalize", "n", false, "scale the result by 1/n")
	flags.IntVarP(&transformBatch, "batch", "b", 1, "number of consecutive transforms")
}

func runTransform(cmd *cobra.Command, args []string) error {
	var (
		values []float64
		err    error
	)

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		values, err = readValues(cmd.InOrStdin())
	} else {
		values, err = parseValues(args)
	}

	if err != nil {
		return err
	}

	if transformBatch < 1 {
		return fmt.Errorf("batch must be at least 1, got %d", transformBatch)
	}

	per := 1
	if transformComplex {
		per = 2
	}

	if len(values) == 0 || len(values)%(per*transformBatch) != 0 {
		return fmt.Errorf("%d values do not split into %d transforms", len(values), transformBatch)
	}

	n := len(values) / (per * transformBatch)

	m, logger, err := newManager()
	if err != nil {
		return err
	}

	defer logger.Sync() //nolint:errcheck
	defer m.Close()

	dir := planfft.Forward
	if transformInverse {
		dir = planfft.Backward
	}

	out := cmd.OutOrStdout()

	if transformComplex {
		buf := make([]complex128, len(values)/2)
		for i := range buf {
			buf[i] = complex(values[2*i], values[2*i+1])
		}

		if err := m.TransformComplex(buf, n, dir, transformBatch, transformNormalize); err != nil {
			return err
		}

		for _, v := range buf {
			fmt.Fprintf(out, "%g %g\n", real(v), imag(v))
		}

		return nil
	}

	if err := m.TransformReal(values, n, dir, transformBatch, transformNormalize); err != nil {
		return err
	}

	for _, v := range values {
		fmt.Fprintf(out, "%g\n", v)
	}

	return nil
}

func readValues(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return parseValues(words)
}

func parseValues(words []string) ([]float64, error) {
	out := make([]float64, 0, len(words))

	for _, w := range words {
		for _, field := range strings.FieldsFunc(w, func(r rune) bool { return r == ',' }) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %q: %w", field, err)
			}

			out = append(out, v)
		}
	}

	return out, nil
}
