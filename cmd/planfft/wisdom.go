package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cwbudde/planfft"
)

var (
	wisdomSizes string
	wisdomReal  bool

	wisdomCmd = &cobra.Command{
		Use:   "wisdom",
		Short: "Create and inspect wisdom files",
	}

	wisdomGenerateCmd = &cobra.Command{
		Use:   "generate FILE",
		Short: "Measure kernels for the given sizes and write the choices to FILE",
		Args:  cobra.ExactArgs(1),
		RunE:  runWisdomGenerate,
	}

	wisdomShowCmd = &cobra.Command{
		Use:   "show FILE",
		Short: "List the decisions stored in FILE",
		Args:  cobra.ExactArgs(1),
		RunE:  runWisdomShow,
	}
)

func init() {
	flags := wisdomGenerateCmd.Flags()
	flags.StringVar(&wisdomSizes, "sizes", "256,1024,4096,16384", "comma-separated transform lengths")
	flags.BoolVar(&wisdomReal, "real", false, "measure real transforms as well")

	wisdomCmd.AddCommand(wisdomGenerateCmd, wisdomShowCmd)
}

func runWisdomGenerate(cmd *cobra.Command, args []string) error {
	sizes, err := parseSizes(wisdomSizes)
	if err != nil {
		return err
	}

	if err := rootCmd.PersistentFlags().Set("planning", "measure"); err != nil {
		return err
	}

	m, logger, err := newManager()
	if err != nil {
		return err
	}

	defer logger.Sync() //nolint:errcheck
	defer m.Close()

	for _, n := range sizes {
		for _, dir := range []planfft.Direction{planfft.Forward, planfft.Backward} {
			if err := m.TransformComplex(make([]complex128, n), n, dir, 1, false); err != nil {
				return fmt.Errorf("size %d: %w", n, err)
			}

			if !wisdomReal {
				continue
			}

			if err := m.TransformReal(make([]float64, n), n, dir, 1, false); err != nil {
				return fmt.Errorf("size %d: %w", n, err)
			}
		}
	}

	if err := planfft.ExportWisdom(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wisdom (%d entries) written to %s\n", planfft.WisdomLen(), args[0])

	return nil
}

func runWisdomShow(cmd *cobra.Command, args []string) error {
	planfft.ClearWisdom()

	if err := planfft.ImportWisdom(args[0]); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "size\tkind\tdirection\tkernel\trecorded")

	for _, e := range planfft.DefaultWisdom().Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			humanize.Comma(int64(e.Key.Size)),
			e.Key.Kind,
			e.Key.Direction,
			e.Algorithm,
			humanize.RelTime(e.Timestamp, time.Now(), "ago", "from now"),
		)
	}

	return tw.Flush()
}
