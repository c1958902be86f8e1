package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
	"FinCompare/internal/services/comparison"
	"FinCompare/internal/services/presentation"

	"github.com/google/subcommands"
)

type ratiosCmd struct {
	period string
}

func (*ratiosCmd) Name() string     { return "ratios" }
func (*ratiosCmd) Synopsis() string { return "print the ratio history of one company" }
func (*ratiosCmd) Usage() string {
	return `fincompare ratios [-period annual|quarter] <symbol>

  Prints every fiscal period the provider returns for symbol, one row per
  period and one column per ratio code.
`
}

func (c *ratiosCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "annual", "Reporting period (annual, quarter).")
}

func (c *ratiosCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fail("ratios: exactly one symbol is required")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fail("config: %v", err)
		return subcommands.ExitFailure
	}

	snaps, err := newProvider(cfg).Ratios(ctx, f.Arg(0), drepo.NormalizePeriod(c.period))
	if err != nil {
		fail("ratios: %v", err)
		return subcommands.ExitFailure
	}
	writeSnapshots(os.Stdout, snaps)
	return subcommands.ExitSuccess
}

func writeSnapshots(w io.Writer, snaps []models.RatioSnapshot) {
	if len(snaps) == 0 {
		fmt.Fprintln(w, "No ratio data.")
		return
	}
	keys := models.AllRatioKeys()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "YEAR\tPERIOD\t")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t", k.Code())
	}
	fmt.Fprintln(tw)
	for i := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t", snaps[i].CalendarYear, snaps[i].Period)
		for _, k := range keys {
			fmt.Fprintf(tw, "%s\t", presentation.FormatNumber(comparison.Coerce(k.Field(&snaps[i]))))
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
}
