package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
	"FinCompare/internal/services/presentation"
	"FinCompare/internal/usecase"
	"FinCompare/pkg/util"

	"github.com/google/subcommands"
)

type compareCmd struct {
	a, b   string
	ratios string
	period string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare two companies over their two latest fiscal years" }
func (*compareCmd) Usage() string {
	return `fincompare compare -a <symbol> [-b <symbol>] [-ratio key,key] [-period annual|quarter]

  Fetches both companies, aligns their ratios by fiscal year and prints the
  two most recent years with a classification for each value.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.a, "a", "", "Symbol of the first company.")
	f.StringVar(&c.b, "b", "", "Symbol of the second company.")
	f.StringVar(&c.ratios, "ratio", "", "Comma separated ratio keys (defaults to all).")
	f.StringVar(&c.period, "period", "annual", "Reporting period (annual, quarter).")
}

func (c *compareCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.a == "" && c.b == "" {
		fail("compare: at least one of -a or -b is required")
		return subcommands.ExitUsageError
	}
	keys, err := models.ParseRatioKeys(util.SplitCSV(c.ratios))
	if err != nil {
		fail("compare: %v", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fail("config: %v", err)
		return subcommands.ExitFailure
	}

	svc := newComparisonService(newProvider(cfg))
	res, err := svc.Compare(ctx, usecase.CompareInput{
		CompanyA: company(c.a),
		CompanyB: company(c.b),
		Period:   drepo.NormalizePeriod(c.period),
		Ratios:   keys,
	})
	if err != nil {
		fail("compare: %v", err)
		return subcommands.ExitFailure
	}
	writeComparison(os.Stdout, res)
	return subcommands.ExitSuccess
}

// company builds a slot from a bare symbol; the symbol doubles as the name.
func company(symbol string) *models.SelectedCompany {
	symbol = util.UpperTrim(symbol)
	if symbol == "" {
		return nil
	}
	return &models.SelectedCompany{Symbol: symbol, Name: symbol}
}

func writeComparison(w io.Writer, c *models.Comparison) {
	for _, warn := range c.Warnings {
		fmt.Fprintf(w, "warning [%s] %s: %s\n", warn.Code, warn.Symbol, warn.Detail)
	}
	if !c.Render {
		fmt.Fprintln(w, presentation.EmptyMessage)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, rc := range c.Ratios {
		fmt.Fprintf(tw, "%s (%s)\n", rc.Label, rc.Code)
		if rc.Empty != "" {
			fmt.Fprintf(tw, "  %s\n", rc.Empty)
			continue
		}
		for _, s := range rc.Series {
			cells := make([]string, 0, len(s.Points))
			for _, p := range s.Points {
				cells = append(cells, fmt.Sprintf("%d: %s [%s]", p.Year, p.Value.Display, p.Value.Class))
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.CompanyName, strings.Join(cells, "\t"), trendOf(rc.Bars, s.CompanyName))
		}
	}
	_ = tw.Flush()
}

func trendOf(bars []models.BarPair, name string) models.BarTrend {
	for _, b := range bars {
		if b.CompanyName == name {
			return b.Trend
		}
	}
	return models.TrendUnknown
}
