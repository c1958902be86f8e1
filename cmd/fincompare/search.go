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

	"github.com/google/subcommands"
)

type searchCmd struct {
	limit int
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search companies by name or ticker" }
func (*searchCmd) Usage() string {
	return `fincompare search [-n <limit>] <query>

  Lists companies matching query with their symbol and exchange.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 0, "Maximum number of results (defaults to provider.search_limit).")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if strings.TrimSpace(query) == "" {
		fail("search: a query is required")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fail("config: %v", err)
		return subcommands.ExitFailure
	}
	limit := c.limit
	if limit <= 0 {
		limit = cfg.Provider.SearchLimit
	}

	res, err := newProvider(cfg).Search(ctx, query, limit)
	if err != nil {
		fail("search: %v", err)
		return subcommands.ExitFailure
	}
	writeCompanies(os.Stdout, res)
	return subcommands.ExitSuccess
}

func writeCompanies(w io.Writer, companies []models.SelectedCompany) {
	if len(companies) == 0 {
		fmt.Fprintln(w, "No companies found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tEXCHANGE\tCURRENCY")
	for _, c := range companies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Symbol, c.Name, c.ExchangeShortName, c.Currency)
	}
	_ = tw.Flush()
}
