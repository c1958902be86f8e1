package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"FinCompare/internal/domain/models"
	"FinCompare/internal/services/presentation"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

type describeCmd struct {
	raw   bool
	width int
}

func (*describeCmd) Name() string     { return "describe" }
func (*describeCmd) Synopsis() string { return "explain a ratio code" }
func (*describeCmd) Usage() string {
	return `fincompare describe [-raw] [<code>...]

  Renders the description of each ratio code (CR, QR, ROE, ROA, RT, DE, PE,
  PSR, PBR). Without arguments every ratio is described.
`
}

func (c *describeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print markdown instead of rendering it for the terminal.")
	f.IntVar(&c.width, "w", 80, "Word wrap width.")
}

func (c *describeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	codes := f.Args()
	if len(codes) == 0 {
		for _, info := range models.RatioCatalog() {
			codes = append(codes, info.Code)
		}
	}

	var render func(string) (string, error)
	if !c.raw {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(c.width))
		if err != nil {
			fail("describe: %v", err)
			return subcommands.ExitFailure
		}
		render = r.Render
	}

	if err := writeDescriptions(os.Stdout, presentation.NewDescriber(), codes, render); err != nil {
		fail("describe: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeDescriptions prints each code's markdown, passed through render when
// it is not nil.
func writeDescriptions(w io.Writer, d *presentation.Describer, codes []string, render func(string) (string, error)) error {
	for _, code := range codes {
		desc, err := d.Describe(code, false)
		if err != nil {
			return err
		}
		out := desc.Markdown
		if render != nil {
			if out, err = render(out); err != nil {
				return fmt.Errorf("render %s: %w", desc.Code, err)
			}
		}
		fmt.Fprintln(w, out)
	}
	return nil
}
