package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/aristath/taxboard/internal/modules/dashboard"
	"github.com/aristath/taxboard/internal/modules/sorting"
	"github.com/aristath/taxboard/internal/modules/taxstatus"
)

type classifyCmd struct {
	year    string
	flagged bool
}

func (*classifyCmd) Name() string     { return "classify" }
func (*classifyCmd) Synopsis() string { return "list the tax status of every sale of a year" }
func (*classifyCmd) Usage() string {
	return `taxboard classify -year <year> [-flagged] [<ledger>]

  Lists the sales of a fiscal year, oldest first, with their tax status badge
  and explanation. With -flagged, sales without a status are omitted.
`
}

func (c *classifyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "year", "", "Fiscal year (required)")
	f.BoolVar(&c.flagged, "flagged", false, "Only show sales with a tax status")
}

func (c *classifyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.year == "" {
		fmt.Fprintln(os.Stderr, "Error: -year is required.")
		return subcommands.ExitUsageError
	}

	location := ledgerArg(f)
	l, err := loadLedger(ctx, location)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", location, err)
		return subcommands.ExitFailure
	}
	yd, ok := l.Year(c.year)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %v: %s\n", dashboard.ErrUnknownYear, c.year)
		return subcommands.ExitUsageError
	}

	rows := sorting.Sort(dashboard.BuildSaleRows(yd.Sales), sorting.Config{Key: sorting.DateKey, Direction: sorting.Asc})

	var b strings.Builder
	fmt.Fprintf(&b, "# Estado fiscal de las ventas %s\n\n", c.year)
	shown := 0
	for _, r := range rows {
		if c.flagged && r.Status.Status == taxstatus.StatusNone {
			continue
		}
		shown++
		badge := r.Status.Badge
		if badge == "" {
			badge = "-"
		}
		fmt.Fprintf(&b, "- **%s** %s `%s`", r.Date, r.Product, badge)
		if r.Status.Explanation != "" {
			fmt.Fprintf(&b, "\n  %s", r.Status.Explanation)
		}
		b.WriteString("\n")
	}
	if shown == 0 {
		b.WriteString("_Sin ventas que mostrar._\n")
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
