package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/aristath/taxboard/internal/modules/dashboard"
	"github.com/aristath/taxboard/internal/modules/report"
	"github.com/aristath/taxboard/internal/modules/terminal"
)

type viewCmd struct {
	year  string
	sorts sortFlags
	raw   bool
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "print the dashboard for all years or one year" }
func (*viewCmd) Usage() string {
	return `taxboard view [-year <year>] [-sort <view:key>]... [-raw] [<ledger>]

  Prints the global dashboard, or the dashboard of one fiscal year.

  -sort toggles the sort of a table the way clicking its header does. It may be
  repeated: "-sort sales:pnl -sort sales:pnl" sorts sales by pnl ascending.
  Views are buys, sales, divs, port and global-port.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "year", "", "Fiscal year to show. Empty shows the global summary.")
	f.Var(&c.sorts, "sort", "Toggle the sort of a table, as view:key. Repeatable.")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal styling")
}

func (c *viewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	location := ledgerArg(f)
	l, err := loadLedger(ctx, location)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", location, err)
		return subcommands.ExitFailure
	}

	md := terminal.NewMarkdown(report.NewFormatter(*currencyCode))
	ctrl := dashboard.NewController(l, md, logger())

	scope := dashboard.Global()
	if c.year != "" {
		scope = dashboard.Year(c.year)
	}
	if err := ctrl.SelectScope(scope); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	for _, s := range c.sorts {
		view, key, err := parseSort(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if _, err := ctrl.ToggleSort(view, key); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	if c.raw {
		fmt.Print(md.String())
		return subcommands.ExitSuccess
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
