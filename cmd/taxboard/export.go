package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/aristath/taxboard/internal/modules/report"
)

type exportCmd struct {
	year string
	out  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the fiscal report archive of a year" }
func (*exportCmd) Usage() string {
	return `taxboard export -year <year> [-out <file.zip>] [<ledger>]

  Writes the fiscal report archive of the year, with the sales and dividends
  CSV files. The archive defaults to Informe_Fiscal_DEGIRO_<year>.zip in the
  current directory.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "year", "", "Fiscal year (required)")
	f.StringVar(&c.out, "out", "", "Archive path. Defaults to the report file name.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if !l.HasYear(c.year) {
		fmt.Fprintf(os.Stderr, "Error: unknown year %s\n", c.year)
		return subcommands.ExitUsageError
	}

	out := c.out
	if out == "" {
		out = report.FileName(c.year)
	}
	if err := writeArchive(out, func(f *os.File) error { return report.WriteYear(f, l, c.year) }); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Report written to %s\n", out)
	return subcommands.ExitSuccess
}

// writeArchive writes through a temp file so a failed export leaves nothing
// behind.
func writeArchive(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".taxboard-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
