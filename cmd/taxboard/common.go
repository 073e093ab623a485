package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/ledger"
	"github.com/aristath/taxboard/internal/modules/sorting"
	"github.com/aristath/taxboard/internal/modules/terminal"
)

var (
	ledgerLocation = flag.String("ledger", envOr("LEDGER_SOURCE", "data/ledger.json"), "Default ledger location: file path, http(s) URL or s3://bucket/key")
	currencyCode   = flag.String("currency", envOr("CURRENCY", "EUR"), "Currency used to format amounts")
	styleName      = flag.String("style", terminal.StyleAuto, "Output style: auto, dark, light, notty or a style file")
	verbose        = flag.Bool("v", false, "Log ledger loading to stderr")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logger() zerolog.Logger {
	if !*verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// ledgerArg returns the ledger location: the first positional argument, or the
// -ledger flag.
func ledgerArg(f *flag.FlagSet) string {
	if f.NArg() > 0 {
		return f.Arg(0)
	}
	return *ledgerLocation
}

// loadLedger fetches the ledger at location. S3 credentials are taken from the
// default AWS chain.
func loadLedger(ctx context.Context, location string) (*domain.Ledger, error) {
	src, err := ledger.NewSource(ctx, location, ledger.Options{})
	if err != nil {
		return nil, err
	}
	log := logger()
	log.Debug().Str("source", src.Name()).Msg("Fetching ledger")
	return src.Fetch(ctx)
}

// parseSort reads a "view:key" pair.
func parseSort(s string) (sorting.ViewID, string, error) {
	view, key, ok := strings.Cut(s, ":")
	if !ok || view == "" || key == "" {
		return "", "", fmt.Errorf("invalid sort %q, expected view:key", s)
	}
	id := sorting.ViewID(view)
	for _, v := range sorting.Views {
		if v == id {
			return id, key, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", sorting.ErrUnknownView, view)
}

// sortFlags collects repeated -sort values.
type sortFlags []string

func (s *sortFlags) String() string { return strings.Join(*s, ",") }

func (s *sortFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func printMarkdown(md string) {
	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	out, err := terminal.Render(md, *styleName, width)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot render markdown: %v\n", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
