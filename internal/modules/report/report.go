// Package report builds the yearly fiscal report: a zip holding the sales
// and dividends of one year as CSV files.
package report

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/dashboard"
	"github.com/aristath/taxboard/internal/modules/sorting"
	"github.com/aristath/taxboard/internal/modules/taxstatus"
)

var (
	salesHeader     = []string{"Fecha", "Producto", "ISIN", "Cantidad", "Venta Neta", "Coste", "Resultado", "Estado", "Nota", "Explicación"}
	dividendsHeader = []string{"Fecha", "Producto", "ISIN", "Divisa", "Bruto", "Retención", "Neto"}
	chronological   = sorting.Config{Key: sorting.DateKey, Direction: sorting.Asc}
)

// FileName is the download name of a year's report.
func FileName(year string) string {
	return fmt.Sprintf("Informe_Fiscal_DEGIRO_%s.zip", year)
}

// SalesFileName is the sales entry of the archive.
func SalesFileName(year string) string {
	return fmt.Sprintf("ventas_opas_%s.csv", year)
}

// DividendsFileName is the dividends entry of the archive.
func DividendsFileName(year string) string {
	return fmt.Sprintf("dividendos_%s.csv", year)
}

// WriteYear writes the report archive of year to w.
func WriteYear(w io.Writer, l *domain.Ledger, year string) error {
	if l == nil {
		return domain.ErrNoLedger
	}
	d, ok := l.Year(year)
	if !ok {
		return fmt.Errorf("%w: %q", dashboard.ErrUnknownYear, year)
	}

	zw := zip.NewWriter(w)
	sales, err := zw.Create(SalesFileName(year))
	if err != nil {
		return fmt.Errorf("failed to add sales file: %w", err)
	}
	if err := WriteSales(sales, d.Sales); err != nil {
		return err
	}
	divs, err := zw.Create(DividendsFileName(year))
	if err != nil {
		return fmt.Errorf("failed to add dividends file: %w", err)
	}
	if err := WriteDividends(divs, d.Dividends); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish report archive: %w", err)
	}
	return nil
}

// WriteSales writes sales in date order with their tax status.
func WriteSales(w io.Writer, sales []domain.Sale) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(salesHeader); err != nil {
		return fmt.Errorf("failed to write sales header: %w", err)
	}
	for _, s := range sorting.Sort(sales, chronological) {
		a := taxstatus.Classify(s)
		record := []string{
			displayDate(s.Date),
			s.Product,
			s.ISIN,
			quantity(s.Qty),
			Amount(s.SaleNet),
			Amount(s.CostBasis),
			Amount(s.PnL),
			a.Badge,
			s.Note.Text,
			a.Explanation,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write sale: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDividends writes dividends in date order.
func WriteDividends(w io.Writer, divs []domain.Dividend) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dividendsHeader); err != nil {
		return fmt.Errorf("failed to write dividends header: %w", err)
	}
	for _, d := range sorting.Sort(divs, chronological) {
		record := []string{
			displayDate(d.Date),
			d.Product,
			d.ISIN,
			d.Currency,
			Amount(d.Gross),
			Amount(d.WHT),
			Amount(d.Net),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write dividend: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// displayDate normalizes parseable dates to DD-MM-YYYY and keeps the rest.
func displayDate(raw string) string {
	if t, ok := domain.ParseDate(raw); ok {
		return domain.FormatDate(t)
	}
	return raw
}

func quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
