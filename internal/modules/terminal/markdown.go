// Package terminal renders dashboard frames as markdown for the command line.
package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/dashboard"
	"github.com/aristath/taxboard/internal/modules/report"
	"github.com/aristath/taxboard/internal/modules/sorting"
	"github.com/aristath/taxboard/internal/modules/taxstatus"
)

type column struct {
	key   string
	title string
}

var (
	purchaseColumns = []column{{"date", "Fecha"}, {"product", "Producto"}, {"qty", "Cantidad"}, {"price", "Precio"}, {"total", "Total"}, {"fee", "Comisión"}}
	saleColumns     = []column{{"date", "Fecha"}, {"product", "Producto"}, {"qty", "Cantidad"}, {"sale_net", "Venta neta"}, {"cost_basis", "Coste"}, {"pnl", "Resultado"}, {"note", "Estado"}}
	dividendColumns = []column{{"date", "Fecha"}, {"product", "Producto"}, {"currency", "Divisa"}, {"gross", "Bruto"}, {"wht", "Retención"}, {"net", "Neto"}}
	holdingColumns  = []column{{"name", "Producto"}, {"isin", "ISIN"}, {"qty", "Cantidad"}, {"avg_price", "Precio medio"}, {"total_cost", "Coste total"}}
)

// Markdown is a dashboard sink whose frame can be printed as markdown.
type Markdown struct {
	*dashboard.Recorder
	money *report.Formatter
}

// NewMarkdown creates a sink formatting amounts with money.
func NewMarkdown(money *report.Formatter) *Markdown {
	return &Markdown{Recorder: dashboard.NewRecorder(), money: money}
}

// String renders the current frame.
func (m *Markdown) String() string {
	f := m.Frame()
	var b strings.Builder
	if f.Scope.IsGlobal() {
		m.writeGlobal(&b, f)
	} else {
		m.writeYear(&b, f)
	}
	return b.String()
}

func (m *Markdown) writeGlobal(b *strings.Builder, f dashboard.Frame) {
	b.WriteString("# Resumen global\n\n")
	if k := f.GlobalKPIs; k != nil {
		writeTable(b, []string{"Indicador", "Valor"}, [][]string{
			{"P&L fiscal", m.money.Format(k.TotalPnL)},
			{"P&L real (financiero)", m.money.Format(k.TotalPnLReal)},
			{"Dividendos netos", m.money.Format(k.DividendsNet)},
			{"Comisiones", m.money.Format(k.Fees)},
			{"Cartera actual", m.money.Format(k.PortfolioValue)},
		})
	}

	if len(f.YearChart) > 0 {
		b.WriteString("## Evolución anual\n\n")
		rows := make([][]string, len(f.YearChart))
		for i, p := range f.YearChart {
			rows[i] = []string{p.Year, m.money.Format(p.PnL), m.money.Format(p.Dividends), m.money.Format(p.Fees)}
		}
		writeTable(b, []string{"Año", "P&L", "Dividendos", "Comisiones"}, rows)
	}

	if c := f.Concentration; c != nil {
		b.WriteString("## Concentración\n\n")
		if c.Empty {
			fmt.Fprintf(b, "_%s_\n\n", c.Placeholder)
		} else {
			rows := make([][]string, len(c.Slices))
			for i, s := range c.Slices {
				rows[i] = []string{s.Label, m.money.Format(s.Value)}
			}
			writeTable(b, []string{"Posición", "Coste"}, rows)
		}
	}

	if t := f.GlobalHoldings; t != nil {
		b.WriteString("## Cartera actual\n\n")
		m.writeHoldings(b, *t)
	}
}

func (m *Markdown) writeYear(b *strings.Builder, f dashboard.Frame) {
	fmt.Fprintf(b, "# Ejercicio %s\n\n", f.Scope.Year)
	if k := f.YearKPIs; k != nil {
		writeTable(b, []string{"Indicador", "Valor"}, [][]string{
			{"P&L fiscal", m.money.Format(k.TotalPnL)},
			{"P&L real (financiero)", m.money.Format(k.TotalPnLReal)},
			{"Dividendos netos", m.money.Format(k.DividendsNet)},
			{"Comisiones", m.money.Format(k.Fees)},
			{"Cartera a cierre", m.money.Format(k.PortfolioValue)},
			{"Operaciones ganadoras / perdedoras", fmt.Sprintf("%d / %d", k.Stats.Wins, k.Stats.Losses)},
		})
	}

	if t := f.Purchases; t != nil {
		b.WriteString("## Compras\n\n")
		rows := make([][]string, len(t.Rows))
		for i, p := range t.Rows {
			rows[i] = []string{displayDate(p.Date), p.Product, qty(p.Qty), m.money.Format(p.Price), m.money.Format(p.Total), m.money.Format(p.Fee)}
		}
		writeTable(b, headers(purchaseColumns, t.Sort), rows)
	}

	if t := f.Sales; t != nil {
		b.WriteString("## Ventas\n\n")
		rows := make([][]string, len(t.Rows))
		var notes []string
		for i, s := range t.Rows {
			rows[i] = []string{displayDate(s.Date), s.Product, qty(s.Qty), m.money.Format(s.SaleNet),
				m.money.Format(s.CostBasis), m.pnl(s), s.Status.Badge}
			if s.Status.Explanation != "" {
				notes = append(notes, fmt.Sprintf("- **%s** (%s): %s", s.Product, displayDate(s.Date), s.Status.Explanation))
			}
		}
		writeTable(b, headers(saleColumns, t.Sort), rows)
		if len(notes) > 0 {
			b.WriteString(strings.Join(notes, "\n"))
			b.WriteString("\n\n")
		}
	}

	if t := f.Dividends; t != nil {
		b.WriteString("## Dividendos\n\n")
		rows := make([][]string, len(t.Rows))
		for i, d := range t.Rows {
			rows[i] = []string{displayDate(d.Date), d.Product, d.Currency, report.Amount(d.Gross), "-" + report.Amount(d.WHT), "+" + report.Amount(d.Net)}
		}
		writeTable(b, headers(dividendColumns, t.Sort), rows)
	}

	if t := f.Holdings; t != nil {
		b.WriteString("## Cartera a cierre\n\n")
		m.writeHoldings(b, *t)
	}

	if f.Download != "" {
		fmt.Fprintf(b, "Informe descargable: `%s`\n", f.Download)
	}
}

func (m *Markdown) writeHoldings(b *strings.Builder, t dashboard.Table[domain.Position]) {
	rows := make([][]string, len(t.Rows))
	for i, p := range t.Rows {
		rows[i] = []string{p.Name, p.ISIN, qty(p.Qty), strconv.FormatFloat(p.AvgPrice, 'f', 4, 64), m.money.Format(p.TotalCost)}
	}
	writeTable(b, headers(holdingColumns, t.Sort), rows)
}

// pnl marks an actively blocked result with strikethrough and a lapsed block
// with a warning sign.
func (m *Markdown) pnl(s dashboard.SaleRow) string {
	v := m.money.Format(s.PnL)
	switch s.Status.PnLStyle {
	case taxstatus.PnLStruck:
		return "~~" + v + "~~"
	case taxstatus.PnLCautionary:
		return "⚠ " + v
	}
	return v
}

func headers(cols []column, cfg sorting.Config) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.title
		if c.key == cfg.Key {
			out[i] += " " + arrow(cfg.Direction)
		}
	}
	return out
}

func arrow(d sorting.Direction) string {
	if d == sorting.Asc {
		return "↑"
	}
	return "↓"
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	writeRow(b, header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(b, sep)
	for _, r := range rows {
		writeRow(b, r)
	}
	b.WriteString("\n")
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func displayDate(raw string) string {
	if t, ok := domain.ParseDate(raw); ok {
		return domain.FormatDate(t)
	}
	return raw
}

func qty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
