package dashboard

import (
	"slices"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"

	"github.com/aristath/taxboard/internal/domain"
	"github.com/aristath/taxboard/internal/modules/sorting"
	"github.com/aristath/taxboard/internal/modules/taxstatus"
)

const (
	// ConcentrationLimit is how many holdings the concentration chart shows.
	ConcentrationLimit = 10
	// EmptyPortfolioPlaceholder replaces the concentration chart when no
	// holding has a positive cost.
	EmptyPortfolioPlaceholder = "Cartera vacía o cerrada"
)

// YearPicker is the state of the year selection control.
type YearPicker struct {
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
}

// GlobalKPIs are the headline figures of the global scope.
type GlobalKPIs struct {
	TotalPnL       float64 `json:"total_pnl"`
	TotalPnLReal   float64 `json:"total_pnl_real"`
	DividendsNet   float64 `json:"dividends_net"`
	Fees           float64 `json:"fees"`
	PortfolioValue float64 `json:"portfolio_value"`
}

// YearKPIs are the headline figures of one fiscal year.
type YearKPIs struct {
	Year           string          `json:"year"`
	TotalPnL       float64         `json:"total_pnl"`
	TotalPnLReal   float64         `json:"total_pnl_real"`
	DividendsNet   float64         `json:"dividends_net"`
	Fees           float64         `json:"fees"`
	PortfolioValue float64         `json:"portfolio_value"`
	Stats          domain.YearStats `json:"stats"`
}

// YearPoint is one category of the year-over-year chart.
type YearPoint struct {
	Year      string  `json:"year"`
	PnL       float64 `json:"pnl"`
	Dividends float64 `json:"dividends"`
	Fees      float64 `json:"fees"`
}

// Slice is one wedge of the concentration chart.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Concentration is the top holdings by cost, or the empty marker.
type Concentration struct {
	Slices      []Slice `json:"slices,omitempty"`
	Empty       bool    `json:"empty"`
	Placeholder string  `json:"placeholder,omitempty"`
}

// Table is the ordered content of one sortable view.
type Table[T any] struct {
	View sorting.ViewID `json:"view"`
	Sort sorting.Config `json:"sort"`
	Rows []T            `json:"rows"`
}

// SaleRow is a sale with its tax status.
type SaleRow struct {
	domain.Sale
	Status taxstatus.Annotation `json:"status"`
}

// BuildYearPicker lists the ledger's years newest first.
func BuildYearPicker(l *domain.Ledger, selected string) YearPicker {
	opts := l.YearLabels()
	slices.Sort(opts)
	slices.Reverse(opts)
	return YearPicker{Options: opts, Selected: selected}
}

// BuildGlobalKPIs copies the global aggregate figures.
func BuildGlobalKPIs(g domain.GlobalSummary) GlobalKPIs {
	return GlobalKPIs{
		TotalPnL:       g.TotalPnL,
		TotalPnLReal:   g.TotalPnLReal,
		DividendsNet:   g.TotalDivsNet,
		Fees:           g.TotalFees,
		PortfolioValue: g.CurrentPortfolioValue,
	}
}

// BuildYearKPIs derives the figures of a year. The dividend total is summed
// from the rows each time.
func BuildYearKPIs(year string, d domain.YearData) YearKPIs {
	return YearKPIs{
		Year:           year,
		TotalPnL:       d.TotalPnL,
		TotalPnLReal:   d.TotalPnLReal,
		DividendsNet:   DividendNetTotal(d.Dividends),
		Fees:           floats.Sum([]float64{d.Fees.Trading, d.Fees.Connectivity}),
		PortfolioValue: d.PortfolioValue,
		Stats:          d.Stats,
	}
}

// DividendNetTotal sums the net amount of every dividend row.
func DividendNetTotal(divs []domain.Dividend) float64 {
	nets := make([]float64, len(divs))
	for i, d := range divs {
		nets[i] = d.Net
	}
	return floats.Sum(nets)
}

// BuildYearChart aligns the global chart series by year label. Missing values
// are zero.
func BuildYearChart(l *domain.Ledger) []YearPoint {
	labels := l.YearLabels()
	points := make([]YearPoint, len(labels))
	for i, y := range labels {
		points[i] = YearPoint{
			Year:      y,
			PnL:       at(l.Global.ChartPnL, i),
			Dividends: at(l.Global.ChartDivs, i),
			Fees:      at(l.Global.ChartFees, i),
		}
	}
	return points
}

func at(series []float64, i int) float64 {
	if i < len(series) {
		return series[i]
	}
	return 0
}

// BuildConcentration keeps holdings with positive cost, orders them by cost
// descending and takes the first ConcentrationLimit.
func BuildConcentration(positions []domain.Position) Concentration {
	valid := make([]domain.Position, 0, len(positions))
	for _, p := range positions {
		if p.TotalCost > 0 {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return Concentration{Empty: true, Placeholder: EmptyPortfolioPlaceholder}
	}
	valid = sorting.Sort(valid, sorting.Config{Key: "total_cost", Direction: sorting.Desc})
	if len(valid) > ConcentrationLimit {
		valid = valid[:ConcentrationLimit]
	}
	out := make([]Slice, len(valid))
	for i, p := range valid {
		out[i] = Slice{Label: p.Name, Value: decimal.NewFromFloat(p.TotalCost).Round(2).InexactFloat64()}
	}
	return Concentration{Slices: out}
}

// BuildSaleRows classifies each sale, preserving order.
func BuildSaleRows(sales []domain.Sale) []SaleRow {
	rows := make([]SaleRow, len(sales))
	for i, s := range sales {
		rows[i] = SaleRow{Sale: s, Status: taxstatus.Classify(s)}
	}
	return rows
}

func buildTable[T sorting.Record](view sorting.ViewID, cfg sorting.Config, records []T) Table[T] {
	return Table[T]{View: view, Sort: cfg, Rows: sorting.Sort(records, cfg)}
}
