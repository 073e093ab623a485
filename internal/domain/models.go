// Package domain provides the ledger data model consumed by the dashboard.
//
// A Ledger arrives precomputed (cost basis, FIFO matching and currency conversion
// already applied). It is immutable once decoded: a refresh replaces the whole
// value, nothing patches it in place.
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Ledger is the root snapshot: a cross-year summary plus per-year data.
type Ledger struct {
	Global GlobalSummary       `json:"global"`
	Years  map[string]YearData `json:"years"`
}

// GlobalSummary holds the cross-year aggregate figures.
type GlobalSummary struct {
	TotalPnL              float64    `json:"total_pnl"`
	TotalPnLReal          float64    `json:"total_pnl_real"`
	TotalDivsNet          float64    `json:"total_divs_net"`
	TotalFees             float64    `json:"total_fees"`
	YearsList             YearList   `json:"years_list"`
	ChartPnL              []float64  `json:"chart_pnl"`
	ChartDivs             []float64  `json:"chart_divs"`
	ChartFees             []float64  `json:"chart_fees"`
	CurrentPortfolio      []Position `json:"current_portfolio"`
	CurrentPortfolioValue float64    `json:"current_portfolio_value"`
}

// YearData holds every record set of one fiscal year.
type YearData struct {
	Purchases      []Purchase `json:"purchases"`
	Sales          []Sale     `json:"sales"`
	Dividends      []Dividend `json:"dividends"`
	Portfolio      []Position `json:"portfolio"`
	PortfolioValue float64    `json:"portfolio_value"`
	TotalPnL       float64    `json:"total_pnl"`
	TotalPnLReal   float64    `json:"total_pnl_real"`
	Fees           Fees       `json:"fees"`
	Stats          YearStats  `json:"stats"`
}

// Fees splits a year's fees by origin.
type Fees struct {
	Trading      float64 `json:"trading"`
	Connectivity float64 `json:"connectivity"`
}

// Total returns trading plus connectivity fees.
func (f Fees) Total() float64 {
	return f.Trading + f.Connectivity
}

// YearStats are counters computed upstream.
type YearStats struct {
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Blocked float64 `json:"blocked"`
}

// Purchase is a single buy operation.
type Purchase struct {
	Date    string  `json:"date"`
	Product string  `json:"product"`
	ISIN    string  `json:"isin"`
	Qty     float64 `json:"qty"`
	Price   float64 `json:"price"`
	Total   float64 `json:"total"`
	Fee     float64 `json:"fee"`
}

// Sale is a disposal with its realized result and repurchase-window facts.
type Sale struct {
	Date               string        `json:"date"`
	Product            string        `json:"product"`
	ISIN               string        `json:"isin"`
	Qty                float64       `json:"qty"`
	SaleNet            float64       `json:"sale_net"`
	CostBasis          float64       `json:"cost_basis"`
	PnL                float64       `json:"pnl"`
	Warning            bool          `json:"warning"`
	Note               Note          `json:"note"`
	Blocked            bool          `json:"blocked"`
	BlockedStatus      BlockedStatus `json:"blocked_status"`
	UnlockDate         string        `json:"unlock_date"`
	WashSaleRisk       bool          `json:"wash_sale_risk"`
	RepurchaseSafeDate string        `json:"repurchase_safe_date"`
	LossConsolidated   bool          `json:"loss_consolidated"`
}

// Dividend is a dividend payment aggregated per date and product.
type Dividend struct {
	Date     string  `json:"date"`
	Product  string  `json:"product"`
	ISIN     string  `json:"isin"`
	Currency string  `json:"currency"`
	Gross    float64 `json:"gross"`
	WHT      float64 `json:"wht"`
	Net      float64 `json:"net"`
	Desc     string  `json:"desc"`
}

// Position is an open holding in a portfolio snapshot.
type Position struct {
	Name      string  `json:"name"`
	ISIN      string  `json:"isin"`
	Qty       float64 `json:"qty"`
	AvgPrice  float64 `json:"avg_price"`
	TotalCost float64 `json:"total_cost"`
}

// BlockedStatus qualifies a blocked loss. Upstream writes "active" while the
// repurchase window is open and "expired" (older ledgers: "released") after.
type BlockedStatus string

const (
	BlockActive   BlockedStatus = "active"
	BlockExpired  BlockedStatus = "expired"
	BlockReleased BlockedStatus = "released"
)

// IsActive reports whether the block is still in force.
func (s BlockedStatus) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(BlockActive))
}

// UnmarshalJSON accepts null as the empty status.
func (s *BlockedStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("blocked_status: %w", err)
	}
	*s = BlockedStatus(raw)
	return nil
}

// YearList is the ordered list of year labels. Upstream encodes years as
// numbers; labels are kept as strings to match the keys of Ledger.Years.
type YearList []string

// UnmarshalJSON accepts both numeric and string year labels.
func (y *YearList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*y = nil
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("years_list: %w", err)
	}
	out := make(YearList, 0, len(items))
	for _, item := range items {
		var label string
		if err := json.Unmarshal(item, &label); err == nil {
			out = append(out, label)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(item, &n); err != nil {
			return fmt.Errorf("years_list: invalid year %s", string(item))
		}
		if i, err := n.Int64(); err == nil {
			out = append(out, strconv.FormatInt(i, 10))
		} else {
			out = append(out, n.String())
		}
	}
	*y = out
	return nil
}

// Year returns the data for a year label.
func (l *Ledger) Year(year string) (YearData, bool) {
	if l == nil {
		return YearData{}, false
	}
	yd, ok := l.Years[year]
	return yd, ok
}

// YearLabels returns the chronological year labels. years_list is authoritative;
// when it is missing the keys of Years are used in ascending order.
func (l *Ledger) YearLabels() []string {
	if l == nil {
		return nil
	}
	if len(l.Global.YearsList) > 0 {
		return append([]string(nil), l.Global.YearsList...)
	}
	labels := make([]string, 0, len(l.Years))
	for y := range l.Years {
		labels = append(labels, y)
	}
	sort.Strings(labels)
	return labels
}

// HasYear reports whether the ledger carries data for the year.
func (l *Ledger) HasYear(year string) bool {
	_, ok := l.Year(year)
	return ok
}

// ErrNoLedger is returned when no ledger has been loaded yet.
var ErrNoLedger = errors.New("ledger not loaded")
