package dashboard

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/taxboard/internal/domain"
)

func testLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func testLedger() *domain.Ledger {
	return &domain.Ledger{
		Global: domain.GlobalSummary{
			TotalPnL:     1500,
			TotalPnLReal: 1400,
			TotalDivsNet: 320.5,
			TotalFees:    42,
			YearsList:    domain.YearList{"2022", "2023", "2024"},
			ChartPnL:     []float64{-200, 900, 800},
			ChartDivs:    []float64{50, 120.5, 150},
			ChartFees:    []float64{10, 12, 20},
			CurrentPortfolio: []domain.Position{
				{Name: "Beta", ISIN: "B1", Qty: 5, AvgPrice: 20, TotalCost: 100},
				{Name: "Alpha", ISIN: "A1", Qty: 10, AvgPrice: 30, TotalCost: 300.456},
				{Name: "Closed", ISIN: "C1", Qty: 0, TotalCost: 0},
			},
			CurrentPortfolioValue: 400.46,
		},
		Years: map[string]domain.YearData{
			"2022": {},
			"2023": {
				Purchases: []domain.Purchase{
					{Date: "10-02-2023", Product: "Alpha", Total: 300},
					{Date: "05-01-2023", Product: "Beta", Total: 100},
				},
				Sales: []domain.Sale{
					{Date: "15-03-2023", Product: "Gamma", PnL: -80, Blocked: true, BlockedStatus: domain.BlockActive, UnlockDate: "15-05-2023"},
					{Date: "20-06-2023", Product: "Delta", PnL: 200},
					{Date: "01-09-2023", Product: "Eps", PnL: -30, LossConsolidated: true, RepurchaseSafeDate: "01-11-2023"},
				},
				Dividends: []domain.Dividend{
					{Date: "01-04-2023", Product: "Alpha", Net: 10.25},
					{Date: "01-07-2023", Product: "Beta", Net: 100},
					{Date: "01-10-2023", Product: "Alpha", Net: 10.25},
				},
				Portfolio: []domain.Position{
					{Name: "Alpha", TotalCost: 300},
					{Name: "Beta", TotalCost: 100},
				},
				PortfolioValue: 400,
				TotalPnL:       90,
				TotalPnLReal:   170,
				Fees:           domain.Fees{Trading: 6, Connectivity: 2.5},
				Stats:          domain.YearStats{Wins: 1, Losses: 2},
			},
			"2024": {},
		},
	}
}

func manyPositions(n int) []domain.Position {
	out := make([]domain.Position, n)
	for i := range out {
		out[i] = domain.Position{Name: fmt.Sprintf("P%02d", i), TotalCost: float64((i*7)%n + 1)}
	}
	return out
}
