package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLedger = `{
  "global": {
    "total_pnl": 120.5,
    "total_pnl_real": 80.25,
    "total_divs_net": 10.0,
    "total_fees": 3.5,
    "years_list": [2023, 2024],
    "chart_pnl": [100.0, 20.5],
    "chart_divs": [10.0, 0.0],
    "chart_fees": [2.0, 1.5],
    "current_portfolio": [
      {"name": "PRODUCT_A", "isin": "ISIN_A", "qty": 10.0, "avg_price": 10.0, "total_cost": 100.0}
    ],
    "current_portfolio_value": 100.0
  },
  "years": {
    "2023": {
      "sales": [
        {
          "date": "Thu, 05 Jan 2023 00:00:00 GMT",
          "product": "PRODUCT_B", "isin": "ISIN_B", "qty": 5.0,
          "sale_net": 40.0, "cost_basis": 60.0, "pnl": -20.0,
          "warning": false, "note": "⚠️ BLOQ (2 Meses)",
          "blocked": true, "blocked_status": "released", "unlock_date": "08-03-2023",
          "wash_sale_risk": false, "repurchase_safe_date": "08-03-2023",
          "loss_consolidated": false
        },
        {
          "date": "10-02-2023",
          "product": "PRODUCT_C", "isin": "ISIN_C", "qty": 1.0,
          "sale_net": 15.0, "cost_basis": 10.0, "pnl": 5.0,
          "warning": false, "note": "",
          "blocked": false, "blocked_status": null, "unlock_date": null,
          "wash_sale_risk": false, "repurchase_safe_date": null,
          "loss_consolidated": false
        }
      ],
      "purchases": [
        {"date": "05-01-2023", "product": "PRODUCT_A", "isin": "ISIN_A", "qty": 10.0, "price": 10.0, "total": 100.0, "fee": -1.0}
      ],
      "dividends": [
        {"date": "Mon, 20 Mar 2023 00:00:00 GMT", "product": "PRODUCT_A", "isin": "ISIN_A", "currency": "EUR", "gross": 10.0, "wht": 0.0, "net": 10.0, "desc": "Dividendo"}
      ],
      "portfolio": [
        {"name": "PRODUCT_A", "isin": "ISIN_A", "qty": 10.0, "avg_price": 10.0, "total_cost": 100.0}
      ],
      "portfolio_value": 100.0,
      "total_pnl": 100.0,
      "total_pnl_real": 80.0,
      "fees": {"trading": 1.0, "connectivity": 1.0},
      "stats": {"wins": 1, "losses": 1, "blocked": 20.0}
    }
  }
}`

func TestLedger_DecodeUpstreamDocument(t *testing.T) {
	var l Ledger
	require.NoError(t, json.Unmarshal([]byte(sampleLedger), &l))

	assert.Equal(t, YearList{"2023", "2024"}, l.Global.YearsList)
	assert.Equal(t, 120.5, l.Global.TotalPnL)
	require.Len(t, l.Global.CurrentPortfolio, 1)
	assert.Equal(t, 100.0, l.Global.CurrentPortfolio[0].TotalCost)

	yd, ok := l.Year("2023")
	require.True(t, ok)
	require.Len(t, yd.Sales, 2)

	blocked := yd.Sales[0]
	assert.True(t, blocked.Blocked)
	assert.Equal(t, BlockReleased, blocked.BlockedStatus)
	assert.False(t, blocked.BlockedStatus.IsActive())
	assert.Equal(t, NoteBlocked, blocked.Note.Code)
	assert.Equal(t, "08-03-2023", blocked.UnlockDate)

	plain := yd.Sales[1]
	assert.Equal(t, BlockedStatus(""), plain.BlockedStatus)
	assert.Equal(t, "", plain.UnlockDate)
	assert.True(t, plain.Note.IsZero())

	assert.Equal(t, 2.0, yd.Fees.Total())
	assert.Equal(t, 1, yd.Stats.Wins)
}

func TestLedger_YearLabels(t *testing.T) {
	t.Run("years_list is authoritative", func(t *testing.T) {
		l := &Ledger{
			Global: GlobalSummary{YearsList: YearList{"2022", "2024"}},
			Years:  map[string]YearData{"2024": {}, "2022": {}, "2023": {}},
		}
		assert.Equal(t, []string{"2022", "2024"}, l.YearLabels())
	})

	t.Run("falls back to sorted keys", func(t *testing.T) {
		l := &Ledger{Years: map[string]YearData{"2024": {}, "2022": {}}}
		assert.Equal(t, []string{"2022", "2024"}, l.YearLabels())
	})

	t.Run("nil ledger", func(t *testing.T) {
		var l *Ledger
		assert.Nil(t, l.YearLabels())
		assert.False(t, l.HasYear("2024"))
	})
}

func TestYearList_RejectsGarbage(t *testing.T) {
	var y YearList
	assert.Error(t, json.Unmarshal([]byte(`[true]`), &y))
	assert.NoError(t, json.Unmarshal([]byte(`["2023", 2024]`), &y))
	assert.Equal(t, YearList{"2023", "2024"}, y)
}

func TestBlockedStatus_IsActive(t *testing.T) {
	assert.True(t, BlockActive.IsActive())
	assert.True(t, BlockedStatus(" Active ").IsActive())
	assert.False(t, BlockExpired.IsActive())
	assert.False(t, BlockReleased.IsActive())
	assert.False(t, BlockedStatus("").IsActive())
}

func TestFields_MissingKey(t *testing.T) {
	_, ok := Sale{}.Field("does_not_exist")
	assert.False(t, ok)

	v, ok := Position{TotalCost: 42}.Field("total_cost")
	require.True(t, ok)
	assert.Equal(t, 42.0, v)

	v, ok = Sale{Note: ParseNote("OPA/FUSIÓN")}.Field("note")
	require.True(t, ok)
	assert.Equal(t, "OPA/FUSIÓN", v)
}
