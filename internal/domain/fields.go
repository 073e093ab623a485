package domain

// Field lookups by JSON key, used by the sort engine. A missing key reports
// ok=false. Dates are returned as their raw string.

// Field returns the purchase field named key.
func (p Purchase) Field(key string) (any, bool) {
	switch key {
	case "date":
		return p.Date, true
	case "product":
		return p.Product, true
	case "isin":
		return p.ISIN, true
	case "qty":
		return p.Qty, true
	case "price":
		return p.Price, true
	case "total":
		return p.Total, true
	case "fee":
		return p.Fee, true
	}
	return nil, false
}

// Field returns the sale field named key.
func (s Sale) Field(key string) (any, bool) {
	switch key {
	case "date":
		return s.Date, true
	case "product":
		return s.Product, true
	case "isin":
		return s.ISIN, true
	case "qty":
		return s.Qty, true
	case "sale_net":
		return s.SaleNet, true
	case "cost_basis":
		return s.CostBasis, true
	case "pnl":
		return s.PnL, true
	case "note":
		return s.Note.Text, true
	case "unlock_date":
		return s.UnlockDate, true
	case "repurchase_safe_date":
		return s.RepurchaseSafeDate, true
	}
	return nil, false
}

// Field returns the dividend field named key.
func (d Dividend) Field(key string) (any, bool) {
	switch key {
	case "date":
		return d.Date, true
	case "product":
		return d.Product, true
	case "isin":
		return d.ISIN, true
	case "currency":
		return d.Currency, true
	case "gross":
		return d.Gross, true
	case "wht":
		return d.WHT, true
	case "net":
		return d.Net, true
	case "desc":
		return d.Desc, true
	}
	return nil, false
}

// Field returns the position field named key.
func (p Position) Field(key string) (any, bool) {
	switch key {
	case "name":
		return p.Name, true
	case "isin":
		return p.ISIN, true
	case "qty":
		return p.Qty, true
	case "avg_price":
		return p.AvgPrice, true
	case "total_cost":
		return p.TotalCost, true
	}
	return nil, false
}
