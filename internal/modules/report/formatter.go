package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a formatter is given an unknown code.
const DefaultCurrency = money.EUR

// Formatter renders amounts as currency strings.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter returns a formatter for an ISO 4217 code, falling back to
// DefaultCurrency for unknown codes.
func NewFormatter(code string) *Formatter {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	return &Formatter{currency: cur}
}

// Code returns the currency code.
func (f *Formatter) Code() string {
	return f.currency.Code
}

// Format renders amount rounded to the currency's minor unit.
func (f *Formatter) Format(amount float64) string {
	minor := decimal.NewFromFloat(amount).Round(int32(f.currency.Fraction)).Shift(int32(f.currency.Fraction))
	return f.currency.Formatter().Format(minor.IntPart())
}

// Amount renders a plain two-decimal number.
func Amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
