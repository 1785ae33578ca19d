package store

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fraction digits money values carry (numeric(6,2)).
const MoneyPlaces = 2

// TaxMultiplier is parsed from a string so it is exactly 1.1, not the nearest float64.
var TaxMultiplier = decimal.RequireFromString("1.1")

// PriceWithTax applies the fixed tax markup and rounds half away from zero to cents.
func PriceWithTax(price decimal.Decimal) decimal.Decimal {
	return price.Mul(TaxMultiplier).Round(MoneyPlaces)
}
