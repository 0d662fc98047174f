package pricing

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ApplyPercent returns price × (1 − percent/100)
func ApplyPercent(price decimal.Decimal, percent float64) decimal.Decimal {
	factor := one.Sub(decimal.NewFromFloat(percent).Div(hundred))
	return price.Mul(factor)
}

// RoundCents rounds a money amount to 2 decimals and returns the plain number stored in snapshots
func RoundCents(amount decimal.Decimal) float64 {
	return amount.Round(2).InexactFloat64()
}

// Money converts a stored price into a decimal
func Money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}
