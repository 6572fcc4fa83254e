package calculation

import "github.com/shopspring/decimal"

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)
