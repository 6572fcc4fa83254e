package output

import (
	"strconv"
	"time"

	"github.com/rpgo/cashflow-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals and thousands separators.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return money.FormatPercent(amount) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func dateString(t time.Time) string { return t.Format("2006-01-02") }
