package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Hundred converts between percentages and fractions.
	Hundred = decimal.NewFromInt(100)
	// Twelve converts between annual and monthly figures.
	Twelve = decimal.NewFromInt(12)
)

// MonthlyRate converts an annual percentage (19.0 meaning 19%) into a monthly fraction.
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(Hundred).Div(Twelve)
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Sum adds all amounts.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// SumMap adds every value of a category map. Decimal addition is exact, so the
// result does not depend on map iteration order.
func SumMap(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

// Round rounds to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ApproxEqual reports whether a and b differ by less than tolerance.
func ApproxEqual(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(tolerance)
}

// Format renders an amount as dollars with thousands separators, e.g. "-$1,234.50".
func Format(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 && intPart[:i] != "" {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a percentage value (6.5 -> "6.50%").
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
