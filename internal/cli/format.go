package cli

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// FormatAmount renders d with two decimals, thousands separators and the
// currency symbol, e.g. ¥1,234.50 or -¥32.00.
func FormatAmount(currency string, d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + currency + b.String() + "." + frac
}

// FormatSigned renders an amount with + for income and - for expense.
func FormatSigned(currency string, t model.RecordType, d decimal.Decimal) string {
	if t == model.RecordTypeExpense {
		return "-" + FormatAmount(currency, d.Abs())
	}
	return "+" + FormatAmount(currency, d.Abs())
}

// StyleSigned is FormatSigned colored by record type.
func StyleSigned(currency string, t model.RecordType, d decimal.Decimal) string {
	text := FormatSigned(currency, t, d)
	if t == model.RecordTypeExpense {
		return ExpenseStyle.Render(text)
	}
	return IncomeStyle.Render(text)
}

// Bar draws a horizontal bar filled to percent (0-100) of width cells.
func Bar(percent decimal.Decimal, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a daily series as one character per day, scaled to the
// largest value. Zero days render as a space.
func Sparkline(series []decimal.Decimal) string {
	peak := decimal.Zero
	for _, v := range series {
		if v.GreaterThan(peak) {
			peak = v
		}
	}

	var b strings.Builder
	top := decimal.NewFromInt(int64(len(sparkLevels) - 1))
	for _, v := range series {
		if !v.IsPositive() || !peak.IsPositive() {
			b.WriteRune(' ')
			continue
		}
		level := v.Mul(top).Div(peak).Round(0).IntPart()
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}
