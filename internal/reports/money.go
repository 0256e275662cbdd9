package reports

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var importePrinter = message.NewPrinter(language.German)

// Truncar2 truncates a monetary value to two decimals without rounding,
// so displayed totals never exceed what was actually recorded.
func Truncar2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Truncate(2).Float64()
	return f
}

// FormatearImporte renders a monetary value the way the dashboard shows
// it: truncated to two decimals, comma decimal separator, dot thousands
// separator ("1.234,50").
func FormatearImporte(v float64) string {
	return importePrinter.Sprintf("%v", number.Decimal(
		Truncar2(v),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
