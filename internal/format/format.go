// Package format renders KPI values for display: localized currency,
// percentages, and grouped integers, with "N/A" for metrics the backend
// reported as null.
package format

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown for any metric the backend could not compute.
const NotAvailable = "N/A"

var printer = message.NewPrinter(language.EuropeanSpanish)

// Currency formats an amount in euros, e.g. "1.234,50 €".
func Currency(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return printer.Sprintf("%v", currency.Symbol(currency.EUR.Amount(*v)))
}

// Percent formats a percentage value (12.3 → "12,3 %") with the given number
// of fraction digits. The input is the percentage itself, not a ratio.
func Percent(v *float64, fractionDigits int) string {
	if v == nil {
		return NotAvailable
	}
	return printer.Sprintf("%.*f %%", fractionDigits, *v)
}

// Count formats an integer with digit grouping, e.g. "12.345".
func Count(v *int64) string {
	if v == nil {
		return NotAvailable
	}
	return printer.Sprintf("%d", *v)
}

// Amount is Currency for non-nullable values.
func Amount(v float64) string {
	return Currency(&v)
}
