package admin

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// pricePrinter formats amounts the way the restaurant's receipts do.
var pricePrinter = message.NewPrinter(language.French)

// formatEUR renders a backend amount for display. Totals are never
// recomputed for persistence, only formatted.
func formatEUR(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return pricePrinter.Sprintf("%v", currency.Symbol(currency.EUR.Amount(value)))
}

// formatCount renders a counter with locale grouping.
func formatCount(n int) string {
	return pricePrinter.Sprintf("%d", n)
}
