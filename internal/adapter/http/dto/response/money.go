package response

import "github.com/shopspring/decimal"

// formatMoney renders amounts with two decimals, as strings, so clients never see
// binary float artifacts.
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
