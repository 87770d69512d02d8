package converter

import "github.com/shopspring/decimal"

// FormatCents renders an amount in cents as a fixed two-decimal string, e.g. 15050 -> "150.50".
func FormatCents(cents int) string {
	return decimal.New(int64(cents), -2).StringFixed(2)
}
