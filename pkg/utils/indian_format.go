// Package utils provides formatting helpers shared by the site templates
// and the command line.
package utils

import (
	"fmt"
	"math"
)

// FormatINR formats a number in Indian Rupee format (₹12,34,567.89).
// Uses the Indian numbering system: last 3 digits, then groups of 2.
func FormatINR(amount float64) string {
	negative := amount < 0
	amount = math.Round(math.Abs(amount)*100) / 100

	formatted := formatIndianNumber(int64(amount)) + fmt.Sprintf("%.2f", amount-math.Trunc(amount))[1:]

	if negative {
		return "-₹" + formatted
	}
	return "₹" + formatted
}

// FormatSignedINR formats a price change with an explicit sign, e.g. "+₹45.25".
func FormatSignedINR(amount float64) string {
	if amount >= 0 {
		return "+" + FormatINR(amount)
	}
	return FormatINR(amount)
}

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatNumber formats an integer with Indian digit grouping.
// e.g., 1250000 → "12,50,000"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + formatIndianNumber(-n)
	}
	return formatIndianNumber(n)
}

// formatIndianNumber formats an integer with Indian grouping (last 3, then 2s).
func formatIndianNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	result := s[len(s)-3:]
	remaining := s[:len(s)-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	return remaining + "," + result
}
