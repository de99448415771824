package util

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders a rupee amount with grouped digits, or "₹ Contact" when unknown.
func FormatPrice(price float64) string {
	if price <= 0 {
		return "₹ Contact"
	}
	return "₹ " + FormatNumber(price)
}

// FormatNumber groups thousands and keeps at most two fraction digits.
func FormatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < math.MaxInt64 {
		return printer.Sprintf("%d", int64(n))
	}
	return printer.Sprint(number.Decimal(n, number.MaxFractionDigits(2)))
}

// FormatArea renders a built-up area in square feet, or "Area N/A" when unknown.
func FormatArea(area float64) string {
	if area <= 0 {
		return "Area N/A"
	}
	return FormatNumber(area) + " sqft"
}
