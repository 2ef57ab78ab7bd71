package domain

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a quoted price for display, e.g. "NGN 2,500".
// Whole amounts drop the fraction; fractional amounts keep two digits.
func FormatPrice(currency string, price float64) string {
	if price == math.Trunc(price) {
		return pricePrinter.Sprintf("%s %d", currency, int64(price))
	}
	return pricePrinter.Sprintf("%s %.2f", currency, price)
}
