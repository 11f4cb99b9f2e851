package pricing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the ISO code prices are quoted in.
const Currency = "UGX"

var printer = message.NewPrinter(language.English)

// FormatUGX renders an amount as "UGX 1,234,567" with no decimals.
func FormatUGX(amount float64) string {
	return printer.Sprintf("%s %d", Currency, int64(math.Round(amount)))
}
