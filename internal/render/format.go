package render

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// truncateLimit bounds displayed address length; anything longer is
	// middle-truncated to truncateKeep + ellipsis + truncateKeep characters.
	truncateLimit = 30
	truncateKeep   = 15
)

var printer = message.NewPrinter(language.AmericanEnglish)

// currencySymbols maps the common quote currency codes to their display
// symbol. Unknown codes fall back to the code itself.
var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"CHF": "CHF ",
	"ETH": "Ξ",
	"BTC": "₿",
}

// TruncateMiddle shortens s with a middle ellipsis once it exceeds the
// display limit; shorter inputs pass through unmodified.
func TruncateMiddle(s string) string {
	if len(s) <= truncateLimit {
		return s
	}
	return s[:truncateKeep] + "..." + s[len(s)-truncateKeep:]
}

// Pluralize renders "1 Chain" but "0 Chains" and "2 Chains".
func Pluralize(n int64, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}

// FormatCurrency renders an amount with its currency symbol, two decimal
// places and locale digit grouping, e.g. "$1,234.57".
func FormatCurrency(amount float64, code string) string {
	number := printer.Sprintf("%.2f", amount)
	if symbol, ok := currencySymbols[code]; ok {
		return symbol + number
	}
	return code + " " + number
}

// FormatDate renders the abbreviated month/day/year form, e.g. "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
