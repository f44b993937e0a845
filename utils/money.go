package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatPrice formats an amount as a string like "$12,500.00".
// Uses comma as thousands separator and two decimals.
func FormatPrice(amount float64) string {
	cents := int64(math.Round(amount * 100))
	neg := cents < 0
	if neg {
		cents = -cents
	}

	s := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	// digits + separators + sign + $ + decimals
	b.Grow(len(s) + len(s)/3 + 5)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	b.WriteByte('.')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// DisplayPrices returns the price to show and, when the offer is a real discount,
// the struck-through original price. Missing prices format as "".
func DisplayPrices(price, offerPrice *float64) (display, original string) {
	if offerPrice != nil && (price == nil || *offerPrice < *price) {
		display = FormatPrice(*offerPrice)
		if price != nil {
			original = FormatPrice(*price)
		}
		return display, original
	}
	if price != nil {
		display = FormatPrice(*price)
	}
	return display, ""
}
