package util

import (
	"strconv"
	"strings"
)

// FormatAmount renders a monetary amount as "{symbol}{amount}" with
// thousands separators and a fixed number of decimal places, e.g.
// FormatAmount(1350, "$", 2) == "$1,350.00". The same input always
// produces the same output.
func FormatAmount(amount float64, symbol string, decimalPlaces int) string {
	if decimalPlaces < 0 {
		decimalPlaces = 0
	}

	formatted := strconv.FormatFloat(amount, 'f', decimalPlaces, 64)

	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}

	intPart := formatted
	fracPart := ""
	if i := strings.IndexByte(formatted, '.'); i >= 0 {
		intPart = formatted[:i]
		fracPart = formatted[i:]
	}

	var b strings.Builder
	b.WriteString(symbol)
	b.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(fracPart)
	return b.String()
}
