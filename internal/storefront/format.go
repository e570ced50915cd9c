package storefront

import (
	"math"
	"strconv"
	"strings"
)

// FormatCOP formats an amount the es-CO way with at most two decimals:
// 24000 -> "24.000", 1500.5 -> "1.500,5".
func FormatCOP(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0"
	}

	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole, frac := cents/100, cents%100

	var b strings.Builder
	if neg && cents != 0 {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(strconv.FormatInt(whole, 10)))
	if frac != 0 {
		digits := strconv.FormatInt(frac+100, 10)[1:]
		b.WriteByte(',')
		b.WriteString(strings.TrimRight(digits, "0"))
	}
	return b.String()
}

// FormatCOPWithSymbol formats an amount as "$24.000 COP".
func FormatCOPWithSymbol(amount float64) string {
	return "$" + FormatCOP(amount) + " COP"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := len(digits) % 3
	var b strings.Builder
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
