package models

import (
	"fmt"
	"strings"
)

// FormatBRL formats a value the Brazilian way: thousands separated by
// dots, two decimals after a comma ("1.234,56"). Negative values keep
// a leading minus sign.
func FormatBRL(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}

// BRL renders a value with the currency prefix ("R$ 1.234,56")
func BRL(v float64) string {
	return "R$ " + FormatBRL(v)
}
