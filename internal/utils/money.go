package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount with thousand separators, e.g. "1,250.50".
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(Round2(amount)*100 + 0.5)
	return fmt.Sprintf("%s%s.%02d", sign, formatThousand(cents/100), cents%100)
}

func formatThousand(n int64) string {
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
