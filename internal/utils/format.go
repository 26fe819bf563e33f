package utils

import (
	"fmt"
	"strings"
)

// FormatPrice renders an integer so'm amount with thousand separators,
// e.g. 35000 -> "35,000 so'm".
func FormatPrice(amount int64) string {
	str := fmt.Sprintf("%d", amount)

	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}

	var result strings.Builder
	if negative {
		result.WriteString("-")
	}
	length := len(str)
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return result.String() + " so'm"
}
