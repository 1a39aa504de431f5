package stats

import (
	"fmt"
	"strconv"
	"strings"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// FormatInt formats n with Indonesian digit grouping ("1.234.567").
func FormatInt(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// FormatPct formats part/total as a percentage with the given decimals.
func FormatPct(part, total, digits int) string {
	if total == 0 {
		return "0%"
	}
	return strconv.FormatFloat(float64(part)/float64(total)*100, 'f', digits, 64) + "%"
}

// FormatHours formats an average response time.
func FormatHours(v float64, ok bool) string {
	if !ok {
		return "Tidak tersedia"
	}
	return fmt.Sprintf("%.1f jam", v)
}

// MonthLabel turns a YYYY-MM key into a short Indonesian label ("Mar 2024").
func MonthLabel(key string) string {
	year, month, ok := strings.Cut(key, "-")
	if !ok {
		return key
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return key
	}
	return monthNames[m-1] + " " + year
}
