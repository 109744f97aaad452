// Package text holds small string helpers used when rendering section
// labels.
package text

import "strings"

// Ellipsis is appended to every truncated string.
const Ellipsis = " ..."

// Truncate shortens s to at most max characters. Longer strings are cut back
// to the last space inside the first max characters, when there is one past
// the first character, and always get [Ellipsis] appended. Lengths count
// runes. A negative max is treated as zero.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	prefix := string(runes[:max])
	if i := strings.LastIndex(prefix, " "); i > 0 {
		prefix = prefix[:i]
	}
	return prefix + Ellipsis
}

// Shortened reports whether Truncate would change s.
func Shortened(s string, max int) bool {
	if max < 0 {
		max = 0
	}
	return len([]rune(s)) > max
}
