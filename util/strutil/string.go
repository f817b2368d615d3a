package strutil

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Pad n with leading zeros until it has at least digit digits.
//
// Sign of n is kept in front of the padding, e.g., PadNum(-7, 3) is "-007".
func PadNum(n int, digit int) string {
	if n < 0 {
		return "-" + PadNum(-n, digit)
	}
	num := strconv.Itoa(n)
	if pad := digit - len(num); pad > 0 {
		return strings.Repeat("0", pad) + num
	}
	return num
}

func IsBlankStr(s string) bool {
	return strings.TrimSpace(s) == ""
}

func Spaces(count int) string {
	if count < 1 {
		return ""
	}
	return strings.Repeat(" ", count)
}

// Display width of s in a terminal, wide and ambiguous east asian runes take two columns.
func StrWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth, width.EastAsianAmbiguous:
			n += 2
		default:
			n++
		}
	}
	return n
}

// Pad s with spaces to the display width |n|, on the left if n > 0, on the right otherwise.
func PadSpace(n int, s string) string {
	return PadToken(n, s, " ")
}

// Same as [PadSpace], but pads with tok.
func PadToken(n int, s string, tok string) string {
	w := n
	if w < 0 {
		w = -w
	}
	pad := w - StrWidth(s)
	if pad <= 0 {
		return s
	}
	if n < 0 {
		return s + strings.Repeat(tok, pad)
	}
	return strings.Repeat(tok, pad) + s
}

// Split s at the first token, both sides trimmed.
func SplitKV(s string, token string) (string, string, bool) {
	k, v, ok := strings.Cut(s, token)
	if !ok {
		return s, "", false
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), true
}
