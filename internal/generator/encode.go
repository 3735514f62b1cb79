package generator

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// Encode escapes every character with a code point at or above 128 as a
// 4-hex-digit \uXXXX form. Supplementary-plane characters become surrogate
// pairs, matching how a Java compiler reads unicode escapes, so the output
// is byte-identical across runs and safe for 7-bit text streams.
func Encode(text string) string {
	needsEscape := false
	for _, r := range text {
		if r >= 128 {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			high, low := utf16.EncodeRune(r)
			fmt.Fprintf(&b, "\\u%04x\\u%04x", high, low)
			continue
		}
		fmt.Fprintf(&b, "\\u%04x", r)
	}
	return b.String()
}
