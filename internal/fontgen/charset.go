package fontgen

import (
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// buildCharset returns the sorted set of distinct characters of text.
// Line breaks and invalid UTF-8 bytes are never included,
// a space only when keepSpace is set.
func buildCharset(text string, keepSpace bool) []rune {
	seen := make(map[rune]struct{})
	var chars []rune
	text = norm.NFC.String(text)
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		switch r {
		case '\n', '\r':
			continue
		case ' ':
			if !keepSpace {
				continue
			}
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		chars = append(chars, r)
	}
	slices.Sort(chars)
	return chars
}
