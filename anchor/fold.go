package anchor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// folded is a lowercased copy of a string that remembers where each of its
// bytes came from, since lowercasing may change the encoded length.
type folded struct {
	text    string
	offsets []int // nil when text and the source share byte offsets
}

// original maps a byte offset in the folded text back to the source string.
func (f folded) original(i int) int {
	if f.offsets == nil {
		return i
	}
	return f.offsets[i]
}

func fold(s string) folded {
	if isASCII(s) {
		return folded{text: strings.ToLower(s)}
	}

	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)
	for i, r := range s {
		lr := unicode.ToLower(r)
		n, _ := b.WriteRune(lr)
		for range n {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(s))

	return folded{text: b.String(), offsets: offsets}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
