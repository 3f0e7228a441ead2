package anchor

import "unicode/utf8"

// Score rates an occurrence by comparing the text around it with the
// context captured at save time. The before side counts the characters of
// the longest common suffix of before and contextBefore, the after side the
// longest common prefix of after and contextAfter. A side whose context is
// non-empty and matched in full earns ExactBonus. exact reports whether both
// sides earned the bonus.
func Score(before, after, contextBefore, contextAfter string) (score int, exact bool) {
	suffix := commonSuffixLen(before, contextBefore)
	prefix := commonPrefixLen(after, contextAfter)

	exactBefore := contextBefore != "" && suffix == utf8.RuneCountInString(contextBefore)
	exactAfter := contextAfter != "" && prefix == utf8.RuneCountInString(contextAfter)

	score = suffix + prefix
	if exactBefore {
		score += ExactBonus
	}
	if exactAfter {
		score += ExactBonus
	}
	return score, exactBefore && exactAfter
}

// commonPrefixLen returns the length in characters of the longest common prefix.
func commonPrefixLen(a, b string) int {
	n := 0
	for a != "" && b != "" {
		ra, sa := utf8.DecodeRuneInString(a)
		rb, sb := utf8.DecodeRuneInString(b)
		if ra != rb {
			break
		}
		a, b = a[sa:], b[sb:]
		n++
	}
	return n
}

// commonSuffixLen returns the length in characters of the longest common suffix.
func commonSuffixLen(a, b string) int {
	n := 0
	for a != "" && b != "" {
		ra, sa := utf8.DecodeLastRuneInString(a)
		rb, sb := utf8.DecodeLastRuneInString(b)
		if ra != rb {
			break
		}
		a, b = a[:len(a)-sa], b[:len(b)-sb]
		n++
	}
	return n
}
