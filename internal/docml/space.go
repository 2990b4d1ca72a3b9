package docml

import (
	"strings"
	"unicode"
)

// space is the whitespace class used in line patterns. Besides ASCII blanks
// it covers vertical tab, NEL, the file/group/record/unit separators and
// every Unicode separator (NBSP, the U+2000 block, ideographic space).
const space = `[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]`

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Z) || (r >= 0x1c && r <= 0x1f)
}

// trimSpace trims the same set of runes that space matches.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
