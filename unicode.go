package snakecase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type unicodeAlphabet struct{}

func (unicodeAlphabet) next(s string, i int) (rune, int) {
	if c := s[i]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(s[i:])
}

// isLower covers cased lowercase letters as well as letters without case,
// which are kept verbatim and never split a word.
func (a unicodeAlphabet) isLower(r rune) bool {
	if r < utf8.RuneSelf {
		return r >= 'a' && r <= 'z'
	}
	return unicode.In(r, unicode.Letter, unicode.Other_Lowercase) && !a.isUpper(r)
}

// isUpper reports whether r has a lowercase form other than itself.
func (unicodeAlphabet) isUpper(r rune) bool {
	if r < utf8.RuneSelf {
		return r >= 'A' && r <= 'Z'
	}
	return unicode.ToLower(r) != r
}

// isDigit excludes numbers with a lowercase form (Roman numeral capitals),
// those go through isUpper.
func (a unicodeAlphabet) isDigit(r rune) bool {
	if r < utf8.RuneSelf {
		return r >= '0' && r <= '9'
	}
	return unicode.IsNumber(r) && !a.isUpper(r)
}

func (unicodeAlphabet) writeLower(b *strings.Builder, r rune) {
	b.WriteRune(unicode.ToLower(r))
}

// ToSnakeCaseUnicode converts s to snake_case like ToSnakeCase, but keeps
// non-ASCII letters and numbers, lowercasing them where they have a
// lowercase form: "ẞ•¶§ƒ˚foo" -> "ß_ƒ_foo". Symbols, punctuation, spaces
// and invalid UTF-8 are dropped.
func ToSnakeCaseUnicode(s string) string {
	out, _ := ConvertUnicode(s)
	return out
}

// ConvertUnicode is ToSnakeCaseUnicode that also reports whether the
// result is a newly built string.
func ConvertUnicode(s string) (string, bool) {
	return convert(unicodeAlphabet{}, s)
}
