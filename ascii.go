package snakecase

import "strings"

type asciiAlphabet struct{}

func (asciiAlphabet) next(s string, i int) (rune, int) {
	return rune(s[i]), 1
}

func (asciiAlphabet) isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func (asciiAlphabet) isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func (asciiAlphabet) isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (asciiAlphabet) writeLower(b *strings.Builder, r rune) {
	b.WriteByte(byte(r) + 'a' - 'A')
}

// ToSnakeCase converts s to snake_case, e.g. "inviteYourCustomers" -> "invite_your_customers".
//
// Only ASCII letters and digits survive the conversion. Every byte outside
// the ASCII range is dropped, so multi-byte characters vanish entirely.
func ToSnakeCase(s string) string {
	out, _ := ConvertASCII(s)
	return out
}

// ConvertASCII is ToSnakeCase that also reports whether the result is a
// newly built string. When it returns false, the result is s itself and
// nothing was allocated.
func ConvertASCII(s string) (string, bool) {
	return convert(asciiAlphabet{}, s)
}
