package snakecase

import "strings"

const (
	separator = '_'

	// extra room reserved for separators when a rewrite is needed
	headroom = 5
)

// alphabet decides how characters are decoded, classified and lowercased.
type alphabet interface {
	// next decodes the character starting at s[i] and returns it with its width in bytes.
	next(s string, i int) (rune, int)
	isLower(r rune) bool
	isUpper(r rune) bool
	isDigit(r rune) bool
	writeLower(b *strings.Builder, r rune)
}

func isAlphanumeric[A alphabet](a A, r rune) bool {
	return a.isLower(r) || a.isUpper(r) || a.isDigit(r)
}

// convert returns s unchanged when it is already snake_case, otherwise it
// rewrites s in one pass. The bool reports whether a new string was built.
func convert[A alphabet](a A, s string) (string, bool) {
	var (
		i                       int
		sawLower                bool
		sawUnderscore           bool
		sawLowerSinceUnderscore bool
	)

scan:
	for i < len(s) {
		r, size := a.next(s, i)
		switch {
		case a.isLower(r):
			sawLower = true
			if sawUnderscore {
				sawLowerSinceUnderscore = true
			}
		case a.isDigit(r):
		case r == separator && i > 0 && i+size < len(s) && startsWord(a, s, i+size):
			sawUnderscore = true
			sawLowerSinceUnderscore = false
		default:
			break scan
		}
		i += size
	}

	if i >= len(s) {
		return s, false
	}

	var b strings.Builder
	b.Grow(len(s) + headroom)
	b.WriteString(s[:i])

	// An uppercase run right after a prefix without lowercase letters
	// continues the current word instead of starting a new one.
	if r, _ := a.next(s, i); a.isUpper(r) && (!sawLower || sawUnderscore && !sawLowerSinceUnderscore) {
		i = writeWord(a, &b, s, i)
	}

	for i < len(s) {
		r, size := a.next(s, i)
		if !isAlphanumeric(a, r) {
			i += size
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(separator)
		}
		i = writeWord(a, &b, s, i)
	}

	return b.String(), true
}

// startsWord reports whether the character at s[i] may follow an underscore.
func startsWord[A alphabet](a A, s string, i int) bool {
	r, _ := a.next(s, i)
	return a.isLower(r) || a.isDigit(r)
}

// writeWord writes an acronym run (uppercase and digits, lowercased)
// followed by a lowercase run (lowercase and digits, verbatim) and returns
// the index of the first character after the word.
func writeWord[A alphabet](a A, b *strings.Builder, s string, i int) int {
	for i < len(s) {
		r, size := a.next(s, i)
		if a.isUpper(r) {
			a.writeLower(b, r)
		} else if a.isDigit(r) {
			b.WriteString(s[i : i+size])
		} else {
			break
		}
		i += size
	}

	for i < len(s) {
		r, size := a.next(s, i)
		if !a.isLower(r) && !a.isDigit(r) {
			break
		}
		b.WriteString(s[i : i+size])
		i += size
	}

	return i
}
