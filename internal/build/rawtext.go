package build

import (
	"strconv"
	"strings"
)

// RawTypeText recovers the payload type text from an annotation's source.
// Only the first two opening parentheses are considered: the innermost of
// them opens the span, which runs to its matching closing parenthesis.
// The first top-level comma ends the span early.
func RawTypeText(raw string) (string, bool) {
	open := strings.IndexByte(raw, '(')
	if open < 0 {
		return "", false
	}

	if next := strings.IndexByte(raw[open+1:], '('); next >= 0 {
		if closing := strings.IndexByte(raw[open+1:], ')'); closing < 0 || next < closing {
			open += next + 1
		}
	}

	depth := 0

	for i := open + 1; i < len(raw); i++ {
		switch raw[i] {
		case '(', '[', '{':
			depth++
		case ']', '}':
			depth--
		case ')':
			if depth == 0 {
				return trimmed(raw[open+1 : i])
			}

			depth--
		case ',':
			if depth == 0 {
				return trimmed(raw[open+1 : i])
			}
		}
	}

	return "", false
}

// RawStringLiteral returns the value of the first string literal in raw.
func RawStringLiteral(raw string) (string, bool) {
	i := strings.IndexAny(raw, "\"`")
	if i < 0 {
		return "", false
	}

	lit, err := strconv.QuotedPrefix(raw[i:])
	if err != nil {
		return "", false
	}

	s, err := strconv.Unquote(lit)
	if err != nil {
		return "", false
	}

	return s, true
}

func trimmed(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
