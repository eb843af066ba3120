package engine

import (
	"cmp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"cloud.google.com/go/civil"
)

// compareFold orders a and b as their lower-cased forms would order, rune by rune.
func compareFold(a, b string) int {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if c := cmp.Compare(unicode.ToLower(ra), unicode.ToLower(rb)); c != 0 {
			return c
		}
		a, b = a[na:], b[nb:]
	}
	return cmp.Compare(len(a), len(b))
}

func compareDate(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func compareTime(a, b time.Time) int {
	return a.Compare(b)
}

func compareNumber[N cmp.Ordered](a, b N) int {
	return cmp.Compare(a, b)
}

// containsAny reports whether term (already lower-cased) is a substring of any field.
func containsAny(term string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && containsFold(f, term) {
			return true
		}
	}
	return false
}

// containsFold reports whether lower occurs in s once s is lower-cased.
func containsFold(s, lower string) bool {
	if lower == "" {
		return true
	}
	for i := range s {
		if hasPrefixFold(s[i:], lower) {
			return true
		}
	}
	return false
}

func hasPrefixFold(s, lower string) bool {
	for _, want := range lower {
		if s == "" {
			return false
		}
		r, n := utf8.DecodeRuneInString(s)
		if unicode.ToLower(r) != want {
			return false
		}
		s = s[n:]
	}
	return true
}

// phoneQuery extracts the digits of term when it looks like a phone fragment:
// only digits and common phone punctuation, with at least one digit.
func phoneQuery(term string) (string, bool) {
	var b strings.Builder
	for _, r := range term {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '(' || r == ')' || r == '.' || r == ' ':
		default:
			return "", false
		}
	}
	return b.String(), b.Len() > 0
}
