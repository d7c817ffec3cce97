// Package names parses and compares person names. Supported input formats are
// "First Last" and "Last, First"; comparison works on a normalized form so
// that "J. Doe", "J Doe" and "j doe" refer to the same author.
package names

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyName     = errors.New("empty person name")
	ErrMalformedName = errors.New("malformed person name")
)

type Name struct {
	First string
	Last  string

	// Comma reports that the name was written as "Last, First".
	Comma bool
}

// Parse splits a free-text person name into its first and last components.
// "Last, First" takes precedence when a comma is present; otherwise the first
// token is the first name and the remainder the last name.
func Parse(fullName string) (Name, error) {
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return Name{}, ErrEmptyName
	}

	if idx := strings.Index(trimmed, ","); idx >= 0 {
		if strings.Contains(trimmed[idx+1:], ",") {
			return Name{}, fmt.Errorf("%w: multiple commas in %q", ErrMalformedName, fullName)
		}
		last := strings.TrimSpace(trimmed[:idx])
		first := strings.TrimSpace(trimmed[idx+1:])
		if first == "" || last == "" {
			return Name{}, fmt.Errorf("%w: %q", ErrMalformedName, fullName)
		}
		return Name{First: first, Last: last, Comma: true}, nil
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return Name{}, fmt.Errorf("%w: missing name component in %q", ErrMalformedName, fullName)
	}
	return Name{First: fields[0], Last: strings.Join(fields[1:], " ")}, nil
}

// Consistent reports whether two parsed names use the same ordering
// convention. Mixing "First Last" with "Last, First" in a single request
// cannot be disambiguated reliably, so callers reject inconsistent pairs.
func Consistent(a, b Name) bool {
	return a.Comma == b.Comma
}

// Normalize removes dots and dashes, collapses whitespace, strips diacritics
// and upper-cases the name.
func Normalize(name string) string {
	decomposed := norm.NFD.String(name)

	var b strings.Builder
	space := true
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark from decomposition, drop
		case r == '.':
			// "J." -> "J"
		case r == '-' || unicode.IsSpace(r):
			if !space {
				b.WriteRune(' ')
				space = true
			}
		default:
			b.WriteRune(unicode.ToUpper(r))
			space = false
		}
	}
	return strings.TrimSpace(b.String())
}

// Similar reports whether two first/last name pairs plausibly denote the same
// person: equal normalized last names, and first names that are either equal
// or compatible through an initial ("J" vs "John").
func Similar(first1, last1, first2, last2 string) bool {
	if Normalize(last1) != Normalize(last2) {
		return false
	}

	f1 := Normalize(first1)
	f2 := Normalize(first2)
	if f1 == f2 {
		return true
	}
	return initialMatch(f1, f2) || initialMatch(f2, f1)
}

func initialMatch(short, full string) bool {
	return len(short) == 1 && strings.HasPrefix(full, short)
}
