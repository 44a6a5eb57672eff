// Package text is the default implementation of character classification
// and normalization rules used by the spacing formatter.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

//go:generate go tool go-enum --names

// Class of a single rune as far as boundary spacing is concerned.
// ENUM(other, space, cjk, cjkPunct, alnum, punct)
type Class int

// Classify returns class of the rune.
func Classify(r rune) Class {
	switch {
	case isSpace(r):
		return ClassSpace
	case unicode.IsOneOf(cjkScripts, r):
		return ClassCjk
	case unicode.Is(cjkPunct, r):
		return ClassCjkPunct
	case unicode.IsLetter(r) && width.LookupRune(r).Kind() == width.EastAsianWide:
		return ClassCjk
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		return ClassAlnum
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return ClassPunct
	default:
		return ClassOther
	}
}

func isSpace(r rune) bool {
	return r < 0x80 && strings.ContainsRune(whitespace, r)
}

// foldFullwidth replaces full-width Latin letters and digits with their
// ASCII counterparts. Full-width punctuation is left alone.
func foldFullwidth(s string) string {
	return strings.Map(func(r rune) rune {
		p := width.LookupRune(r)
		if p.Kind() != width.EastAsianFullwidth {
			return r
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return r
		}
		if n := p.Narrow(); n != 0 {
			return n
		}
		return r
	}, s)
}
