// Package spacing fixes spaces at boundaries between CJK text, Latin text,
// math and code in mdast tree, including boundaries hidden behind inline
// markup such as emphasis or links.
package spacing

import "errors"

// Sentinel stands for generic alphanumeric token (math, code) when asking
// Rules about a boundary.
const Sentinel = 'A'

// Whitespace is the set of characters treated as blanks. Non-breaking and
// ideographic spaces are content and are never touched.
const Whitespace = " \t\n\v\f\r"

var (
	// ErrEmptyContainer is returned when boundary lookup descends into a
	// container without children.
	ErrEmptyContainer = errors.New("empty container")
	// ErrContract wraps errors returned by Rules.
	ErrContract = errors.New("spacing rules failed")
)

// Concat is the outcome of a text to text boundary.
type Concat struct {
	// new values of the left and right text leaves
	Left, Right string
	// AddSpace requests a separate " " text node between the two siblings.
	AddSpace bool
	// PendingNext carries a space which could not be placed to the next
	// boundary in the same container.
	PendingNext bool
}

// Rules classify characters and normalize leaf values. Implementations must
// be deterministic, and NormalizeText and NormalizeMath must be idempotent.
type Rules interface {
	NormalizeText(value string) (string, error)
	NormalizeMath(value string) (string, error)
	// ShouldAddSpace decides if a space belongs between runes l and r, had
	// tells whether the author put one there. Passing zero for both runes is
	// an error. ShouldAddSpace(l, r, false) must imply ShouldAddSpace(l, r, true).
	ShouldAddSpace(l, r rune, had bool) (bool, error)
	ConcatToken(left, right string, pending bool) (Concat, error)
}
