package spacing

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"lfmt/mdast"
)

// resolve handles boundary between two adjacent siblings. Left sibling must
// be fully formatted already: its trailing leaf is final except for the trim
// done here. It returns whether a space node goes between the siblings and
// the pending state for the next boundary.
func (w *walker) resolve(left, right mdast.NodeID, pending bool) (bool, bool, error) {
	l, err := lastLeaf(w.tree, left, w.skip)
	if err != nil {
		return false, false, err
	}
	r, err := firstLeaf(w.tree, right, w.skip)
	if err != nil {
		return false, false, err
	}

	lc, rc := w.tree.Nodes[l].Kind.Class(), w.tree.Nodes[r].Kind.Class()
	switch {
	case lc == mdast.ClassText && rc == mdast.ClassText:
		c, err := w.rules.ConcatToken(w.tree.Nodes[l].Value, w.tree.Nodes[r].Value, pending)
		if err != nil {
			return false, false, fmt.Errorf("%w: joining %s and %s: %w", ErrContract, w.tree.Describe(l), w.tree.Describe(r), err)
		}
		w.setValue(l, c.Left)
		w.setValue(r, c.Right)
		return c.AddSpace, c.PendingNext, nil

	case lc == mdast.ClassText && isToken(rc):
		v := w.tree.Nodes[l].Value
		trimmed := strings.TrimRight(v, Whitespace)
		last := rune(Sentinel)
		if trimmed != "" {
			last, _ = utf8.DecodeLastRuneInString(trimmed)
		}
		add, err := w.rules.ShouldAddSpace(last, Sentinel, trimmed != v)
		if err != nil {
			return false, false, fmt.Errorf("%w: spacing %s: %w", ErrContract, w.tree.Describe(l), err)
		}
		if add {
			trimmed += " "
		}
		w.setValue(l, trimmed)

	case isToken(lc) && rc == mdast.ClassText:
		v := w.tree.Nodes[r].Value
		trimmed := strings.TrimLeft(v, Whitespace)
		first := rune(Sentinel)
		if trimmed != "" {
			first, _ = utf8.DecodeRuneInString(trimmed)
		}
		add, err := w.rules.ShouldAddSpace(Sentinel, first, trimmed != v)
		if err != nil {
			return false, false, fmt.Errorf("%w: spacing %s: %w", ErrContract, w.tree.Describe(r), err)
		}
		if add {
			trimmed = " " + trimmed
		}
		w.setValue(r, trimmed)
	}
	return false, false, nil
}

// isToken reports whether leaf behaves as a single alphanumeric token.
func isToken(c mdast.Class) bool {
	return c == mdast.ClassMath || c == mdast.ClassCode
}
