package text

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"lfmt/spacing"
)

// ErrNoOperands is returned when asked to decide on a boundary with nothing
// on either side of it.
var ErrNoOperands = errors.New("both sides of boundary are empty")

// Rules is the default set of CJK/Latin spacing rules.
type Rules struct {
	fold bool
}

type Option func(*Rules)

// WithFullwidthFolding makes NormalizeText replace full-width Latin letters
// and digits with ASCII ones.
func WithFullwidthFolding(on bool) Option {
	return func(r *Rules) {
		r.fold = on
	}
}

func New(opts ...Option) *Rules {
	r := &Rules{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ spacing.Rules = (*Rules)(nil)

// ShouldAddSpace decides if a single space belongs between l and r. The
// result never depends on had unless neither rule applies, so dropping
// author's space can only happen where a space is never wanted.
func (*Rules) ShouldAddSpace(l, r rune, had bool) (bool, error) {
	if l == 0 && r == 0 {
		return false, ErrNoOperands
	}
	cl, cr := Classify(l), Classify(r)
	switch {
	case cl == ClassCjkPunct || cr == ClassCjkPunct:
		return false, nil
	case cl == ClassCjk && cr == ClassAlnum, cl == ClassAlnum && cr == ClassCjk:
		return true, nil
	case cl == ClassCjk && cr == ClassCjk:
		return false, nil
	}
	return had, nil
}

// NormalizeText fixes spacing inside single text value.
func (rs *Rules) NormalizeText(value string) (string, error) {
	if rs.fold {
		value = foldFullwidth(value)
	}
	if value == "" {
		return value, nil
	}

	var (
		b    strings.Builder
		prev rune
	)
	b.Grow(len(value) + 8)

	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		if !isSpace(r) {
			if prev != 0 {
				add, err := rs.ShouldAddSpace(prev, r, false)
				if err != nil {
					return "", err
				}
				if add {
					b.WriteByte(' ')
				}
			}
			b.WriteRune(r)
			prev = r
			i += size
			continue
		}

		end := i + len(value[i:]) - len(strings.TrimLeft(value[i:], whitespace))
		run := value[i:end]
		switch {
		case i == 0 || end == len(value):
			b.WriteString(collapse(run))
		case strings.ContainsRune(run, '\n'):
			b.WriteByte('\n')
		default:
			next, _ := utf8.DecodeRuneInString(value[end:])
			keep, err := rs.ShouldAddSpace(prev, next, true)
			if err != nil {
				return "", err
			}
			if keep {
				b.WriteByte(' ')
			}
		}
		// whatever was decided here stands, do not reconsider next rune
		prev = 0
		i = end
	}
	return b.String(), nil
}

func collapse(run string) string {
	if strings.ContainsRune(run, '\n') {
		return "\n"
	}
	return " "
}

// NormalizeMath tidies whitespace of math source. Single line math is
// trimmed and its blank runs collapsed, multi-line math only loses trailing
// blanks on every line.
func (*Rules) NormalizeMath(value string) (string, error) {
	if !strings.ContainsRune(strings.Trim(value, whitespace), '\n') {
		return strings.Join(strings.Fields(value), " "), nil
	}
	lines := strings.Split(value, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\v\f\r")
	}
	return strings.Join(lines, "\n"), nil
}

// ConcatToken resolves boundary between two adjacent text values. Spaces
// found on either side of the boundary are moved into a single decision:
// either an added space node, or a space kept by a whitespace only value
// and carried to the next boundary.
func (rs *Rules) ConcatToken(left, right string, pending bool) (spacing.Concat, error) {
	lt := strings.TrimRight(left, whitespace)
	rt := strings.TrimLeft(right, whitespace)
	had := pending || lt != left || rt != right

	switch {
	case rt == "" && lt == "" && left != "":
		// blank on both sides, the space stays with the left value
		return spacing.Concat{Left: " ", PendingNext: had}, nil
	case rt == "":
		c := spacing.Concat{Left: lt, PendingNext: had}
		if had {
			c.Right = " "
		}
		return c, nil
	case lt == "":
		c := spacing.Concat{Right: rt}
		switch {
		case left != "":
			c.Left = " "
		case had:
			c.Right = " " + rt
		}
		return c, nil
	}

	l, _ := utf8.DecodeLastRuneInString(lt)
	r, _ := utf8.DecodeRuneInString(rt)
	add, err := rs.ShouldAddSpace(l, r, had)
	if err != nil {
		return spacing.Concat{}, fmt.Errorf("unable to concat %q and %q: %w", lt, rt, err)
	}
	return spacing.Concat{Left: lt, Right: rt, AddSpace: add}, nil
}
