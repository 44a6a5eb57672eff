package spacing

import (
	"fmt"

	"go.uber.org/zap"

	"lfmt/mdast"
)

// Stats describes changes made by a single Format call.
type Stats struct {
	// Inserted is the number of " " text nodes spliced into the tree.
	Inserted int
	// Changed counts rewrites of leaf values, a leaf may be rewritten by
	// normalization and then again by each of its boundaries.
	Changed int
}

// Formatter is immutable and may be used from several goroutines as long as
// every call gets its own tree.
type Formatter struct {
	rules         Rules
	log           *zap.Logger
	normalizeText bool
	normalizeMath bool
	skip          map[mdast.Kind]bool
}

type Option func(*Formatter)

func WithLogger(log *zap.Logger) Option {
	return func(f *Formatter) {
		if log != nil {
			f.log = log
		}
	}
}

// WithTextNormalization controls rewriting of text values through
// Rules.NormalizeText. On by default.
func WithTextNormalization(on bool) Option {
	return func(f *Formatter) {
		f.normalizeText = on
	}
}

// WithMathNormalization controls rewriting of math values through
// Rules.NormalizeMath. On by default.
func WithMathNormalization(on bool) Option {
	return func(f *Formatter) {
		f.normalizeMath = on
	}
}

// WithSkip leaves containers of listed kinds alone: they are not entered and
// boundaries with them behave as boundaries with opaque nodes.
func WithSkip(kinds ...mdast.Kind) Option {
	return func(f *Formatter) {
		for _, k := range kinds {
			if k.IsContainer() {
				f.skip[k] = true
			}
		}
	}
}

func New(rules Rules, opts ...Option) *Formatter {
	f := &Formatter{
		rules:         rules,
		log:           zap.NewNop(),
		normalizeText: true,
		normalizeMath: true,
		skip:          make(map[mdast.Kind]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats the whole tree in place. On error the tree may be left
// partially formatted.
func (f *Formatter) Format(tree *mdast.Tree) (Stats, error) {
	return f.FormatNode(tree, tree.Root)
}

// FormatNode formats subtree starting at id in place.
func (f *Formatter) FormatNode(tree *mdast.Tree, id mdast.NodeID) (Stats, error) {
	w := &walker{Formatter: f, tree: tree}
	if err := w.format(id); err != nil {
		return w.stats, err
	}
	return w.stats, nil
}

// walker holds state of a single Format call.
type walker struct {
	*Formatter
	tree  *mdast.Tree
	stats Stats
}

func (w *walker) format(id mdast.NodeID) error {
	kind := w.tree.Nodes[id].Kind
	if w.skip[kind] {
		return nil
	}

	switch kind.Class() {
	case mdast.ClassStructural:
		for _, child := range w.tree.Nodes[id].Children {
			if err := w.format(child); err != nil {
				return err
			}
		}
	case mdast.ClassInline:
		return w.formatInline(id)
	case mdast.ClassText:
		if !w.normalizeText {
			return nil
		}
		v, err := w.rules.NormalizeText(w.tree.Nodes[id].Value)
		if err != nil {
			return fmt.Errorf("%w: normalizing %s: %w", ErrContract, w.tree.Describe(id), err)
		}
		w.setValue(id, v)
	case mdast.ClassMath:
		if !w.normalizeMath {
			return nil
		}
		v, err := w.rules.NormalizeMath(w.tree.Nodes[id].Value)
		if err != nil {
			return fmt.Errorf("%w: normalizing %s: %w", ErrContract, w.tree.Describe(id), err)
		}
		w.setValue(id, v)
	case mdast.ClassCode, mdast.ClassOpaque, mdast.ClassUnknown:
	default:
		panic(fmt.Sprintf("unexpected class %s of node %s", kind.Class(), w.tree.Describe(id)))
	}
	return nil
}

// formatInline formats children of inline container and resolves every
// boundary between them. New child list is collected separately and replaces
// the old one at the end.
func (w *walker) formatInline(id mdast.NodeID) error {
	children := w.tree.Nodes[id].Children
	if len(children) == 0 {
		return nil
	}

	out := make([]mdast.NodeID, 0, len(children)+1)
	pending := false
	for i, child := range children {
		if err := w.format(child); err != nil {
			return err
		}
		if i > 0 {
			add, next, err := w.resolve(children[i-1], child, pending)
			if err != nil {
				return err
			}
			pending = next
			if add {
				space := w.tree.NewText(" ")
				out = append(out, space)
				w.stats.Inserted++
				w.log.Debug("Space inserted",
					zap.String("after", w.tree.Describe(children[i-1])),
					zap.String("before", w.tree.Describe(child)))
			}
		}
		out = append(out, child)
	}
	w.tree.Nodes[id].Children = out
	return nil
}

func (w *walker) setValue(id mdast.NodeID, v string) {
	n := &w.tree.Nodes[id]
	if n.Value == v {
		return
	}
	w.log.Debug("Value changed", zap.String("node", w.tree.Describe(id)), zap.String("from", n.Value), zap.String("to", v))
	n.Value = v
	w.stats.Changed++
}
