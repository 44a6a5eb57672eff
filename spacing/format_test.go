package spacing_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"lfmt/mdast"
	"lfmt/spacing"
	"lfmt/text"
)

func newFormatter(t *testing.T, opts ...spacing.Option) *spacing.Formatter {
	t.Helper()
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	return spacing.New(text.New(), append([]spacing.Option{spacing.WithLogger(log)}, opts...)...)
}

// paragraph links single paragraph made of children to the root of new tree.
func paragraph(build func(tr *mdast.Tree) []mdast.NodeID) (*mdast.Tree, mdast.NodeID) {
	tr := mdast.NewTree()
	p := tr.Add(mdast.KindParagraph, "", build(tr)...)
	tr.Link(tr.Root, p)
	return tr, p
}

// values returns kinds and values of node children for comparison.
func values(tr *mdast.Tree, id mdast.NodeID) []string {
	var out []string
	for _, c := range tr.Nodes[id].Children {
		n := tr.Nodes[c]
		out = append(out, string(n.Kind)+":"+n.Value)
	}
	return out
}

func TestFormatScenarios(t *testing.T) {
	tests := []struct {
		name     string
		build    func(tr *mdast.Tree) []mdast.NodeID
		want     []string
		inserted int
	}{
		{
			name: "text before inline code",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{tr.Add(mdast.KindText, "你好"), tr.Add(mdast.KindInlineCode, "x")}
			},
			want: []string{"text:你好 ", "inlineCode:x"},
		},
		{
			name: "inline math before text",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{tr.Add(mdast.KindInlineMath, "x"), tr.Add(mdast.KindText, "你好")}
			},
			want: []string{"inlineMath:x", "text: 你好"},
		},
		{
			name: "strong latin before cjk",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{
					tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, "AB")),
					tr.Add(mdast.KindText, "你好"),
				}
			},
			want:     []string{"strong:", "text: ", "text:你好"},
			inserted: 1,
		},
		{
			name: "opaque leaves",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{tr.Add(mdast.KindImage, ""), tr.Add(mdast.KindBreak, "")}
			},
			want: []string{"image:", "break:"},
		},
		{
			name: "trailing space moved out of emphasis",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{
					tr.Add(mdast.KindText, "使用"),
					tr.Add(mdast.KindEmphasis, "", tr.Add(mdast.KindText, "Go ")),
					tr.Add(mdast.KindText, "语言"),
				}
			},
			want:     []string{"text:使用", "text: ", "emphasis:", "text: ", "text:语言"},
			inserted: 2,
		},
		{
			name: "deeply nested on both sides",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{
					tr.Add(mdast.KindEmphasis, "", tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, "中文"))),
					tr.Add(mdast.KindLink, "", tr.Add(mdast.KindDelete, "", tr.Add(mdast.KindText, "Go"))),
				}
			},
			want:     []string{"emphasis:", "text: ", "link:"},
			inserted: 1,
		},
		{
			name: "cjk punctuation before code",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{tr.Add(mdast.KindText, "你好， "), tr.Add(mdast.KindInlineCode, "x")}
			},
			want: []string{"text:你好，", "inlineCode:x"},
		},
		{
			name: "latin spacing kept before code",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{tr.Add(mdast.KindText, "call  "), tr.Add(mdast.KindInlineCode, "f()")}
			},
			want: []string{"text:call ", "inlineCode:f()"},
		},
		{
			name: "space removed between cjk across markup",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{
					tr.Add(mdast.KindText, "你 "),
					tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, " 好")),
				}
			},
			want: []string{"text:你", "strong:"},
		},
		{
			name: "break resets",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{
					tr.Add(mdast.KindText, "AB "),
					tr.Add(mdast.KindBreak, ""),
					tr.Add(mdast.KindText, "你好"),
				}
			},
			want: []string{"text:AB ", "break:", "text:你好"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, p := paragraph(tt.build)
			before := tr.Leaves()

			stats, err := newFormatter(t).Format(tr)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, values(tr, p)); diff != "" {
				t.Errorf("children mismatch (-want +got):\n%s", diff)
			}
			if stats.Inserted != tt.inserted {
				t.Errorf("Inserted = %d, want %d", stats.Inserted, tt.inserted)
			}
			if got := tr.Leaves() - before; got != stats.Inserted {
				t.Errorf("leaf count grew by %d, inserted %d", got, stats.Inserted)
			}
		})
	}
}

func TestFormatNestedValues(t *testing.T) {
	tr, p := paragraph(func(tr *mdast.Tree) []mdast.NodeID {
		return []mdast.NodeID{
			tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, "AB ")),
			tr.Add(mdast.KindText, " 你好"),
		}
	})
	if _, err := newFormatter(t).Format(tr); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	strong := tr.Nodes[p].Children[0]
	if got := tr.Nodes[tr.Nodes[strong].Children[0]].Value; got != "AB" {
		t.Errorf("text inside strong = %q, want %q", got, "AB")
	}
	if diff := cmp.Diff([]string{"strong:", "text: ", "text:你好"}, values(tr, p)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatListItemsIndependent(t *testing.T) {
	tr := mdast.NewTree()
	item := func(s string) mdast.NodeID {
		return tr.Add(mdast.KindListItem, "", tr.Add(mdast.KindParagraph, "", tr.Add(mdast.KindText, s)))
	}
	list := tr.Add(mdast.KindList, "", item("AB"), item("你好"), item("CD"))
	tr.Link(tr.Root, list)

	stats, err := newFormatter(t).Format(tr)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if stats.Inserted != 0 || stats.Changed != 0 {
		t.Errorf("unexpected changes %+v", stats)
	}
	if n := len(tr.Nodes[list].Children); n != 3 {
		t.Errorf("list has %d children, want 3", n)
	}
}

func TestFormatNoLeakBetweenContainers(t *testing.T) {
	tr := mdast.NewTree()
	p1 := tr.Add(mdast.KindParagraph, "", tr.Add(mdast.KindText, "hello"), tr.Add(mdast.KindText, " "))
	p2 := tr.Add(mdast.KindParagraph, "", tr.Add(mdast.KindText, ""), tr.Add(mdast.KindText, "world"))
	tr.Link(tr.Root, p1, p2)

	if _, err := newFormatter(t).Format(tr); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if diff := cmp.Diff([]string{"text:hello", "text: "}, values(tr, p1)); diff != "" {
		t.Errorf("first paragraph mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"text:", "text:world"}, values(tr, p2)); diff != "" {
		t.Errorf("second paragraph mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatIdempotent(t *testing.T) {
	tr := mdast.NewTree()
	tr.Link(tr.Root,
		tr.Add(mdast.KindHeading, "",
			tr.Add(mdast.KindText, "安装Go "),
			tr.Add(mdast.KindInlineCode, "1.26"),
			tr.Add(mdast.KindText, "版本")),
		tr.Add(mdast.KindParagraph, "",
			tr.Add(mdast.KindText, "使用"),
			tr.Add(mdast.KindEmphasis, "", tr.Add(mdast.KindText, " Go语言 ")),
			tr.Add(mdast.KindText, "  编写"),
			tr.Add(mdast.KindInlineMath, "  x  +  y "),
			tr.Add(mdast.KindText, "，以及"),
			tr.Add(mdast.KindLink, "", tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, "文档"))),
			tr.Add(mdast.KindText, " "),
			tr.Add(mdast.KindText, "README")),
		tr.Add(mdast.KindMath, "a = b  \n c  "),
		tr.Add(mdast.KindBlockquote, "",
			tr.Add(mdast.KindParagraph, "",
				tr.Add(mdast.KindImage, ""),
				tr.Add(mdast.KindText, "图片caption"))),
	)

	f := newFormatter(t)
	if _, err := f.Format(tr); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	first := tr.Clone()

	stats, err := f.Format(tr)
	if err != nil {
		t.Fatalf("second Format() error = %v", err)
	}
	if stats.Inserted != 0 || stats.Changed != 0 {
		t.Errorf("second pass changed tree: %+v", stats)
	}
	if diff := cmp.Diff(first, tr); diff != "" {
		t.Errorf("second pass mismatch (-first +second):\n%s", diff)
	}
}

func TestFormatIdempotentBlankText(t *testing.T) {
	tr, p := paragraph(func(tr *mdast.Tree) []mdast.NodeID {
		return []mdast.NodeID{
			tr.Add(mdast.KindText, "a "),
			tr.Add(mdast.KindLink, "",
				tr.Add(mdast.KindText, " "),
				tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, " "))),
		}
	})
	link := tr.Nodes[p].Children[1]

	f := newFormatter(t)
	if _, err := f.Format(tr); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	first := tr.Clone()
	if got := tr.Nodes[tr.Nodes[link].Children[0]].Value; got != " " {
		t.Errorf("link text = %q, want %q", got, " ")
	}

	for pass := 2; pass <= 3; pass++ {
		stats, err := f.Format(tr)
		if err != nil {
			t.Fatalf("Format() pass %d error = %v", pass, err)
		}
		if stats.Inserted != 0 || stats.Changed != 0 {
			t.Errorf("pass %d changed tree: %+v", pass, stats)
		}
		if diff := cmp.Diff(first, tr); diff != "" {
			t.Errorf("pass %d mismatch (-first +got):\n%s", pass, diff)
		}
	}
}

func TestFormatPendingSpace(t *testing.T) {
	tests := []struct {
		name     string
		build    func(tr *mdast.Tree) []mdast.NodeID
		want     []string
		inserted int
	}{
		{
			name: "carried through inline container",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{
					tr.Add(mdast.KindText, "a"),
					tr.Add(mdast.KindLink, "",
						tr.Add(mdast.KindText, " "),
						tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, "b"))),
					tr.Add(mdast.KindText, "c"),
				}
			},
			want:     []string{"text:a", "link:", "text: ", "text:c"},
			inserted: 1,
		},
		{
			name: "reset by opaque node",
			build: func(tr *mdast.Tree) []mdast.NodeID {
				return []mdast.NodeID{
					tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, "a")),
					tr.Add(mdast.KindText, " "),
					tr.Add(mdast.KindImage, ""),
					tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, "b")),
					tr.Add(mdast.KindText, "c"),
				}
			},
			want: []string{"strong:", "text: ", "image:", "strong:", "text:c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, p := paragraph(tt.build)
			stats, err := newFormatter(t).Format(tr)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, values(tr, p)); diff != "" {
				t.Errorf("children mismatch (-want +got):\n%s", diff)
			}
			if stats.Inserted != tt.inserted {
				t.Errorf("Inserted = %d, want %d", stats.Inserted, tt.inserted)
			}
		})
	}
}

func TestFormatMathBlock(t *testing.T) {
	tr := mdast.NewTree()
	m := tr.Append(tr.Root, mdast.KindMath, "a = b  \nc\t")
	code := tr.Append(tr.Root, mdast.KindCode, "x  ")

	if _, err := newFormatter(t).Format(tr); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := tr.Nodes[m].Value; got != "a = b\nc" {
		t.Errorf("math = %q", got)
	}
	if got := tr.Nodes[code].Value; got != "x  " {
		t.Errorf("code block changed to %q", got)
	}
}

func TestFormatOptions(t *testing.T) {
	build := func() (*mdast.Tree, mdast.NodeID, mdast.NodeID) {
		tr := mdast.NewTree()
		link := tr.Add(mdast.KindLink, "", tr.Add(mdast.KindText, "Go语言"))
		p := tr.Add(mdast.KindParagraph, "", tr.Add(mdast.KindText, "使用"), link, tr.Add(mdast.KindInlineMath, " x "))
		tr.Link(tr.Root, p)
		return tr, p, link
	}

	t.Run("skip", func(t *testing.T) {
		tr, p, link := build()
		stats, err := newFormatter(t, spacing.WithSkip(mdast.KindLink, mdast.KindText)).Format(tr)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if got := tr.Nodes[tr.Nodes[link].Children[0]].Value; got != "Go语言" {
			t.Errorf("skipped link text = %q", got)
		}
		if stats.Inserted != 0 || len(tr.Nodes[p].Children) != 3 {
			t.Errorf("boundary with skipped node was resolved: %+v", stats)
		}
		if got := tr.Nodes[tr.Nodes[p].Children[2]].Value; got != "x" {
			t.Errorf("math = %q, want x", got)
		}
	})

	t.Run("no normalization", func(t *testing.T) {
		tr, p, link := build()
		f := newFormatter(t, spacing.WithTextNormalization(false), spacing.WithMathNormalization(false))
		stats, err := f.Format(tr)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		// not normalized inside, but the boundary with math still adds a space
		if got := tr.Nodes[tr.Nodes[link].Children[0]].Value; got != "Go语言 " {
			t.Errorf("link text = %q", got)
		}
		if got := tr.Nodes[tr.Nodes[p].Children[len(tr.Nodes[p].Children)-1]].Value; got != " x " {
			t.Errorf("math = %q", got)
		}
		if stats.Inserted != 1 {
			t.Errorf("Inserted = %d, want 1", stats.Inserted)
		}
	})
}

func TestFormatEmptyContainer(t *testing.T) {
	tr, _ := paragraph(func(tr *mdast.Tree) []mdast.NodeID {
		return []mdast.NodeID{tr.Add(mdast.KindText, "A"), tr.Add(mdast.KindEmphasis, "")}
	})
	_, err := newFormatter(t).Format(tr)
	if !errors.Is(err, spacing.ErrEmptyContainer) {
		t.Errorf("Format() error = %v, want ErrEmptyContainer", err)
	}

	// single empty child has no boundary to look at
	tr, _ = paragraph(func(tr *mdast.Tree) []mdast.NodeID {
		return []mdast.NodeID{tr.Add(mdast.KindEmphasis, "")}
	})
	if _, err := newFormatter(t).Format(tr); err != nil {
		t.Errorf("Format() error = %v", err)
	}
}

var errBroken = errors.New("broken rules")

type brokenRules struct {
	*text.Rules
	failText   bool
	failJoin   bool
	failConcat bool
}

func (b brokenRules) NormalizeText(v string) (string, error) {
	if b.failText {
		return "", errBroken
	}
	return b.Rules.NormalizeText(v)
}

func (b brokenRules) ShouldAddSpace(l, r rune, had bool) (bool, error) {
	if b.failJoin {
		return false, errBroken
	}
	return b.Rules.ShouldAddSpace(l, r, had)
}

func (b brokenRules) ConcatToken(left, right string, pending bool) (spacing.Concat, error) {
	if b.failConcat {
		return spacing.Concat{}, errBroken
	}
	return b.Rules.ConcatToken(left, right, pending)
}

func TestFormatContract(t *testing.T) {
	tokens := func(tr *mdast.Tree) []mdast.NodeID {
		return []mdast.NodeID{tr.Add(mdast.KindText, "你好"), tr.Add(mdast.KindInlineCode, "x")}
	}
	texts := func(tr *mdast.Tree) []mdast.NodeID {
		return []mdast.NodeID{tr.Add(mdast.KindText, "你好"), tr.Add(mdast.KindStrong, "", tr.Add(mdast.KindText, "Go"))}
	}
	tests := []struct {
		name  string
		rules brokenRules
		build func(tr *mdast.Tree) []mdast.NodeID
	}{
		{"normalize", brokenRules{Rules: text.New(), failText: true}, tokens},
		{"boundary", brokenRules{Rules: text.New(), failJoin: true}, tokens},
		{"concat", brokenRules{Rules: text.New(), failConcat: true}, texts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := paragraph(tt.build)
			_, err := spacing.New(tt.rules).Format(tr)
			if !errors.Is(err, spacing.ErrContract) {
				t.Errorf("Format() error = %v, want ErrContract", err)
			}
			if !errors.Is(err, errBroken) {
				t.Errorf("Format() error = %v, want wrapped rules error", err)
			}
		})
	}
}
