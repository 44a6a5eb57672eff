package mdast

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// dumper produces indented human readable representation of the tree.
type dumper struct {
	b strings.Builder
}

func (d *dumper) line(depth int, format string, args ...any) {
	d.b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&d.b, format, args...)
	d.b.WriteByte('\n')
}

func (d *dumper) value(depth int, label, v string) {
	if v == "" {
		d.line(depth, "%s: <empty>", label)
		return
	}
	d.line(depth, "%s: %s", label, strconv.Quote(v))
}

// String returns debug dump of the tree: one line per node with its kind,
// id and position, quoted values, and names of other properties.
func (t *Tree) String() string {
	if t == nil || len(t.Nodes) == 0 {
		return "<empty tree>\n"
	}
	d := &dumper{}
	t.Walk(func(id NodeID, depth int) bool {
		n := &t.Nodes[id]
		head := n.Type
		if n.Kind == KindUnknown {
			head += " (unknown)"
		}
		if pos := t.Position(id); pos != "" {
			d.line(depth, "%s #%d @%s", head, id, pos)
		} else {
			d.line(depth, "%s #%d", head, id)
		}
		if n.Kind.HasValue() {
			d.value(depth+1, "value", n.Value)
		}
		if keys := propKeys(n.Props); len(keys) > 0 {
			d.line(depth+1, "props: %s", strings.Join(keys, ", "))
		}
		return n.Kind != KindUnknown
	})
	return d.b.String()
}

func propKeys(props map[string]any) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if k == "position" {
			continue
		}
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return keys
}
