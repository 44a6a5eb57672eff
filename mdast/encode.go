package mdast

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"lfmt/common"
)

// Encode writes tree in requested serialization. Node properties are written
// back as they were decoded, so decode followed by encode does not lose data.
func Encode(w io.Writer, t *Tree, f common.TreeFmt) error {
	doc := t.toMap(t.Root)

	switch f {
	case common.TreeFmtJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("unable to encode json: %w", err)
		}
	case common.TreeFmtYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("unable to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("unable to finish yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported tree format %d", f)
	}
	return nil
}

func (t *Tree) toMap(id NodeID) map[string]any {
	n := &t.Nodes[id]

	m := make(map[string]any, len(n.Props)+3)
	for k, v := range n.Props {
		m[k] = v
	}
	m["type"] = n.Type
	if n.Kind.HasValue() {
		m["value"] = n.Value
	}
	// nil children means the list was absent in the source
	if n.Kind.IsContainer() || n.Children != nil {
		children := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, t.toMap(c))
		}
		m["children"] = children
	}
	return m
}
