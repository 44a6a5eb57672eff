package mdast

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"lfmt/common"
)

// ErrMalformed is returned when input does not describe mdast tree.
var ErrMalformed = errors.New("malformed mdast tree")

// Decode reads tree serialized as JSON or YAML. UTF-16 input with BOM is
// converted, UTF-8 BOM is dropped.
func Decode(r io.Reader, f common.TreeFmt) (*Tree, error) {
	r = transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	var raw any
	switch f {
	case common.TreeFmtJson:
		if err := json.NewDecoder(r).Decode(&raw); err != nil {
			return nil, fmt.Errorf("unable to decode json: %w", err)
		}
	case common.TreeFmtYaml:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: empty document", ErrMalformed)
			}
			return nil, fmt.Errorf("unable to decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tree format %d", f)
	}

	t := &Tree{}
	root, err := t.build(raw, "$")
	if err != nil {
		return nil, err
	}
	if t.Nodes[root].Kind != KindRoot {
		return nil, fmt.Errorf("%w: top level node is %q, not root", ErrMalformed, t.Nodes[root].Type)
	}
	t.Root = root
	return t, nil
}

func (t *Tree) build(raw any, path string) (NodeID, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not an object", ErrMalformed, path)
	}
	name, ok := m["type"].(string)
	if !ok || name == "" {
		return 0, fmt.Errorf("%w: %s has no type", ErrMalformed, path)
	}

	n := Node{Kind: ParseKind(name), Type: name}
	if n.Kind.HasValue() {
		v, ok := m["value"].(string)
		if !ok {
			return 0, fmt.Errorf("%w: %s (%s) has no string value", ErrMalformed, path, name)
		}
		n.Value = v
	}
	for k, v := range m {
		switch k {
		case "type", "children":
		case "value":
			if !n.Kind.HasValue() {
				n.setProp(k, v)
			}
		default:
			n.setProp(k, v)
		}
	}
	id := t.add(n)

	children, present := m["children"]
	if !present || children == nil {
		if n.Kind.IsContainer() {
			// mdast containers always have children, accept trees which omit empty lists
			t.Nodes[id].Children = []NodeID{}
		}
		return id, nil
	}
	list, ok := children.([]any)
	if !ok {
		return 0, fmt.Errorf("%w: %s (%s) children is not a list", ErrMalformed, path, name)
	}
	ids := make([]NodeID, 0, len(list))
	for i, c := range list {
		cid, err := t.build(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return 0, err
		}
		ids = append(ids, cid)
	}
	t.Nodes[id].Children = ids
	return id, nil
}

func (n *Node) setProp(k string, v any) {
	if n.Props == nil {
		n.Props = make(map[string]any)
	}
	n.Props[k] = v
}
