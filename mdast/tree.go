// Package mdast keeps markdown syntax tree (mdast) in an arena of nodes
// addressed by index and moves it in and out of its JSON and YAML forms.
package mdast

import (
	"fmt"
	"maps"
	"slices"
)

// NodeID is an index of the node in Tree.Nodes.
type NodeID int

// Node is a single mdast node. Properties the formatter does not care about
// (position, url, depth, lang, ...) are kept in Props as decoded.
type Node struct {
	Kind Kind
	// Type is the mdast type name, it differs from Kind only for KindUnknown.
	Type     string
	Value    string
	Children []NodeID
	Props    map[string]any
}

// Tree is an arena of nodes. Nodes are only ever appended, so a NodeID stays
// valid for the lifetime of the tree. Pointers into Nodes do not.
type Tree struct {
	Nodes []Node
	Root  NodeID
}

// NewTree returns tree with an empty root node.
func NewTree() *Tree {
	t := &Tree{}
	t.Root = t.add(Node{Kind: KindRoot, Type: string(KindRoot)})
	return t
}

func (t *Tree) add(n Node) NodeID {
	t.Nodes = append(t.Nodes, n)
	return NodeID(len(t.Nodes) - 1)
}

// Append creates node of requested kind as the last child of parent.
func (t *Tree) Append(parent NodeID, kind Kind, value string) NodeID {
	id := t.add(Node{Kind: kind, Type: string(kind), Value: value})
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, id)
	return id
}

// Add creates detached node with provided children. Use it to build nested
// fragments bottom-up and link the top one with Link.
func (t *Tree) Add(kind Kind, value string, children ...NodeID) NodeID {
	return t.add(Node{Kind: kind, Type: string(kind), Value: value, Children: children})
}

// Link appends existing nodes to the children of parent.
func (t *Tree) Link(parent NodeID, children ...NodeID) {
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, children...)
}

// NewText creates detached text node, it is up to the caller to link it.
func (t *Tree) NewText(value string) NodeID {
	return t.add(Node{Kind: KindText, Type: string(KindText), Value: value})
}

// Walk visits every node reachable from the root in document order. Children
// of a node are skipped when fn returns false for it.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	t.walk(t.Root, 0, fn)
}

// WalkFrom is Walk starting at node id, depth is counted from it.
func (t *Tree) WalkFrom(id NodeID, fn func(id NodeID, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(id NodeID, depth int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, child := range t.Nodes[id].Children {
		t.walk(child, depth+1, fn)
	}
}

// Leaves counts reachable nodes which are not containers.
func (t *Tree) Leaves() int {
	count := 0
	t.Walk(func(id NodeID, _ int) bool {
		if !t.Nodes[id].Kind.IsContainer() {
			count++
			return false
		}
		return true
	})
	return count
}

// Clone returns deep copy of the tree. Props values are copied one level
// deep which is enough as nothing modifies them.
func (t *Tree) Clone() *Tree {
	out := &Tree{Root: t.Root, Nodes: make([]Node, len(t.Nodes))}
	for i, n := range t.Nodes {
		if n.Children != nil {
			n.Children = slices.Clone(n.Children)
		}
		if n.Props != nil {
			n.Props = maps.Clone(n.Props)
		}
		out.Nodes[i] = n
	}
	return out
}

// Position returns "line:column" of the node start when source position is
// known, empty string otherwise.
func (t *Tree) Position(id NodeID) string {
	pos, ok := t.Nodes[id].Props["position"].(map[string]any)
	if !ok {
		return ""
	}
	start, ok := pos["start"].(map[string]any)
	if !ok {
		return ""
	}
	line, col := start["line"], start["column"]
	if line == nil || col == nil {
		return ""
	}
	return fmt.Sprintf("%v:%v", line, col)
}

// Describe returns short node reference suitable for logs and errors.
func (t *Tree) Describe(id NodeID) string {
	n := &t.Nodes[id]
	if pos := t.Position(id); pos != "" {
		return fmt.Sprintf("%s[%d] at %s", n.Type, id, pos)
	}
	return fmt.Sprintf("%s[%d]", n.Type, id)
}
