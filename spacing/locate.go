package spacing

import (
	"fmt"

	"lfmt/mdast"
)

// firstLeaf returns the leaf touching the start of the node. Containers in
// stop are not descended into and are returned as leaves.
func firstLeaf(tree *mdast.Tree, id mdast.NodeID, stop map[mdast.Kind]bool) (mdast.NodeID, error) {
	return descend(tree, id, stop, func(children []mdast.NodeID) mdast.NodeID {
		return children[0]
	})
}

// lastLeaf returns the leaf touching the end of the node.
func lastLeaf(tree *mdast.Tree, id mdast.NodeID, stop map[mdast.Kind]bool) (mdast.NodeID, error) {
	return descend(tree, id, stop, func(children []mdast.NodeID) mdast.NodeID {
		return children[len(children)-1]
	})
}

func descend(tree *mdast.Tree, id mdast.NodeID, stop map[mdast.Kind]bool, pick func([]mdast.NodeID) mdast.NodeID) (mdast.NodeID, error) {
	for {
		n := &tree.Nodes[id]
		if !n.Kind.IsContainer() || stop[n.Kind] {
			return id, nil
		}
		if len(n.Children) == 0 {
			return 0, fmt.Errorf("%w: %s", ErrEmptyContainer, tree.Describe(id))
		}
		id = pick(n.Children)
	}
}
