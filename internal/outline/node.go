// Package outline implements the outline hierarchy engine: an immutable
// node forest with structural mutation operations, flattening into a
// renderable row list, and hierarchical numbering.
//
// All mutation functions return a new forest and copy only the path from the
// mutated node up to the root; untouched sibling subtrees are shared, so a
// consumer can detect change by comparing slices. Flattening and numbering
// are recomputed from scratch after every mutation rather than maintained
// incrementally. Outlines are hundreds of nodes, not millions; if that ever
// changes, the flatten/number passes are the first place to memoize.
package outline

import (
	"beatline-cli/internal/model"
	"beatline-cli/internal/store"
)

// NewNode returns a fresh node with a generated id, no children, expanded.
func NewNode(parentID *string, typ model.NodeType, label string) model.HierarchyNode {
	if typ == "" {
		typ = model.NodeDefault
	}
	return model.HierarchyNode{
		ID:       store.NewNodeID(),
		ParentID: parentID,
		Type:     typ,
		Label:    label,
		Children: []model.HierarchyNode{},
	}
}

// FindNode returns the node with the given id, depth-first, or nil.
// The returned pointer aliases the forest; callers must not mutate through it.
func FindNode(tree []model.HierarchyNode, id string) *model.HierarchyNode {
	for i := range tree {
		if tree[i].ID == id {
			return &tree[i]
		}
		if n := FindNode(tree[i].Children, id); n != nil {
			return n
		}
	}
	return nil
}

// Siblings returns the sibling slice containing the node with this id:
// either the root slice or some ancestor's children. Nil when absent.
func Siblings(tree []model.HierarchyNode, id string) []model.HierarchyNode {
	for i := range tree {
		if tree[i].ID == id {
			return tree
		}
		if sibs := Siblings(tree[i].Children, id); sibs != nil {
			return sibs
		}
	}
	return nil
}

// NodeIndex returns the position of id within a sibling slice, or -1.
func NodeIndex(siblings []model.HierarchyNode, id string) int {
	for i := range siblings {
		if siblings[i].ID == id {
			return i
		}
	}
	return -1
}

// Normalize returns a copy of the forest with non-nil children slices and
// OrderIndex mirroring slice position at every level. Persisted trees are
// normalized on load so empty children round-trip as [] rather than null.
func Normalize(tree []model.HierarchyNode) []model.HierarchyNode {
	out := make([]model.HierarchyNode, len(tree))
	copy(out, tree)
	for i := range out {
		out[i].OrderIndex = i
		if out[i].Type == "" {
			out[i].Type = model.NodeDefault
		}
		if out[i].Children == nil {
			out[i].Children = []model.HierarchyNode{}
			continue
		}
		out[i].Children = Normalize(out[i].Children)
	}
	return out
}

// CountNodes returns the total number of nodes in the forest.
func CountNodes(tree []model.HierarchyNode) int {
	n := 0
	for i := range tree {
		n += 1 + CountNodes(tree[i].Children)
	}
	return n
}

// containsNode reports whether id occurs anywhere inside the subtree rooted
// at node (the node itself included).
func containsNode(node model.HierarchyNode, id string) bool {
	if node.ID == id {
		return true
	}
	for i := range node.Children {
		if containsNode(node.Children[i], id) {
			return true
		}
	}
	return false
}
