package outline

import (
	"encoding/json"

	"beatline-cli/internal/model"
)

// All operations in this file are silent no-ops when the target id does not
// exist: the editor may race a deletion against a pending mutation intent,
// and stale ids must degrade gracefully rather than crash.

// editChildrenOf rebuilds the forest with edit applied to a copy of the
// children slice of parentID (the root slice when parentID is nil). Only the
// path from the edited slice up to the root is copied.
func editChildrenOf(tree []model.HierarchyNode, parentID *string, edit func([]model.HierarchyNode) []model.HierarchyNode) ([]model.HierarchyNode, bool) {
	if parentID == nil {
		cp := make([]model.HierarchyNode, len(tree))
		copy(cp, tree)
		return reindex(edit(cp)), true
	}
	return editChildrenByID(tree, *parentID, edit)
}

func editChildrenByID(tree []model.HierarchyNode, parentID string, edit func([]model.HierarchyNode) []model.HierarchyNode) ([]model.HierarchyNode, bool) {
	for i := range tree {
		if tree[i].ID == parentID {
			cp := make([]model.HierarchyNode, len(tree))
			copy(cp, tree)
			ch := make([]model.HierarchyNode, len(cp[i].Children))
			copy(ch, cp[i].Children)
			cp[i].Children = reindex(edit(ch))
			return cp, true
		}
		if ch, ok := editChildrenByID(tree[i].Children, parentID, edit); ok {
			cp := make([]model.HierarchyNode, len(tree))
			copy(cp, tree)
			cp[i].Children = ch
			return cp, true
		}
	}
	return nil, false
}

// editSiblingsOf rebuilds the forest with edit applied to a copy of the
// sibling slice containing id. edit receives the node's index in that copy.
func editSiblingsOf(tree []model.HierarchyNode, id string, edit func(sibs []model.HierarchyNode, idx int) []model.HierarchyNode) ([]model.HierarchyNode, bool) {
	for i := range tree {
		if tree[i].ID == id {
			cp := make([]model.HierarchyNode, len(tree))
			copy(cp, tree)
			return reindex(edit(cp, i)), true
		}
	}
	for i := range tree {
		if len(tree[i].Children) == 0 {
			continue
		}
		if ch, ok := editSiblingsOf(tree[i].Children, id, edit); ok {
			cp := make([]model.HierarchyNode, len(tree))
			copy(cp, tree)
			cp[i].Children = ch
			return cp, true
		}
	}
	return nil, false
}

func reindex(sibs []model.HierarchyNode) []model.HierarchyNode {
	for i := range sibs {
		sibs[i].OrderIndex = i
	}
	return sibs
}

func clampIndex(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if idx > length {
		return length
	}
	return idx
}

// InsertNode inserts node into the children of parentID (the root slice when
// parentID is nil) at index, clamped to [0, len]. The node's own ParentID is
// trusted to already match; InsertNode does not rewrite it.
func InsertNode(tree []model.HierarchyNode, node model.HierarchyNode, parentID *string, index int) []model.HierarchyNode {
	if node.Children == nil {
		node.Children = []model.HierarchyNode{}
	}
	out, ok := editChildrenOf(tree, parentID, func(ch []model.HierarchyNode) []model.HierarchyNode {
		i := clampIndex(index, len(ch))
		ch = append(ch, model.HierarchyNode{})
		copy(ch[i+1:], ch[i:])
		ch[i] = node
		return ch
	})
	if !ok {
		return tree
	}
	return out
}

// DeleteNode removes the node and its entire subtree. Children of a deleted
// node are deleted with it; no orphan reparenting occurs.
func DeleteNode(tree []model.HierarchyNode, id string) []model.HierarchyNode {
	out, ok := editSiblingsOf(tree, id, func(sibs []model.HierarchyNode, idx int) []model.HierarchyNode {
		return append(sibs[:idx], sibs[idx+1:]...)
	})
	if !ok {
		return tree
	}
	return out
}

// NodeUpdate is a partial scalar patch. Nil fields are left untouched;
// children and id are never altered through an update.
type NodeUpdate struct {
	Label        *string
	Type         *model.NodeType
	Collapsed    *bool
	Properties   map[string]any
	Content      json.RawMessage
	VisualIndent *int

	LinkedDocumentID    *string
	LinkedDocumentTitle *string
}

// UpdateNode applies a scalar patch to the node with this id.
func UpdateNode(tree []model.HierarchyNode, id string, upd NodeUpdate) []model.HierarchyNode {
	out, ok := editSiblingsOf(tree, id, func(sibs []model.HierarchyNode, idx int) []model.HierarchyNode {
		n := &sibs[idx]
		if upd.Label != nil {
			n.Label = *upd.Label
		}
		if upd.Type != nil {
			n.Type = *upd.Type
		}
		if upd.Collapsed != nil {
			n.Collapsed = *upd.Collapsed
		}
		if upd.Properties != nil {
			n.Properties = upd.Properties
		}
		if upd.Content != nil {
			n.Content = upd.Content
		}
		if upd.VisualIndent != nil {
			n.VisualIndent = upd.VisualIndent
		}
		if upd.LinkedDocumentID != nil {
			n.LinkedDocumentID = *upd.LinkedDocumentID
		}
		if upd.LinkedDocumentTitle != nil {
			n.LinkedDocumentTitle = *upd.LinkedDocumentTitle
		}
		return sibs
	})
	if !ok {
		return tree
	}
	return out
}

// MoveNode detaches the node's whole subtree and reinserts it under
// newParentID at newIndex. Moving a node into its own descendant would
// create a cycle and is rejected as a no-op.
func MoveNode(tree []model.HierarchyNode, nodeID string, newParentID *string, newIndex int) []model.HierarchyNode {
	moved := FindNode(tree, nodeID)
	if moved == nil {
		return tree
	}
	if newParentID != nil {
		if *newParentID == nodeID || containsNode(*moved, *newParentID) {
			return tree
		}
		if FindNode(tree, *newParentID) == nil {
			return tree
		}
	}

	node := *moved
	node.ParentID = newParentID
	without := DeleteNode(tree, nodeID)
	return InsertNode(without, node, newParentID, newIndex)
}

// IndentNode makes the node the last child of its immediately preceding
// sibling. No-op when there is no preceding sibling.
func IndentNode(tree []model.HierarchyNode, nodeID string) []model.HierarchyNode {
	out, ok := editSiblingsOf(tree, nodeID, func(sibs []model.HierarchyNode, idx int) []model.HierarchyNode {
		if idx == 0 {
			return sibs
		}
		node := sibs[idx]
		prev := &sibs[idx-1]
		pid := prev.ID
		node.ParentID = &pid
		ch := make([]model.HierarchyNode, len(prev.Children), len(prev.Children)+1)
		copy(ch, prev.Children)
		prev.Children = reindex(append(ch, node))
		return append(sibs[:idx], sibs[idx+1:]...)
	})
	if !ok {
		return tree
	}
	return out
}

// OutdentNode makes the node a sibling of its current parent, inserted
// immediately after it. No-op for root-level nodes.
func OutdentNode(tree []model.HierarchyNode, nodeID string) []model.HierarchyNode {
	node := FindNode(tree, nodeID)
	if node == nil || node.ParentID == nil {
		return tree
	}
	parent := FindNode(tree, *node.ParentID)
	if parent == nil {
		return tree
	}

	detached := *node
	detached.ParentID = parent.ParentID
	parentID := parent.ID

	without := DeleteNode(tree, nodeID)
	out, ok := editSiblingsOf(without, parentID, func(sibs []model.HierarchyNode, idx int) []model.HierarchyNode {
		sibs = append(sibs, model.HierarchyNode{})
		copy(sibs[idx+2:], sibs[idx+1:])
		sibs[idx+1] = detached
		return sibs
	})
	if !ok {
		return tree
	}
	return out
}

// ToggleCollapse flips the collapsed flag; children are untouched.
func ToggleCollapse(tree []model.HierarchyNode, nodeID string) []model.HierarchyNode {
	out, ok := editSiblingsOf(tree, nodeID, func(sibs []model.HierarchyNode, idx int) []model.HierarchyNode {
		sibs[idx].Collapsed = !sibs[idx].Collapsed
		return sibs
	})
	if !ok {
		return tree
	}
	return out
}
