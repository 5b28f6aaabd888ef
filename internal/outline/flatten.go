package outline

import "beatline-cli/internal/model"

// Flatten converts the forest into the ordered row list the renderer
// consumes: pre-order traversal, collapsed subtrees skipped entirely (their
// nodes stay in the tree but produce no rows).
func Flatten(tree []model.HierarchyNode) []model.FlatNode {
	return flatten(tree, true)
}

// FlattenAll is Flatten without collapse filtering. Scanning and export
// must see every node regardless of view state.
func FlattenAll(tree []model.HierarchyNode) []model.FlatNode {
	return flatten(tree, false)
}

func flatten(tree []model.HierarchyNode, skipCollapsed bool) []model.FlatNode {
	out := []model.FlatNode{}
	var walk func(nodes []model.HierarchyNode, depth int, ancestors []string)
	walk = func(nodes []model.HierarchyNode, depth int, ancestors []string) {
		for i := range nodes {
			n := &nodes[i]
			out = append(out, model.FlatNode{
				ID:                  n.ID,
				ParentID:            n.ParentID,
				OrderIndex:          i,
				Type:                n.Type,
				Label:               n.Label,
				Properties:          n.Properties,
				Collapsed:           n.Collapsed,
				Content:             n.Content,
				VisualIndent:        n.VisualIndent,
				LinkedDocumentID:    n.LinkedDocumentID,
				LinkedDocumentTitle: n.LinkedDocumentTitle,
				Depth:               depth,
				HasChildren:         len(n.Children) > 0,
				IsLastChild:         i == len(nodes)-1,
				AncestorIDs:         ancestors,
			})
			if (skipCollapsed && n.Collapsed) || len(n.Children) == 0 {
				continue
			}
			childAncestors := make([]string, len(ancestors), len(ancestors)+1)
			copy(childAncestors, ancestors)
			walk(n.Children, depth+1, append(childAncestors, n.ID))
		}
	}
	walk(tree, 0, []string{})
	return out
}

// NumberIndexes computes the hierarchical numbering index for each flat row,
// aligned by position. Each index is a 1-based counter per depth level up to
// the row's own depth (e.g. [2 1 3] = 2nd root, 1st child, 3rd grandchild).
//
// Body rows copy the current counters without consuming an increment: they
// inherit the location of the nearest preceding numbered row. Counters for
// levels deeper than the current row are discarded, so re-entering a deeper
// level restarts at 1. Collapsed subtrees are simply absent from the flat
// list and therefore never counted.
func NumberIndexes(flat []model.FlatNode) [][]int {
	out := make([][]int, len(flat))
	counters := []int{}
	for i := range flat {
		d := flat[i].Depth

		if flat[i].Type == model.NodeBody {
			n := d + 1
			if n > len(counters) {
				n = len(counters)
			}
			idx := make([]int, n)
			copy(idx, counters[:n])
			out[i] = idx
			continue
		}

		if d+1 > len(counters) {
			grown := make([]int, d+1)
			copy(grown, counters)
			counters = grown
		} else {
			counters = counters[:d+1]
		}
		counters[d]++

		idx := make([]int, d+1)
		copy(idx, counters)
		out[i] = idx
	}
	return out
}
