package outline

import "beatline-cli/internal/model"

// maxImportDepth bounds pathological inputs (deeply indented pastes, broken
// depth sequences from external generators).
const maxImportDepth = 6

// BuildTree constructs a forest from a flat import-item sequence. Depths need
// not be pre-normalized: the minimum observed depth becomes the root level,
// and a child level is any run of deeper items following its parent (a jump
// from depth 0 to depth 3 still nests directly under the depth-0 item).
func BuildTree(items []model.ImportItem) []model.HierarchyNode {
	if len(items) == 0 {
		return []model.HierarchyNode{}
	}

	min := items[0].Depth
	for _, it := range items[1:] {
		if it.Depth < min {
			min = it.Depth
		}
	}
	norm := make([]model.ImportItem, 0, len(items))
	for _, it := range items {
		d := it.Depth - min
		if d > maxImportDepth {
			d = maxImportDepth
		}
		norm = append(norm, model.ImportItem{Label: it.Label, Depth: d})
	}

	pos := 0
	var build func(depth int, parentID *string) []model.HierarchyNode
	build = func(depth int, parentID *string) []model.HierarchyNode {
		out := []model.HierarchyNode{}
		for pos < len(norm) {
			if norm[pos].Depth < depth {
				return reindex(out)
			}
			n := NewNode(parentID, model.NodeDefault, norm[pos].Label)
			pos++
			if pos < len(norm) && norm[pos].Depth > depth {
				n.Children = build(norm[pos].Depth, &n.ID)
			}
			out = append(out, n)
		}
		return reindex(out)
	}
	return build(norm[0].Depth, nil)
}

// ImportInto builds a forest from items and inserts its roots into the
// children of parentID starting at index. The unmodified tree is returned
// when items are empty or the parent id is unknown.
func ImportInto(tree []model.HierarchyNode, parentID *string, index int, items []model.ImportItem) []model.HierarchyNode {
	roots := BuildTree(items)
	out := tree
	for i := range roots {
		roots[i].ParentID = parentID
		out = InsertNode(out, roots[i], parentID, index+i)
	}
	return out
}

// Rebuild reconstructs a forest from a flattened row list using each row's
// depth and ancestor chain. Collapsed subtrees were omitted by Flatten and
// are therefore absent from the result; this is the flatten round-trip.
func Rebuild(flat []model.FlatNode) []model.HierarchyNode {
	roots := []model.HierarchyNode{}

	// Stack of pointers to the node currently open at each depth. Pointers
	// stay valid because children slices are only appended to through the
	// stack's deepest entry.
	var attach func(dst *[]model.HierarchyNode, f model.FlatNode) *model.HierarchyNode
	attach = func(dst *[]model.HierarchyNode, f model.FlatNode) *model.HierarchyNode {
		*dst = append(*dst, model.HierarchyNode{
			ID:                  f.ID,
			ParentID:            f.ParentID,
			OrderIndex:          len(*dst),
			Type:                f.Type,
			Label:               f.Label,
			Properties:          f.Properties,
			Collapsed:           f.Collapsed,
			Content:             f.Content,
			VisualIndent:        f.VisualIndent,
			LinkedDocumentID:    f.LinkedDocumentID,
			LinkedDocumentTitle: f.LinkedDocumentTitle,
			Children:            []model.HierarchyNode{},
		})
		return &(*dst)[len(*dst)-1]
	}

	stack := []*model.HierarchyNode{}
	for _, f := range flat {
		d := f.Depth
		if d > len(stack) {
			d = len(stack)
		}
		stack = stack[:d]
		if len(stack) == 0 {
			stack = append(stack, attach(&roots, f))
			continue
		}
		parent := stack[len(stack)-1]
		stack = append(stack, attach(&parent.Children, f))
	}
	return roots
}
