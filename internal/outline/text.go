package outline

import (
	"strings"

	"beatline-cli/internal/model"
)

// PlainText renders the forest as indented plain text, two spaces per depth
// level. Collapsed state is ignored: text export always covers the whole
// tree. Labels may contain embedded newlines (soft breaks); continuation
// lines keep the node's indentation.
func PlainText(tree []model.HierarchyNode) string {
	var b strings.Builder
	var walk func(nodes []model.HierarchyNode, depth int)
	walk = func(nodes []model.HierarchyNode, depth int) {
		for i := range nodes {
			indent := strings.Repeat("  ", depth)
			for _, line := range strings.Split(nodes[i].Label, "\n") {
				b.WriteString(indent)
				b.WriteString(line)
				b.WriteString("\n")
			}
			walk(nodes[i].Children, depth+1)
		}
	}
	walk(tree, 0)
	return b.String()
}

// Labels returns the flat rows' label text in render order. This is the
// accessor the scanning features (entity usage, citation extraction, full
// text search) read from.
func Labels(flat []model.FlatNode) []string {
	out := make([]string, len(flat))
	for i := range flat {
		out[i] = flat[i].Label
	}
	return out
}
