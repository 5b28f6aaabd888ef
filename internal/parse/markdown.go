package parse

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"beatline-cli/internal/model"
)

var (
	reMDHeading = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	reMDListing = regexp.MustCompile(`(?m)^\s*[-*+]\s+\S`)
)

// IsLikelyMarkdown reports whether pasted text should go through the
// markdown importer instead of plain-text hierarchy inference.
func IsLikelyMarkdown(source string) bool {
	if reMDHeading.MatchString(source) {
		return true
	}
	return len(reMDListing.FindAllString(source, 3)) >= 2
}

// ParseMarkdown converts a markdown document into import items. Headings
// map to depths relative to the shallowest heading level in the document,
// list items nest under the current heading, and loose paragraphs become
// body-level items under the current heading.
func ParseMarkdown(source string) []model.ImportItem {
	md := goldmark.New()
	src := []byte(source)
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	// Relative heading depth: a document whose shallowest heading is
	// "##" still starts at depth 0.
	minLevel := 7
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering && h.Level < minLevel {
			minLevel = h.Level
		}
		return ast.WalkContinue, nil
	})

	var items []model.ImportItem
	headingDepth := -1
	listDepth := 0

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.List:
			if entering {
				listDepth++
			} else {
				listDepth--
			}
		case *ast.Heading:
			if !entering {
				return ast.WalkContinue, nil
			}
			headingDepth = node.Level - minLevel
			items = append(items, model.ImportItem{
				Label: nodeText(node, src),
				Depth: headingDepth,
			})
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			if !entering {
				return ast.WalkContinue, nil
			}
			label := ""
			if first := node.FirstChild(); first != nil {
				label = nodeText(first, src)
			}
			if label != "" {
				items = append(items, model.ImportItem{
					Label: label,
					Depth: headingDepth + listDepth,
				})
			}
		case *ast.Paragraph:
			if !entering {
				return ast.WalkContinue, nil
			}
			if _, inList := node.Parent().(*ast.ListItem); inList {
				return ast.WalkSkipChildren, nil
			}
			label := nodeText(node, src)
			if label != "" {
				items = append(items, model.ImportItem{
					Label: label,
					Depth: headingDepth + 1,
				})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return normalizeDepths(items)
}

// nodeText flattens a node's inline content to plain text.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
