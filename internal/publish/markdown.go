// Package publish renders documents to markdown or plain text for export.
package publish

import (
	"bytes"
	"strings"

	"beatline-cli/internal/model"
	"beatline-cli/internal/outline"
	"beatline-cli/internal/style"
)

type RenderOptions struct {
	Style style.Config
	// ExpandCollapsed includes rows hidden by collapsed ancestors.
	ExpandCollapsed bool
}

// RenderDocumentMarkdown renders the document title plus every outline block
// as a prefixed list. Outline rows render as list lines with their computed
// numbering prefix; body rows render as indented paragraphs under the
// preceding row. Underline/italic decorations map to markdown emphasis.
func RenderDocumentMarkdown(doc model.Document, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(doc.Title)
	if title != "" {
		writeLn("# " + title)
	}

	for _, blk := range doc.Blocks {
		flat := flatRows(blk.Tree, opt)
		if len(flat) == 0 {
			continue
		}
		writeLn("")
		indexes := outline.NumberIndexes(flat)
		for i := range flat {
			indent := strings.Repeat("  ", flat[i].Depth)
			if flat[i].Type == model.NodeBody {
				writeLn("")
				writeLn(indent + flat[i].Label)
				continue
			}
			p := style.FormatPrefix(flat[i].Depth, indexes[i], opt.Style)
			label := flat[i].Label
			if p.Italic {
				label = "*" + label + "*"
			}
			if p.Underline {
				// Markdown has no underline; bold is the closest rendering.
				label = "**" + label + "**"
			}
			writeLn(indent + renderPrefix(p) + label)
		}
	}
	return buf.String()
}

// RenderDocumentText is the plain-text form: title underlined with '=',
// same row layout, no emphasis markers.
func RenderDocumentText(doc model.Document, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(doc.Title)
	if title != "" {
		writeLn(title)
		writeLn(strings.Repeat("=", len([]rune(title))))
	}

	for _, blk := range doc.Blocks {
		flat := flatRows(blk.Tree, opt)
		if len(flat) == 0 {
			continue
		}
		writeLn("")
		indexes := outline.NumberIndexes(flat)
		for i := range flat {
			indent := strings.Repeat("  ", flat[i].Depth)
			if flat[i].Type == model.NodeBody {
				writeLn(indent + flat[i].Label)
				continue
			}
			p := style.FormatPrefix(flat[i].Depth, indexes[i], opt.Style)
			writeLn(indent + renderPrefix(p) + flat[i].Label)
		}
	}
	return buf.String()
}

func flatRows(tree []model.HierarchyNode, opt RenderOptions) []model.FlatNode {
	if opt.ExpandCollapsed {
		return outline.FlattenAll(tree)
	}
	return outline.Flatten(tree)
}

func renderPrefix(p style.Prefix) string {
	s := p.String()
	if s == "" {
		return ""
	}
	return s + " "
}
