package parse

import (
	"strings"

	"beatline-cli/internal/model"
)

// maxDepth bounds pathological pastes (runaway indentation, broken
// generators). Matches the engine's import clamp.
const maxDepth = 6

// title keywords that mark the first line as a document title in
// date/section mode even when it is short.
var titleKeywords = []string{
	"timeline", "outline", "chronology", "history",
	"project", "summary", "overview", "notes", "draft",
}

// ParseHierarchy infers a depth for every non-blank line of the analysis.
// Three modes, picked by which signal dominates:
//
//  1. traditional: at least two lines carry classic prefixes; depth is the
//     larger of first-seen prefix-type order and raw indentation
//  2. date/section: date lines present, or header lines in a paste with no
//     indentation of its own; headers open sections, dates nest under
//     sections, content nests under the latest date
//  3. indentation-only: depth is the raw indent level
//
// Depths are normalized so the minimum is 0 and clamped to maxDepth.
// Blank lines never produce an item.
func ParseHierarchy(a Analysis) []model.ImportItem {
	prefixed := 0
	dates := 0
	headers := 0
	indents := map[int]bool{}
	for _, ln := range a.Lines {
		if ln.Blank {
			continue
		}
		if ln.Prefix != PrefixNone {
			prefixed++
		}
		if ln.IsDate {
			dates++
		}
		if ln.IsHeader {
			headers++
		}
		indents[ln.Indent] = true
	}

	var items []model.ImportItem
	switch {
	case prefixed >= 2:
		items = parseTraditional(a.Lines)
	case dates > 0:
		items = parseDateSections(a.Lines)
	case headers > 0 && len(indents) < 2:
		// Header shape alone is weak evidence: short title-case lines
		// also occur in indentation outlines. Sections win only when the
		// lines carry no indentation signal to follow instead.
		items = parseDateSections(a.Lines)
	default:
		items = parseIndentation(a.Lines)
	}
	return normalizeDepths(items)
}

func parseTraditional(lines []Line) []model.ImportItem {
	// Prefix types are assigned depths in the order they first appear:
	// whatever prefixes the top level ("1.") is depth 0, the next new type
	// ("a.") is depth 1, and so on. Raw indentation can only deepen that.
	typeDepth := map[PrefixType]int{}
	out := []model.ImportItem{}
	for _, ln := range lines {
		if ln.Blank {
			continue
		}
		depth := ln.Indent
		if ln.Prefix != PrefixNone {
			d, seen := typeDepth[ln.Prefix]
			if !seen {
				d = len(typeDepth)
				typeDepth[ln.Prefix] = d
			}
			if d > depth {
				depth = d
			}
		}
		out = append(out, model.ImportItem{Label: ln.Text, Depth: depth})
	}
	return out
}

func parseDateSections(lines []Line) []model.ImportItem {
	out := []model.ImportItem{}

	titleOffset := 0
	sawFirst := false
	sectionDepth := -1 // depth of the active section header, -1 when none
	dateDepth := -1    // depth of the most recent date line, -1 when none

	for _, ln := range lines {
		if ln.Blank {
			continue
		}

		// The first line wins the title slot even when it also matches
		// the section-header shape ("Kerouac Project Timeline").
		if !sawFirst {
			sawFirst = true
			if !ln.IsDate && looksLikeTitle(ln.Text) {
				out = append(out, model.ImportItem{Label: ln.Text, Depth: 0})
				titleOffset = 1
				continue
			}
		}

		switch {
		case ln.IsHeader:
			sectionDepth = titleOffset
			dateDepth = -1
			out = append(out, model.ImportItem{Label: ln.Text, Depth: sectionDepth})
		case ln.IsDate:
			d := titleOffset
			if sectionDepth >= 0 {
				d = sectionDepth + 1
			}
			dateDepth = d
			out = append(out, model.ImportItem{Label: ln.Text, Depth: d})
		default:
			d := titleOffset
			if dateDepth >= 0 {
				d = dateDepth + 1
			} else if sectionDepth >= 0 {
				d = sectionDepth + 1
			}
			out = append(out, model.ImportItem{Label: ln.Text, Depth: d})
		}
	}
	return out
}

func looksLikeTitle(text string) bool {
	if len(text) > 30 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range titleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func parseIndentation(lines []Line) []model.ImportItem {
	out := []model.ImportItem{}
	for _, ln := range lines {
		if ln.Blank {
			continue
		}
		out = append(out, model.ImportItem{Label: ln.Text, Depth: ln.Indent})
	}
	return out
}

func normalizeDepths(items []model.ImportItem) []model.ImportItem {
	if len(items) == 0 {
		return []model.ImportItem{}
	}
	min := items[0].Depth
	for _, it := range items[1:] {
		if it.Depth < min {
			min = it.Depth
		}
	}
	for i := range items {
		d := items[i].Depth - min
		if d > maxDepth {
			d = maxDepth
		}
		items[i].Depth = d
	}
	return items
}

// Items is the one-call smart-paste entry point: markdown goes through the
// goldmark importer, text with outline patterns through hierarchy inference,
// and anything else becomes a flat depth-0 list.
func Items(text string) []model.ImportItem {
	if IsLikelyMarkdown(text) {
		if items := ParseMarkdown(text); len(items) > 0 {
			return items
		}
	}
	a := Analyze(text)
	if a.HasOutlinePatterns {
		return ParseHierarchy(a)
	}
	items := []model.ImportItem{}
	for _, ln := range a.Lines {
		if ln.Blank {
			continue
		}
		items = append(items, model.ImportItem{Label: ln.Text, Depth: 0})
	}
	return items
}

// StripPrefixes returns the input lines with any detected outline prefixes
// removed, preserving line order, blank lines, and leading indentation. This
// powers "paste as plain list" and needs no hierarchy inference at all.
func StripPrefixes(text string) []string {
	a := Analyze(text)
	out := make([]string, 0, len(a.Lines))
	for _, ln := range a.Lines {
		if ln.Blank {
			out = append(out, "")
			continue
		}
		ws := ln.Raw[:len(ln.Raw)-len(strings.TrimLeft(ln.Raw, " \t"))]
		out = append(out, ws+ln.Text)
	}
	return out
}
