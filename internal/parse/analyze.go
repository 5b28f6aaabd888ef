// Package parse is the smart-paste pipeline: it inspects arbitrary pasted or
// uploaded text, decides whether it looks like an outline, and infers a
// {label, depth} item sequence from prefixes, dates, section headers, or raw
// indentation. The pipeline never fails; unrecognizable input degrades to a
// flat depth-0 list.
package parse

import (
	"regexp"
	"strings"
)

type PrefixType string

const (
	PrefixNone          PrefixType = ""
	PrefixNumbered      PrefixType = "numbered"
	PrefixLettered      PrefixType = "lettered"
	PrefixRoman         PrefixType = "roman"
	PrefixBulleted      PrefixType = "bulleted"
	PrefixParenthesized PrefixType = "parenthesized"
)

// Line is one analyzed input line.
type Line struct {
	Raw      string
	Text     string // remainder after the detected prefix is stripped
	Prefix   PrefixType
	Indent   int // leading-whitespace indent level (tab = 4 spaces, 2 spaces = 1 level)
	IsDate   bool
	IsHeader bool
	Blank    bool
}

// Analysis is the per-line classification plus the document-level verdict.
type Analysis struct {
	Lines              []Line
	HasOutlinePatterns bool
}

// Prefix matchers in priority order. Single i/v/x letters deliberately
// classify as lettered, not roman, because lettered is tried first.
var (
	reNumbered      = regexp.MustCompile(`^(\d+)[.)]\s+`)
	reLettered      = regexp.MustCompile(`^([a-z])[.)]\s+`)
	reRoman         = regexp.MustCompile(`^([ivx]+)[.)]\s+`)
	reBulleted      = regexp.MustCompile(`^([•◦\-*])\s+`)
	reParenthesized = regexp.MustCompile(`^\((\d+|[a-z]|[ivx]+)\)\s+`)
)

var prefixMatchers = []struct {
	typ PrefixType
	re  *regexp.Regexp
}{
	{PrefixNumbered, reNumbered},
	{PrefixLettered, reLettered},
	{PrefixRoman, reRoman},
	{PrefixBulleted, reBulleted},
	{PrefixParenthesized, reParenthesized},
}

// Analyze classifies every line of the pasted text and decides whether the
// document as a whole looks like an outline. The thresholds deliberately
// tolerate false negatives: plain prose must not be mistaken for an outline.
func Analyze(text string) Analysis {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]Line, 0, len(raw))

	for _, r := range raw {
		trimmed := strings.TrimSpace(r)
		if trimmed == "" {
			lines = append(lines, Line{Raw: r, Blank: true})
			continue
		}

		ln := Line{
			Raw:    r,
			Text:   trimmed,
			Indent: indentLevel(r),
		}
		for _, m := range prefixMatchers {
			if loc := m.re.FindStringSubmatchIndex(trimmed); loc != nil {
				ln.Prefix = m.typ
				ln.Text = strings.TrimSpace(trimmed[loc[1]:])
				break
			}
		}
		if ln.Prefix == PrefixNone {
			ln.IsDate = isDateLine(trimmed)
			if !ln.IsDate {
				ln.IsHeader = isSectionHeader(trimmed)
			}
		}
		lines = append(lines, ln)
	}

	return Analysis{
		Lines:              lines,
		HasOutlinePatterns: hasOutlinePatterns(lines),
	}
}

// indentLevel derives a 0-based indent level from leading whitespace:
// tabs count as 4 spaces, every 2 spaces is one level.
func indentLevel(raw string) int {
	spaces := 0
	for _, r := range raw {
		switch r {
		case ' ':
			spaces++
		case '\t':
			spaces += 4
		default:
			return spaces / 2
		}
	}
	return spaces / 2
}

func hasOutlinePatterns(lines []Line) bool {
	nonEmpty := 0
	prefixed := 0
	dates := 0
	headers := 0
	indents := map[int]bool{}

	for _, ln := range lines {
		if ln.Blank {
			continue
		}
		nonEmpty++
		indents[ln.Indent] = true
		if ln.Prefix != PrefixNone {
			prefixed++
		}
		if ln.IsDate {
			dates++
		}
		if ln.IsHeader {
			headers++
		}
	}
	if nonEmpty == 0 {
		return false
	}

	if prefixed >= 2 {
		return true
	}
	if prefixed >= 1 && float64(prefixed) >= 0.3*float64(nonEmpty) {
		return true
	}
	if dates >= 2 {
		return true
	}
	if headers >= 1 && len(indents) >= 2 {
		return true
	}
	if len(indents) >= 3 && nonEmpty >= 5 {
		return true
	}
	return false
}

var reTerminalPunct = regexp.MustCompile(`[.!?:;,]$`)

// Lowercase words that don't break title case.
var smallTitleWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"of": true, "and": true, "or": true, "nor": true,
	"to": true, "in": true, "on": true, "at": true, "for": true,
	"with": true, "by": true,
}

// isSectionHeader matches short title-case lines without terminal
// punctuation: "Early Years", "The Road East". At most 5 words.
func isSectionHeader(text string) bool {
	if text == "" || reTerminalPunct.MatchString(text) {
		return false
	}
	words := strings.Fields(text)
	if len(words) == 0 || len(words) > 5 {
		return false
	}
	for i, w := range words {
		r := []rune(w)[0]
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if i > 0 && smallTitleWords[strings.ToLower(w)] {
			continue
		}
		return false
	}
	return true
}
