package parse

import (
	"reflect"
	"testing"

	"beatline-cli/internal/model"
)

func TestAnalyzePrefixes(t *testing.T) {
	cases := []struct {
		name string
		line string
		typ  PrefixType
		text string
	}{
		{"numbered dot", "1. Intro", PrefixNumbered, "Intro"},
		{"numbered paren", "12) Later", PrefixNumbered, "Later"},
		{"lettered", "a. Sub one", PrefixLettered, "Sub one"},
		{"roman", "iv. Fourth", PrefixRoman, "Fourth"},
		{"single i is lettered", "i. First", PrefixLettered, "First"},
		{"bullet", "- Item", PrefixBulleted, "Item"},
		{"unicode bullet", "• Item", PrefixBulleted, "Item"},
		{"parenthesized", "(3) Third", PrefixParenthesized, "Third"},
		{"plain", "Just a sentence.", PrefixNone, "Just a sentence."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Analyze(tc.line)
			if len(a.Lines) != 1 {
				t.Fatalf("got %d lines", len(a.Lines))
			}
			ln := a.Lines[0]
			if ln.Prefix != tc.typ {
				t.Errorf("prefix = %q, want %q", ln.Prefix, tc.typ)
			}
			if ln.Text != tc.text {
				t.Errorf("text = %q, want %q", ln.Text, tc.text)
			}
		})
	}
}

func TestAnalyzeDateLines(t *testing.T) {
	dates := []string{
		"March 2020",
		"March 15, 2020",
		"15 March 2020",
		"2020-03-15",
		"3/15/2020",
		"Summer 1969",
		"Q3 2021",
		"circa 1952",
		"~1955",
		"1957",
		"1950s",
		"1947-1950",
		"January 1948:",
	}
	for _, d := range dates {
		a := Analyze(d)
		if !a.Lines[0].IsDate {
			t.Errorf("%q not recognized as a date line", d)
		}
	}
	notDates := []string{
		"He left in March",
		"Chapter 2020 words long.",
		"12345",
	}
	for _, d := range notDates {
		a := Analyze(d)
		if a.Lines[0].IsDate {
			t.Errorf("%q wrongly recognized as a date line", d)
		}
	}
}

func TestSectionHeaderHeuristic(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"Early Years", true},
		{"The Road East", true},
		{"On the Road", true},
		{"this is lowercase", false},
		{"Too Long To Be A Header Line", false},
		{"Ends with punctuation.", false},
	}
	for _, tc := range cases {
		if got := isSectionHeader(tc.line); got != tc.want {
			t.Errorf("isSectionHeader(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestHasOutlinePatterns(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"two prefixed lines", "1. One\n2. Two", true},
		{"two dates", "March 2020\nstuff\nApril 2020", true},
		{"plain prose", "It was a dark night.\nThe rain kept falling on the roof.", false},
		{"empty", "\n\n", false},
		{"header plus indents", "Early Years\n  born in Lowell\nLater", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Analyze(tc.text).HasOutlinePatterns; got != tc.want {
				t.Errorf("HasOutlinePatterns = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseHierarchyTraditional(t *testing.T) {
	text := "1. Intro\n2. Body\n   a. Sub one\n   b. Sub two\n3. Conclusion"
	got := ParseHierarchy(Analyze(text))
	want := []model.ImportItem{
		{Label: "Intro", Depth: 0},
		{Label: "Body", Depth: 0},
		{Label: "Sub one", Depth: 1},
		{Label: "Sub two", Depth: 1},
		{Label: "Conclusion", Depth: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseHierarchyDates(t *testing.T) {
	text := "March 2020\nFirst event\nApril 2020\nSecond event"
	got := ParseHierarchy(Analyze(text))
	want := []model.ImportItem{
		{Label: "March 2020", Depth: 0},
		{Label: "First event", Depth: 1},
		{Label: "April 2020", Depth: 0},
		{Label: "Second event", Depth: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseHierarchySectionsWithTitle(t *testing.T) {
	text := "Kerouac Project Timeline\nEarly Years\nMarch 1922\nBorn in Lowell.\nLater Years\nOctober 1969\nDied in St. Petersburg."
	got := ParseHierarchy(Analyze(text))
	want := []model.ImportItem{
		{Label: "Kerouac Project Timeline", Depth: 0},
		{Label: "Early Years", Depth: 1},
		{Label: "March 1922", Depth: 2},
		{Label: "Born in Lowell.", Depth: 3},
		{Label: "Later Years", Depth: 1},
		{Label: "October 1969", Depth: 2},
		{Label: "Died in St. Petersburg.", Depth: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseHierarchyIndentationOnly(t *testing.T) {
	text := "Top\n  Child\n    Grandchild\nSecond top"
	got := ParseHierarchy(Analyze(text))
	want := []model.ImportItem{
		{Label: "Top", Depth: 0},
		{Label: "Child", Depth: 1},
		{Label: "Grandchild", Depth: 2},
		{Label: "Second top", Depth: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseHierarchyNormalizesMinDepth(t *testing.T) {
	text := "    Deep one\n      Deeper\n    Deep two"
	got := ParseHierarchy(Analyze(text))
	want := []model.ImportItem{
		{Label: "Deep one", Depth: 0},
		{Label: "Deeper", Depth: 1},
		{Label: "Deep two", Depth: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseHierarchyHeaderShapedLinesFollowIndentation(t *testing.T) {
	// Short title-case lines match the header shape, but when the paste
	// carries its own indentation that signal wins over sections.
	text := "Top\n  Child\n    Deep One\nSecond"
	got := ParseHierarchy(Analyze(text))
	want := []model.ImportItem{
		{Label: "Top", Depth: 0},
		{Label: "Child", Depth: 1},
		{Label: "Deep One", Depth: 2},
		{Label: "Second", Depth: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseHierarchyHeadersWithoutIndentation(t *testing.T) {
	text := "Early Years\nborn in a mill town\nLater Years\nmoved west"
	got := ParseHierarchy(Analyze(text))
	want := []model.ImportItem{
		{Label: "Early Years", Depth: 0},
		{Label: "born in a mill town", Depth: 1},
		{Label: "Later Years", Depth: 0},
		{Label: "moved west", Depth: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseHierarchyClampsDepth(t *testing.T) {
	text := "a\n\t\t\t\t\t\t\t\t\t\tb"
	got := ParseHierarchy(Analyze(text))
	if got[1].Depth != maxDepth {
		t.Errorf("depth = %d, want clamp at %d", got[1].Depth, maxDepth)
	}
}

func TestParseHierarchyDropsBlankLines(t *testing.T) {
	text := "1. One\n\n2. Two\n\n"
	got := ParseHierarchy(Analyze(text))
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
}

func TestStripPrefixes(t *testing.T) {
	got := StripPrefixes("1. One\n\n- Two\n(3) Three")
	want := []string{"One", "", "Two", "Three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStripPrefixesKeepsIndentation(t *testing.T) {
	got := StripPrefixes("1. One\n   a. Sub\n\tb. Tabbed")
	want := []string{"One", "   Sub", "\tTabbed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseMarkdown(t *testing.T) {
	src := "# Title\n\nSome intro text.\n\n## Section\n\n- first\n- second\n  - nested\n"
	got := ParseMarkdown(src)
	want := []model.ImportItem{
		{Label: "Title", Depth: 0},
		{Label: "Some intro text.", Depth: 1},
		{Label: "Section", Depth: 1},
		{Label: "first", Depth: 2},
		{Label: "second", Depth: 2},
		{Label: "nested", Depth: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIsLikelyMarkdown(t *testing.T) {
	if !IsLikelyMarkdown("# Heading\nbody") {
		t.Error("heading not detected")
	}
	if !IsLikelyMarkdown("- a\n- b") {
		t.Error("list not detected")
	}
	if IsLikelyMarkdown("1. not markdown\n2. numbered outline") {
		t.Error("numbered outline misdetected as markdown")
	}
}
