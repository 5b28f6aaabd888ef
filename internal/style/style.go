// Package style turns hierarchical numbering indexes into display prefixes:
// "1.", "a)", "iv.", "(3)". A style is either a named preset (a fixed
// per-depth format cycle) or a mixed configuration with an independently
// configurable format per level.
package style

import (
	"sort"
	"strconv"
	"strings"
)

type Format string

const (
	FormatDecimal    Format = "decimal"
	FormatLowerAlpha Format = "lower-alpha"
	FormatUpperAlpha Format = "upper-alpha"
	FormatLowerRoman Format = "lower-roman"
	FormatUpperRoman Format = "upper-roman"
	FormatBullet     Format = "bullet"
	FormatNone       Format = "none"
)

// LevelStyle configures one depth level of a mixed style.
type LevelStyle struct {
	Format    Format `json:"format" yaml:"format"`
	Underline bool   `json:"underline,omitempty" yaml:"underline,omitempty"`
	Italic    bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	// Suffix is a literal appended after the formatted index ("." or ")").
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	// Parenthesize wraps the numeral: "(3)".
	Parenthesize bool `json:"parenthesize,omitempty" yaml:"parenthesize,omitempty"`
}

// Config selects either a preset by id or a fully custom mixed style.
// When Levels is non-empty the config is mixed and Preset is ignored.
type Config struct {
	Preset string       `json:"preset,omitempty" yaml:"preset,omitempty"`
	Levels []LevelStyle `json:"levels,omitempty" yaml:"levels,omitempty"`
}

// Prefix is a formatted numbering prefix plus the decoration metadata the
// renderer applies; the formatter itself never styles text.
type Prefix struct {
	Text      string
	Suffix    string
	Underline bool
	Italic    bool
}

// String returns the prefix as rendered in plain contexts.
func (p Prefix) String() string { return p.Text + p.Suffix }

// Presets cycle per depth: an outline nesting deeper than the preset defines
// wraps around rather than erroring.
var presets = map[string][]LevelStyle{
	"decimal": {
		{Format: FormatDecimal, Suffix: "."},
	},
	"classic": {
		{Format: FormatDecimal, Suffix: "."},
		{Format: FormatLowerAlpha, Suffix: "."},
		{Format: FormatLowerRoman, Suffix: "."},
	},
	"legal": {
		{Format: FormatUpperRoman, Suffix: "."},
		{Format: FormatUpperAlpha, Suffix: "."},
		{Format: FormatDecimal, Suffix: "."},
		{Format: FormatLowerAlpha, Suffix: ")"},
		{Format: FormatLowerRoman, Suffix: ")"},
	},
	"bullets": {
		{Format: FormatBullet},
	},
	"plain": {
		{Format: FormatNone},
	},
}

const DefaultPreset = "classic"

// PresetIDs returns the known preset ids, sorted.
func PresetIDs() []string {
	out := make([]string, 0, len(presets))
	for id := range presets {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LevelAt resolves the level style for a depth. Mixed configs reuse their
// last defined level for deeper nesting; presets cycle.
func (c Config) LevelAt(depth int) LevelStyle {
	if depth < 0 {
		depth = 0
	}
	if len(c.Levels) > 0 {
		if depth < len(c.Levels) {
			return c.Levels[depth]
		}
		return c.Levels[len(c.Levels)-1]
	}
	seq, ok := presets[c.Preset]
	if !ok || len(seq) == 0 {
		seq = presets[DefaultPreset]
	}
	return seq[depth%len(seq)]
}

// FormatPrefix renders the display prefix for a node at the given depth with
// the given numbering index path. Only the final index segment is formatted;
// ancestor counters are not compounded here (callers wanting "1.2.3" compose
// per-level prefixes themselves, see Location).
func FormatPrefix(depth int, indexPath []int, cfg Config) Prefix {
	lv := cfg.LevelAt(depth)
	n := 0
	if len(indexPath) > 0 {
		n = indexPath[len(indexPath)-1]
	}
	text := formatNumeral(lv.Format, n)
	if lv.Parenthesize && lv.Format != FormatBullet && lv.Format != FormatNone {
		text = "(" + text + ")"
	}
	return Prefix{
		Text:      text,
		Suffix:    lv.Suffix,
		Underline: lv.Underline,
		Italic:    lv.Italic,
	}
}

func formatNumeral(f Format, n int) string {
	switch f {
	case FormatDecimal:
		if n < 1 {
			return "?"
		}
		return strconv.Itoa(n)
	case FormatLowerAlpha:
		return alphaNumeral(n, false)
	case FormatUpperAlpha:
		return alphaNumeral(n, true)
	case FormatLowerRoman:
		return romanNumeral(n, false)
	case FormatUpperRoman:
		return romanNumeral(n, true)
	case FormatBullet:
		return "•"
	case FormatNone:
		return ""
	default:
		// User-authored configs may reference a deleted custom format;
		// degrade instead of erroring.
		return "?"
	}
}

// Location composes a compound "2.a.iv"-style location string from a full
// index path: each level formatted independently with trailing punctuation
// and parentheses stripped, joined by dots. Used for entity usage locations.
func Location(indexPath []int, cfg Config) string {
	if len(indexPath) == 0 {
		return ""
	}
	parts := make([]string, 0, len(indexPath))
	for d := 0; d < len(indexPath); d++ {
		p := FormatPrefix(d, indexPath[:d+1], cfg)
		seg := strings.Trim(p.Text, "()")
		if seg == "" || seg == "•" {
			seg = strconv.Itoa(indexPath[d])
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, ".")
}
