package style

import "testing"

func TestNumerals(t *testing.T) {
	t.Parallel()

	cases := []struct {
		format Format
		n      int
		want   string
	}{
		{FormatDecimal, 1, "1"},
		{FormatDecimal, 42, "42"},
		{FormatDecimal, 0, "?"},
		{FormatLowerAlpha, 1, "a"},
		{FormatLowerAlpha, 2, "b"},
		{FormatLowerAlpha, 26, "z"},
		{FormatLowerAlpha, 27, "aa"},
		{FormatLowerAlpha, 28, "ab"},
		{FormatLowerAlpha, 52, "az"},
		{FormatLowerAlpha, 53, "ba"},
		{FormatLowerAlpha, 703, "aaa"},
		{FormatUpperAlpha, 3, "C"},
		{FormatLowerRoman, 1, "i"},
		{FormatLowerRoman, 4, "iv"},
		{FormatLowerRoman, 9, "ix"},
		{FormatLowerRoman, 14, "xiv"},
		{FormatLowerRoman, 40, "xl"},
		{FormatLowerRoman, 49, "xlix"},
		{FormatLowerRoman, 1994, "mcmxciv"},
		{FormatUpperRoman, 4, "IV"},
		{FormatBullet, 7, "•"},
		{FormatNone, 7, ""},
		{Format("imaginary"), 3, "?"},
	}
	for _, tc := range cases {
		got := formatNumeral(tc.format, tc.n)
		if got != tc.want {
			t.Errorf("formatNumeral(%q, %d): expected %q; got %q", tc.format, tc.n, tc.want, got)
		}
	}
}

func TestPresetCycling(t *testing.T) {
	t.Parallel()

	cfg := Config{Preset: "classic"}
	cases := []struct {
		depth int
		index []int
		want  string
	}{
		{0, []int{3}, "3."},
		{1, []int{3, 2}, "b."},
		{2, []int{3, 2, 4}, "iv."},
		// Deeper than the preset defines: cycle back around.
		{3, []int{3, 2, 4, 5}, "5."},
		{4, []int{3, 2, 4, 5, 1}, "a."},
	}
	for _, tc := range cases {
		got := FormatPrefix(tc.depth, tc.index, cfg).String()
		if got != tc.want {
			t.Errorf("depth %d: expected %q; got %q", tc.depth, tc.want, got)
		}
	}
}

func TestPresetLegalAndBullets(t *testing.T) {
	t.Parallel()

	legal := Config{Preset: "legal"}
	if got := FormatPrefix(0, []int{2}, legal).String(); got != "II." {
		t.Fatalf("expected II.; got %q", got)
	}
	if got := FormatPrefix(3, []int{1, 1, 1, 3}, legal).String(); got != "c)" {
		t.Fatalf("expected c); got %q", got)
	}
	if got := FormatPrefix(5, []int{1, 1, 1, 1, 1, 4}, legal).String(); got != "IV." {
		t.Fatalf("expected cycle to upper roman; got %q", got)
	}

	bullets := Config{Preset: "bullets"}
	if got := FormatPrefix(2, []int{1, 1, 9}, bullets).String(); got != "•" {
		t.Fatalf("expected bullet; got %q", got)
	}

	plain := Config{Preset: "plain"}
	if got := FormatPrefix(0, []int{5}, plain).String(); got != "" {
		t.Fatalf("expected empty prefix; got %q", got)
	}
}

func TestUnknownPresetFallsBackToDefault(t *testing.T) {
	t.Parallel()

	cfg := Config{Preset: "no-such-preset"}
	if got := FormatPrefix(1, []int{1, 2}, cfg).String(); got != "b." {
		t.Fatalf("expected default preset behavior; got %q", got)
	}
}

func TestMixedLevelsReuseLast(t *testing.T) {
	t.Parallel()

	cfg := Config{Levels: []LevelStyle{
		{Format: FormatUpperRoman, Suffix: ".", Underline: true},
		{Format: FormatDecimal, Parenthesize: true},
	}}

	p0 := FormatPrefix(0, []int{3}, cfg)
	if p0.String() != "III." || !p0.Underline {
		t.Fatalf("expected underlined III.; got %q underline=%v", p0.String(), p0.Underline)
	}

	p1 := FormatPrefix(1, []int{3, 2}, cfg)
	if p1.String() != "(2)" {
		t.Fatalf("expected (2); got %q", p1.String())
	}

	// Depths past the configured levels reuse the last one.
	p4 := FormatPrefix(4, []int{1, 1, 1, 1, 6}, cfg)
	if p4.String() != "(6)" {
		t.Fatalf("expected the last level reused; got %q", p4.String())
	}
}

func TestFormatPrefixUsesFinalSegmentOnly(t *testing.T) {
	t.Parallel()

	cfg := Config{Preset: "decimal"}
	if got := FormatPrefix(2, []int{4, 7, 2}, cfg).String(); got != "2." {
		t.Fatalf("expected final segment only; got %q", got)
	}
	if got := FormatPrefix(0, nil, cfg).String(); got != "?." {
		t.Fatalf("expected placeholder for missing index; got %q", got)
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()

	classic := Config{Preset: "classic"}
	if got := Location([]int{2, 1, 4}, classic); got != "2.a.iv" {
		t.Fatalf("expected 2.a.iv; got %q", got)
	}
	if got := Location([]int{3}, classic); got != "3" {
		t.Fatalf("expected 3; got %q", got)
	}
	if got := Location(nil, classic); got != "" {
		t.Fatalf("expected empty location; got %q", got)
	}

	// Parenthesized levels strip to the bare numeral.
	paren := Config{Levels: []LevelStyle{{Format: FormatDecimal, Parenthesize: true}}}
	if got := Location([]int{2, 5}, paren); got != "2.5" {
		t.Fatalf("expected parentheses stripped; got %q", got)
	}

	// Bullet and none levels fall back to the raw counter so locations
	// stay addressable.
	bullets := Config{Preset: "bullets"}
	if got := Location([]int{2, 3}, bullets); got != "2.3" {
		t.Fatalf("expected digits for bullet levels; got %q", got)
	}
}

func TestPresetIDsSorted(t *testing.T) {
	t.Parallel()

	ids := PresetIDs()
	if len(ids) < 5 {
		t.Fatalf("expected at least 5 presets; got %v", ids)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("expected sorted preset ids; got %v", ids)
		}
	}
}
