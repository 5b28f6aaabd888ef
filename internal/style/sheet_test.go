package style

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSheet = `styles:
  - id: thesis
    name: Thesis chapters
    levels:
      - format: upper-roman
        suffix: "."
        underline: true
      - format: decimal
        suffix: "."
      - format: lower-alpha
        parenthesize: true
  - id: ""
    levels:
      - format: decimal
  - id: broken
    levels: []
`

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "styles.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	return path
}

func TestLoadSheet(t *testing.T) {
	t.Parallel()

	defs, err := LoadSheet(writeSheet(t, sampleSheet))
	if err != nil {
		t.Fatalf("load sheet: %v", err)
	}
	// Entries with a blank id or no levels are dropped.
	if len(defs) != 1 {
		t.Fatalf("expected 1 valid definition; got %d", len(defs))
	}
	d := defs[0]
	if d.ID != "thesis" || d.Name != "Thesis chapters" {
		t.Fatalf("unexpected definition: %+v", d)
	}
	if len(d.Levels) != 3 || d.Levels[0].Format != FormatUpperRoman || !d.Levels[0].Underline {
		t.Fatalf("unexpected levels: %+v", d.Levels)
	}
	if !d.Levels[2].Parenthesize {
		t.Fatal("expected parenthesize carried through yaml")
	}
}

func TestLoadSheetMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	defs, err := LoadSheet(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected missing sheet to be fine; got %v", err)
	}
	if len(defs) != 0 {
		t.Fatalf("expected no definitions; got %d", len(defs))
	}
}

func TestLoadSheetRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	if _, err := LoadSheet(writeSheet(t, "styles: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	custom := []Definition{
		{ID: "thesis", Levels: []LevelStyle{{Format: FormatUpperRoman, Suffix: "."}}},
		// A custom definition shadows the preset of the same id.
		{ID: "classic", Levels: []LevelStyle{{Format: FormatBullet}}},
	}

	if cfg := Resolve("thesis", custom); len(cfg.Levels) != 1 || cfg.Levels[0].Format != FormatUpperRoman {
		t.Fatalf("expected custom config; got %+v", cfg)
	}
	if cfg := Resolve("classic", custom); len(cfg.Levels) != 1 || cfg.Levels[0].Format != FormatBullet {
		t.Fatalf("expected custom definition to shadow preset; got %+v", cfg)
	}
	if cfg := Resolve("legal", custom); cfg.Preset != "legal" || len(cfg.Levels) != 0 {
		t.Fatalf("expected preset config; got %+v", cfg)
	}
	if cfg := Resolve("unknown", nil); cfg.Preset != DefaultPreset {
		t.Fatalf("expected default preset fallback; got %+v", cfg)
	}
	if cfg := Resolve("  classic  ", nil); cfg.Preset != "classic" {
		t.Fatalf("expected id trimmed; got %+v", cfg)
	}
}
