package style

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is a user-authored named style, loadable from a styles.yaml
// sheet alongside the global config.
type Definition struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name,omitempty" yaml:"name,omitempty"`
	Levels []LevelStyle `json:"levels" yaml:"levels"`
}

type sheet struct {
	Styles []Definition `yaml:"styles"`
}

// LoadSheet reads user style definitions from a YAML file. A missing file is
// not an error: custom styles are optional.
func LoadSheet(path string) ([]Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Definition{}, nil
		}
		return nil, err
	}
	var sh sheet
	if err := yaml.Unmarshal(b, &sh); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make([]Definition, 0, len(sh.Styles))
	for _, d := range sh.Styles {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" || len(d.Levels) == 0 {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Resolve maps a style id to a Config: custom definitions shadow presets,
// unknown ids fall back to the default preset.
func Resolve(id string, custom []Definition) Config {
	id = strings.TrimSpace(id)
	for _, d := range custom {
		if d.ID == id {
			return Config{Levels: d.Levels}
		}
	}
	if _, ok := presets[id]; ok {
		return Config{Preset: id}
	}
	return Config{Preset: DefaultPreset}
}
