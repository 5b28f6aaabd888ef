// Package scan finds entity mentions (people, places, dates, terms) across
// a document's outline labels. Matching is case-insensitive whole-word; each
// hit is reported with a compound numbering location ("2.a.iv") so a writer
// can jump to the passage.
package scan

import (
	"regexp"
	"strings"

	"beatline-cli/internal/model"
	"beatline-cli/internal/outline"
	"beatline-cli/internal/style"
)

// Usage is one entity mention in one outline node.
type Usage struct {
	EntityID   string `json:"entityId"`
	EntityName string `json:"entityName"`
	EntityKind string `json:"entityKind"`
	Matched    string `json:"matched"`
	DocumentID string `json:"documentId"`
	BlockID    string `json:"blockId"`
	NodeID     string `json:"nodeId"`
	Label      string `json:"label"`
	Location   string `json:"location"`
	Depth      int    `json:"depth"`
}

type matcher struct {
	entity model.Entity
	term   string
	re     *regexp.Regexp
}

func compile(entities []model.Entity) []matcher {
	var ms []matcher
	for _, e := range entities {
		terms := append([]string{e.Name}, e.Aliases...)
		for _, t := range terms {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			ms = append(ms, matcher{
				entity: e,
				term:   t,
				re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`),
			})
		}
	}
	return ms
}

// Document scans every block of doc against the entity list. Collapsed
// subtrees are scanned too; collapse is view state, not content. Body rows
// report the location of the nearest preceding numbered row. A node matching
// an entity by both name and alias yields a single usage (the name wins,
// terms are tried in declaration order).
func Document(doc model.Document, entities []model.Entity, cfg style.Config) []Usage {
	ms := compile(entities)
	if len(ms) == 0 {
		return []Usage{}
	}

	out := []Usage{}
	for _, blk := range doc.Blocks {
		flat := outline.FlattenAll(blk.Tree)
		indexes := outline.NumberIndexes(flat)
		for i := range flat {
			label := flat[i].Label
			if label == "" {
				continue
			}
			seen := map[string]bool{}
			for _, m := range ms {
				if seen[m.entity.ID] || !m.re.MatchString(label) {
					continue
				}
				seen[m.entity.ID] = true
				out = append(out, Usage{
					EntityID:   m.entity.ID,
					EntityName: m.entity.Name,
					EntityKind: string(m.entity.Kind),
					Matched:    m.term,
					DocumentID: doc.ID,
					BlockID:    blk.ID,
					NodeID:     flat[i].ID,
					Label:      label,
					Location:   style.Location(indexes[i], cfg),
					Depth:      flat[i].Depth,
				})
			}
		}
	}
	return out
}
