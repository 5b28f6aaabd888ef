package model

import (
	"encoding/json"
	"time"
)

type NodeType string

const (
	NodeDefault   NodeType = "default"
	NodeBody      NodeType = "body"
	NodeContainer NodeType = "container"
	NodeData      NodeType = "data"
	NodeAction    NodeType = "action"
	NodeReference NodeType = "reference"
	NodeLink      NodeType = "link"
)

// HierarchyNode is one entry in an outline tree. The tree owns its children
// by value: moving a node physically relocates its subtree.
//
// OrderIndex is a convenience mirror of the node's position in its sibling
// slice; the slice order is authoritative and OrderIndex is recomputed after
// every structural mutation.
type HierarchyNode struct {
	ID         string          `json:"id"`
	ParentID   *string         `json:"parentId"`
	OrderIndex int             `json:"orderIndex"`
	Type       NodeType        `json:"type"`
	Label      string          `json:"label"`
	Properties map[string]any  `json:"properties,omitempty"`
	Collapsed  bool            `json:"collapsed"`
	Children   []HierarchyNode `json:"children"`

	// Content is an opaque rich-text payload (editor-framework JSON). The
	// engine stores it but never interprets it.
	Content json.RawMessage `json:"content,omitempty"`

	// VisualIndent shifts a body paragraph right without reparenting it.
	VisualIndent *int `json:"visualIndent,omitempty"`

	// Link nodes carry a cross-document reference.
	LinkedDocumentID    string `json:"linkedDocumentId,omitempty"`
	LinkedDocumentTitle string `json:"linkedDocumentTitle,omitempty"`
}

// FlatNode is a HierarchyNode projected into the flattened (renderable) view.
// It is recomputed from scratch on every read and never persisted.
type FlatNode struct {
	ID         string          `json:"id"`
	ParentID   *string         `json:"parentId"`
	OrderIndex int             `json:"orderIndex"`
	Type       NodeType        `json:"type"`
	Label      string          `json:"label"`
	Properties map[string]any  `json:"properties,omitempty"`
	Collapsed  bool            `json:"collapsed"`
	Content    json.RawMessage `json:"content,omitempty"`

	VisualIndent        *int   `json:"visualIndent,omitempty"`
	LinkedDocumentID    string `json:"linkedDocumentId,omitempty"`
	LinkedDocumentTitle string `json:"linkedDocumentTitle,omitempty"`

	Depth       int      `json:"depth"`
	HasChildren bool     `json:"hasChildren"`
	IsLastChild bool     `json:"isLastChild"`
	AncestorIDs []string `json:"ancestorIds"`
}

// HierarchyBlockData is the persisted shape of one outline block: field
// names and nesting round-trip exactly, and an empty children array must
// serialize as [], not null.
type HierarchyBlockData struct {
	ID   string          `json:"id"`
	Tree []HierarchyNode `json:"tree"`
}

// ImportItem is the import contract: anything that injects content into a
// tree (smart paste, markdown import, AI section generation) produces these.
// Depths need not be pre-normalized.
type ImportItem struct {
	Label string `json:"label"`
	Depth int    `json:"depth"`
}

type Document struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Blocks    []HierarchyBlockData `json:"blocks"`
	StyleID   string               `json:"styleId,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	Archived  bool                 `json:"archived"`
}

type EntityKind string

const (
	EntityPerson EntityKind = "person"
	EntityPlace  EntityKind = "place"
	EntityDate   EntityKind = "date"
	EntityTerm   EntityKind = "term"
)

// Entity is boundary-only: the engine never mutates entities, it only scans
// node labels for their names.
type Entity struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Kind    EntityKind `json:"kind"`
	Aliases []string   `json:"aliases,omitempty"`
}
