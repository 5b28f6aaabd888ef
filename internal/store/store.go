package store

import (
	"context"
	"os"
	"path/filepath"

	"beatline-cli/internal/model"
)

const dbFileName = "db.json"

// DB is the whole in-memory workspace state: documents (each holding its
// outline block trees) plus the entity registry the scanner reads. Cloud or
// multi-writer merge logic is deliberately absent; saves are last-write-wins
// at document granularity.
type DB struct {
	Version           int              `json:"version"`
	CurrentDocumentID string           `json:"currentDocumentId,omitempty"`
	Documents         []model.Document `json:"documents"`
	Entities          []model.Entity   `json:"entities"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .beatline workspace dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".beatline")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".beatline"), nil
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// Load reads workspace state. SQLite is the source of truth; a legacy
// db.json is imported once if the SQLite state is empty.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

func (db *DB) FindDocument(id string) (*model.Document, bool) {
	for i := range db.Documents {
		if db.Documents[i].ID == id {
			return &db.Documents[i], true
		}
	}
	return nil, false
}

func (db *DB) FindEntity(id string) (*model.Entity, bool) {
	for i := range db.Entities {
		if db.Entities[i].ID == id {
			return &db.Entities[i], true
		}
	}
	return nil, false
}

// FindBlock locates an outline block within a document.
func (db *DB) FindBlock(docID, blockID string) (*model.HierarchyBlockData, bool) {
	doc, ok := db.FindDocument(docID)
	if !ok {
		return nil, false
	}
	for i := range doc.Blocks {
		if doc.Blocks[i].ID == blockID {
			return &doc.Blocks[i], true
		}
	}
	return nil, false
}
