package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const uiStateFileName = "ui_state.json"

// UIState stores small, user-facing view state for restoring the last screen
// on relaunch. It lives inside the workspace dir so state is naturally
// scoped per workspace, and it is intentionally best-effort: callers must
// tolerate missing or invalid data.
//
// Per-document collapse overrides live here rather than in the tree itself:
// the tree's own collapsed flags are part of the document, while these are
// this machine's view of it.
type UIState struct {
	Version int `json:"version"`

	// View is one of: documents|outline|preview
	View string `json:"view,omitempty"`

	SelectedDocumentID string `json:"selectedDocumentId,omitempty"`

	// CollapsedNodes maps documentID -> set of collapsed node ids.
	CollapsedNodes map[string][]string `json:"collapsedNodes,omitempty"`

	// RecentDocumentIDs, newest first.
	RecentDocumentIDs []string `json:"recentDocumentIds,omitempty"`
}

func (s Store) uiStatePath() string {
	return filepath.Join(s.Dir, uiStateFileName)
}

func (s Store) LoadUIState() (*UIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &UIState{Version: 1}, nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.uiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UIState{Version: 1}, nil
		}
		return nil, err
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &UIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveUIState(st *UIState) error {
	if st == nil {
		return nil
	}
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := s.uiStatePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// SetCollapsed records or clears a collapse override for one node.
func (st *UIState) SetCollapsed(docID, nodeID string, collapsed bool) {
	if st.CollapsedNodes == nil {
		st.CollapsedNodes = map[string][]string{}
	}
	ids := st.CollapsedNodes[docID]
	idx := -1
	for i, id := range ids {
		if id == nodeID {
			idx = i
			break
		}
	}
	switch {
	case collapsed && idx < 0:
		st.CollapsedNodes[docID] = append(ids, nodeID)
	case !collapsed && idx >= 0:
		st.CollapsedNodes[docID] = append(ids[:idx], ids[idx+1:]...)
	}
}

// CollapsedSet returns the collapse overrides for a document as a set.
func (st *UIState) CollapsedSet(docID string) map[string]bool {
	out := map[string]bool{}
	for _, id := range st.CollapsedNodes[docID] {
		out[id] = true
	}
	return out
}
