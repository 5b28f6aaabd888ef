package outline

import "beatline-cli/internal/model"

const defaultHistoryLimit = 100

// History is a linear undo/redo stack of tree snapshots. Snapshots share
// structure with each other (mutations copy only the changed path), so
// keeping many of them is cheap. Any new push discards the redo branch.
type History struct {
	past   [][]model.HierarchyNode
	future [][]model.HierarchyNode
	limit  int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records the tree state that existed before a mutation.
func (h *History) Push(tree []model.HierarchyNode) {
	h.past = append(h.past, tree)
	if len(h.past) > h.limit {
		h.past = h.past[1:]
	}
	h.future = nil
}

// Undo exchanges current for the most recent snapshot.
func (h *History) Undo(current []model.HierarchyNode) ([]model.HierarchyNode, bool) {
	if len(h.past) == 0 {
		return current, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return prev, true
}

// Redo reapplies the most recently undone state.
func (h *History) Redo(current []model.HierarchyNode) ([]model.HierarchyNode, bool) {
	if len(h.future) == 0 {
		return current, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return next, true
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }
