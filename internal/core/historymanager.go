package core

import "statechartx/internal/elements"

// HistoryManager records and restores per-region history values, keyed by
// the History element's id. Generalized from the teacher's
// historymanager.go, whose RecordExit comment admitted it was "simplified:
// treat activeChild as single leaf for stub" — here both shallow and deep
// recording are real.
type HistoryManager struct {
	values map[string][]elements.Index
}

// NewHistoryManager returns an empty history manager.
func NewHistoryManager() *HistoryManager {
	return &HistoryManager{values: map[string][]elements.Index{}}
}

// Record stores the set of active states to restore later for the history
// element identified by historyID.
func (h *HistoryManager) Record(historyID string, active []elements.Index) {
	stored := make([]elements.Index, len(active))
	copy(stored, active)
	h.values[historyID] = stored
}

// Restore returns the previously recorded states for historyID. The second
// return value is false if no value was ever recorded (the history has
// never been exited), in which case the caller falls back to the history
// node's default transition, per spec.md §4.4.
func (h *HistoryManager) Restore(historyID string) ([]elements.Index, bool) {
	v, ok := h.values[historyID]
	if !ok {
		return nil, false
	}
	out := make([]elements.Index, len(v))
	copy(out, v)
	return out, true
}

// Clear discards every recorded value.
func (h *HistoryManager) Clear() {
	h.values = map[string][]elements.Index{}
}

// Snapshot returns the recorded history as element ids, for persistence.
func (h *HistoryManager) Snapshot(tree *elements.Tree) map[string][]string {
	out := make(map[string][]string, len(h.values))
	for id, idxs := range h.values {
		ids := make([]string, len(idxs))
		for i, idx := range idxs {
			ids[i] = tree.Node(idx).ID
		}
		out[id] = ids
	}
	return out
}

// restoreSnapshot loads history previously produced by Snapshot, resolving ids
// back to indices against tree.
func (h *HistoryManager) restoreSnapshot(tree *elements.Tree, snap map[string][]string) {
	h.values = map[string][]elements.Index{}
	for id, ids := range snap {
		idxs := make([]elements.Index, 0, len(ids))
		for _, sid := range ids {
			if idx, ok := tree.ByID(sid); ok {
				idxs = append(idxs, idx)
			}
		}
		h.values[id] = idxs
	}
}
