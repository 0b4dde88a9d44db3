package ledger

import (
	"slices"

	"finboard/internal/models"
)

// Selection is a set of record ids chosen for a bulk operation. It is
// independent of filtering: ids stay selected when they leave the view.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds id when absent and removes it when present. It reports
// whether id is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// SelectAll toggles between "exactly the visible records" and nothing: when
// the selection already equals the ids of view it is cleared, otherwise it
// is replaced by them.
func (s *Selection) SelectAll(view []models.Record) {
	if s.equals(view) {
		s.Clear()
		return
	}
	s.Clear()
	for _, r := range view {
		s.ids[r.ID] = struct{}{}
	}
}

func (s *Selection) equals(view []models.Record) bool {
	visible := make(map[string]struct{}, len(view))
	for _, r := range view {
		visible[r.ID] = struct{}{}
	}
	if len(visible) != len(s.ids) {
		return false
	}
	for id := range visible {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

// Clear empties the selection.
func (s *Selection) Clear() { clear(s.ids) }

// Forget drops id if it is selected.
func (s *Selection) Forget(id string) { delete(s.ids, id) }

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected ids in sorted order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Set returns a copy of the selected ids as a set.
func (s *Selection) Set() map[string]struct{} {
	out := make(map[string]struct{}, len(s.ids))
	for id := range s.ids {
		out[id] = struct{}{}
	}
	return out
}
