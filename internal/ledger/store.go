package ledger

import (
	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// Store is an ordered in-memory collection of records with unique ids.
// It is not safe for concurrent use; Workspace serializes access to it.
//
// Removing a record does not touch any Selection: callers that track
// selections must forget the id themselves.
type Store struct {
	records []models.Record
	index   map[string]int
}

// NewStore creates a store holding the given records in order.
func NewStore(records ...models.Record) (*Store, error) {
	s := &Store{index: make(map[string]int, len(records))}
	for _, r := range records {
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a record. The id must not already be present.
func (s *Store) Add(r models.Record) error {
	if err := Validate(r); err != nil {
		return err
	}
	if _, exists := s.index[r.ID]; exists {
		return apperrors.ErrRecordExists
	}
	s.index[r.ID] = len(s.records)
	s.records = append(s.records, r)
	return nil
}

// Replace swaps the stored record having r.ID for r, keeping its position.
func (s *Store) Replace(r models.Record) error {
	if err := Validate(r); err != nil {
		return err
	}
	i, ok := s.index[r.ID]
	if !ok {
		return apperrors.ErrRecordNotFound
	}
	s.records[i] = r
	return nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (models.Record, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Record{}, false
	}
	return s.records[i], true
}

// Remove deletes the record with the given id. Removing an unknown id is a
// no-op and reports false.
func (s *Store) Remove(id string) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	return s.RemoveMany(map[string]struct{}{id: {}}) == 1
}

// RemoveMany deletes every record whose id is in ids and returns how many
// were removed.
func (s *Store) RemoveMany(ids map[string]struct{}) int {
	if len(ids) == 0 {
		return 0
	}
	kept := s.records[:0]
	removed := 0
	for _, r := range s.records {
		if _, drop := ids[r.ID]; drop {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0
	}
	clear(s.records[len(kept):])
	s.records = kept
	s.reindex()
	return removed
}

// All returns a copy of the records in insertion order.
func (s *Store) All() []models.Record {
	out := make([]models.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.records) }

func (s *Store) reindex() {
	clear(s.index)
	for i, r := range s.records {
		s.index[r.ID] = i
	}
}
