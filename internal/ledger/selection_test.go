package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finboard/internal/models"
)

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection()

	assert.True(t, s.Toggle("a"))
	assert.True(t, s.Has("a"))
	assert.False(t, s.Toggle("a"))
	assert.False(t, s.Has("a"))
	assert.Zero(t, s.Len())
}

func TestSelection_SelectAll(t *testing.T) {
	view := []models.Record{
		record("b", models.RecordKindIncome, 1, "Salary", 1),
		record("a", models.RecordKindExpense, 1, "Food", 1),
	}

	t.Run("selects_visible_ids", func(t *testing.T) {
		s := NewSelection()
		s.SelectAll(view)
		assert.Equal(t, []string{"a", "b"}, s.IDs())
	})

	t.Run("twice_from_empty_restores_empty", func(t *testing.T) {
		s := NewSelection()
		s.SelectAll(view)
		s.SelectAll(view)
		assert.Empty(t, s.IDs())
	})

	t.Run("twice_from_full_restores_full", func(t *testing.T) {
		s := NewSelection()
		s.Toggle("a")
		s.Toggle("b")
		s.SelectAll(view)
		assert.Empty(t, s.IDs())
		s.SelectAll(view)
		assert.Equal(t, []string{"a", "b"}, s.IDs())
	})

	t.Run("partial_selection_becomes_full", func(t *testing.T) {
		s := NewSelection()
		s.Toggle("a")
		s.SelectAll(view)
		assert.Equal(t, []string{"a", "b"}, s.IDs())
	})

	t.Run("same_size_but_different_ids_is_not_full", func(t *testing.T) {
		s := NewSelection()
		s.Toggle("x")
		s.Toggle("y")
		s.SelectAll(view)
		assert.Equal(t, []string{"a", "b"}, s.IDs())
	})

	t.Run("hidden_ids_are_dropped", func(t *testing.T) {
		s := NewSelection()
		s.Toggle("hidden")
		s.SelectAll(view)
		assert.False(t, s.Has("hidden"))
	})
}

func TestSelection_ForgetAndClear(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")

	s.Forget("a")
	s.Forget("missing")
	assert.Equal(t, []string{"b"}, s.IDs())

	set := s.Set()
	set["c"] = struct{}{}
	assert.False(t, s.Has("c"), "Set returns a copy")

	s.Clear()
	assert.Zero(t, s.Len())
}
