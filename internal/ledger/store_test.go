package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/models"
	"finboard/internal/testutil"
)

func TestStore_Add(t *testing.T) {
	t.Run("appends_in_order", func(t *testing.T) {
		s, err := NewStore(record("a", models.RecordKindIncome, 10, "Salary", 1))
		require.NoError(t, err)

		require.NoError(t, s.Add(record("b", models.RecordKindExpense, 5, "Food", 2)))
		assert.Equal(t, []string{"a", "b"}, ids(s.All()))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("duplicate_id", func(t *testing.T) {
		s, err := NewStore(record("a", models.RecordKindIncome, 10, "Salary", 1))
		require.NoError(t, err)

		err = s.Add(record("a", models.RecordKindExpense, 5, "Food", 2))
		testutil.AssertAppError(t, err, "RECORD_EXISTS")
		assert.Equal(t, 1, s.Len())
	})

	t.Run("rejects_invalid_records", func(t *testing.T) {
		s, err := NewStore()
		require.NoError(t, err)

		negative := record("n", models.RecordKindExpense, -1, "Food", 1)
		testutil.AssertAppError(t, s.Add(negative), "INVALID_INPUT")

		noCategory := record("c", models.RecordKindExpense, 1, "", 1)
		testutil.AssertAppError(t, s.Add(noCategory), "INVALID_INPUT")

		badKind := record("k", models.RecordKind("transfer"), 1, "Food", 1)
		testutil.AssertAppError(t, s.Add(badKind), "INVALID_INPUT")

		badStatus := record("s", models.RecordKindIncome, 1, "Food", 1)
		badStatus.Status = "refunded"
		testutil.AssertAppError(t, s.Add(badStatus), "INVALID_INPUT")

		assert.Zero(t, s.Len())
	})

	t.Run("zero_amount_allowed", func(t *testing.T) {
		s, err := NewStore()
		require.NoError(t, err)
		assert.NoError(t, s.Add(record("z", models.RecordKindExpense, 0, "Food", 1)))
	})
}

func TestStore_Remove(t *testing.T) {
	seed := func(t *testing.T) *Store {
		t.Helper()
		s, err := NewStore(
			record("a", models.RecordKindIncome, 10, "Salary", 1),
			record("b", models.RecordKindExpense, 5, "Food", 2),
			record("c", models.RecordKindExpense, 7, "Rent", 3),
		)
		require.NoError(t, err)
		return s
	}

	t.Run("removes_existing", func(t *testing.T) {
		s := seed(t)
		assert.True(t, s.Remove("b"))
		assert.Equal(t, []string{"a", "c"}, ids(s.All()))

		_, ok := s.Get("b")
		assert.False(t, ok)
		got, ok := s.Get("c")
		require.True(t, ok)
		assert.Equal(t, "c", got.ID)
	})

	t.Run("unknown_id_is_noop", func(t *testing.T) {
		s := seed(t)
		assert.False(t, s.Remove("missing"))
		assert.Equal(t, 3, s.Len())
	})

	t.Run("remove_many", func(t *testing.T) {
		s := seed(t)
		n := s.RemoveMany(map[string]struct{}{"a": {}, "c": {}, "zzz": {}})
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"b"}, ids(s.All()))
	})

	t.Run("removed_id_can_not_be_replaced", func(t *testing.T) {
		s := seed(t)
		s.Remove("a")
		err := s.Replace(record("a", models.RecordKindIncome, 1, "Salary", 1))
		testutil.AssertAppError(t, err, "RECORD_NOT_FOUND")
	})
}

func TestStore_Replace(t *testing.T) {
	s, err := NewStore(
		record("a", models.RecordKindIncome, 10, "Salary", 1),
		record("b", models.RecordKindExpense, 5, "Food", 2),
	)
	require.NoError(t, err)

	updated := record("a", models.RecordKindExpense, 99, "Travel", 4)
	require.NoError(t, s.Replace(updated))

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, updated, got)
	assert.Equal(t, []string{"a", "b"}, ids(s.All()), "replacement keeps position")
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s, err := NewStore(record("a", models.RecordKindIncome, 10, "Salary", 1))
	require.NoError(t, err)

	all := s.All()
	all[0].Amount = 1000

	got, _ := s.Get("a")
	assert.Equal(t, 10.0, got.Amount)
}

func TestNewRecord(t *testing.T) {
	today := models.NewDate(2025, 2, 3)

	t.Run("defaults", func(t *testing.T) {
		r, err := NewRecord(Draft{
			Amount:        "42.50",
			Description:   " Coffee beans ",
			Category:      "Food",
			PaymentMethod: "Card",
		}, sequentialIDs(), today)
		require.NoError(t, err)

		assert.Equal(t, "T1", r.ID)
		assert.Equal(t, models.RecordKindIncome, r.Kind)
		assert.Equal(t, models.RecordStatusCompleted, r.Status)
		assert.Equal(t, 42.5, r.Amount)
		assert.Equal(t, "Coffee beans", r.Description)
		assert.Equal(t, today, r.OccurredOn)
	})

	t.Run("explicit_date_and_comma_decimal", func(t *testing.T) {
		r, err := NewRecord(Draft{
			Kind:          models.RecordKindExpense,
			Amount:        "12,25",
			Description:   "Lunch",
			Category:      "Food",
			PaymentMethod: "Cash",
			Date:          "2025-01-20",
		}, sequentialIDs(), today)
		require.NoError(t, err)
		assert.Equal(t, 12.25, r.Amount)
		assert.Equal(t, "2025-01-20", r.OccurredOn.String())
	})

	t.Run("missing_fields", func(t *testing.T) {
		_, err := NewRecord(Draft{Amount: "1", Description: "x", Category: "y"}, sequentialIDs(), today)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		assert.Equal(t, "Please fill in all fields", err.Error())
	})

	t.Run("invalid_amount", func(t *testing.T) {
		_, err := NewRecord(Draft{Amount: "ten", Description: "x", Category: "y", PaymentMethod: "z"}, sequentialIDs(), today)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		_, err := NewRecord(Draft{Amount: "-5", Description: "x", Category: "y", PaymentMethod: "z"}, sequentialIDs(), today)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("amount_out_of_range", func(t *testing.T) {
		for _, amount := range []string{"1e400", "1" + strings.Repeat("0", 400)} {
			_, err := NewRecord(Draft{Amount: amount, Description: "x", Category: "y", PaymentMethod: "z"}, sequentialIDs(), today)
			testutil.AssertAppErrorMessage(t, err, "INVALID_INPUT", "amount must be a number")
		}
	})

	t.Run("invalid_kind", func(t *testing.T) {
		_, err := NewRecord(Draft{Kind: "gift", Amount: "5", Description: "x", Category: "y", PaymentMethod: "z"}, sequentialIDs(), today)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_date", func(t *testing.T) {
		_, err := NewRecord(Draft{Amount: "5", Description: "x", Category: "y", PaymentMethod: "z", Date: "01/02/2025"}, sequentialIDs(), today)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
