package ledger

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// TypeFilter restricts a view to one record kind.
type TypeFilter string

const (
	TypeAll     TypeFilter = "all"
	TypeIncome  TypeFilter = "income"
	TypeExpense TypeFilter = "expense"
)

// CategoryAll is the synthetic category option that disables the category filter.
const CategoryAll = "all"

// SortField names the record attribute a view is ordered by.
type SortField string

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByCategory SortField = "category"
)

// SortDirection orders a view ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Query is the filter and sort configuration of a view.
type Query struct {
	Search        string        `json:"search"`
	Type          TypeFilter    `json:"type"`
	Category      string        `json:"category"`
	SortField     SortField     `json:"sort_field"`
	SortDirection SortDirection `json:"sort_direction"`
}

// DefaultQuery shows every record, newest first.
func DefaultQuery() Query {
	return Query{
		Type:          TypeAll,
		Category:      CategoryAll,
		SortField:     SortByDate,
		SortDirection: Descending,
	}
}

// Normalize fills empty fields with their defaults.
func (q Query) Normalize() Query {
	d := DefaultQuery()
	if q.Type == "" {
		q.Type = d.Type
	}
	if q.Category == "" {
		q.Category = d.Category
	}
	if q.SortField == "" {
		q.SortField = d.SortField
	}
	if q.SortDirection == "" {
		q.SortDirection = d.SortDirection
	}
	return q
}

// Validate rejects unknown filter and sort values.
func (q Query) Validate() error {
	switch q.Type {
	case TypeAll, TypeIncome, TypeExpense:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be all, income or expense")
	}
	switch q.SortField {
	case SortByDate, SortByAmount, SortByCategory:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "sort must be date, amount or category")
	}
	switch q.SortDirection {
	case Ascending, Descending:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "direction must be asc or desc")
	}
	return nil
}

// ToggleSort flips the direction when field is already the sort field,
// otherwise switches to field in descending order.
func (q Query) ToggleSort(field SortField) Query {
	if q.SortField == field {
		if q.SortDirection == Ascending {
			q.SortDirection = Descending
		} else {
			q.SortDirection = Ascending
		}
		return q
	}
	q.SortField = field
	q.SortDirection = Descending
	return q
}

// QueryUpdate holds the query fields a request sets. Nil fields keep the
// value of the query it is merged over.
type QueryUpdate struct {
	Search        *string
	Type          *TypeFilter
	Category      *string
	SortField     *SortField
	SortDirection *SortDirection
}

// Merge returns q with every set field of u applied.
func (u QueryUpdate) Merge(q Query) Query {
	if u.Search != nil {
		q.Search = *u.Search
	}
	if u.Type != nil {
		q.Type = *u.Type
	}
	if u.Category != nil {
		q.Category = *u.Category
	}
	if u.SortField != nil {
		q.SortField = *u.SortField
	}
	if u.SortDirection != nil {
		q.SortDirection = *u.SortDirection
	}
	return q
}

// Engine derives views from record collections. Category ordering uses the
// collation rules of the engine's language.
type Engine struct {
	lang language.Tag
}

// NewEngine creates an engine collating categories for lang.
func NewEngine(lang language.Tag) *Engine {
	return &Engine{lang: lang}
}

// NewEngineFor parses a BCP 47 tag, falling back to English.
func NewEngineFor(tag string) *Engine {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.English
	}
	return NewEngine(lang)
}

// Apply returns the records matching every filter of q, stably sorted.
// The input slice is never modified. Descending order negates the
// comparison so records with equal keys keep their input order.
func (e *Engine) Apply(records []models.Record, q Query) []models.Record {
	q = q.Normalize()
	needle := strings.ToLower(q.Search)

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Description), needle) &&
			!strings.Contains(strings.ToLower(r.Category), needle) {
			continue
		}
		if q.Type != TypeAll && string(r.Kind) != string(q.Type) {
			continue
		}
		if q.Category != CategoryAll && r.Category != q.Category {
			continue
		}
		out = append(out, r)
	}

	compare := e.comparator(q.SortField)
	sign := 1
	if q.SortDirection == Descending {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b models.Record) int {
		return sign * compare(a, b)
	})
	return out
}

func (e *Engine) comparator(field SortField) func(a, b models.Record) int {
	switch field {
	case SortByAmount:
		return func(a, b models.Record) int { return cmp.Compare(a.Amount, b.Amount) }
	case SortByCategory:
		// Collators keep scratch buffers, so each Apply gets its own.
		col := collate.New(e.lang)
		return func(a, b models.Record) int { return col.CompareString(a.Category, b.Category) }
	default:
		return func(a, b models.Record) int { return a.OccurredOn.Compare(b.OccurredOn) }
	}
}

// Categories lists the filter options for records: CategoryAll first, then
// each distinct category in first-seen order.
func Categories(records []models.Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := []string{CategoryAll}
	for _, r := range records {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}
