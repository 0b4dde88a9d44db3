// Package ledger holds the in-memory transaction ledger behind the
// transactions page: the record store, the query engine that derives the
// filtered and sorted view, the aggregator that summarizes a view and the
// selection tracker used for bulk operations.
package ledger

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// IDFunc generates record identifiers. Identifiers must never repeat.
type IDFunc func() string

// NewID returns a time-ordered UUIDv7, falling back to a random UUIDv4
// if the v7 generator fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Draft is a record as submitted from the add-transaction form. Amount and
// Date are kept as typed so validation can report on them.
type Draft struct {
	Kind          models.RecordKind `json:"type"`
	Amount        string            `json:"amount"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	PaymentMethod string            `json:"payment_method"`
	Date          string            `json:"date"`
}

// NewRecord builds a completed record from a form draft with a fresh id.
// A missing kind defaults to income and a missing date to today.
func NewRecord(d Draft, newID IDFunc, today models.Date) (models.Record, error) {
	if strings.TrimSpace(d.Amount) == "" ||
		strings.TrimSpace(d.Description) == "" ||
		strings.TrimSpace(d.Category) == "" ||
		strings.TrimSpace(d.PaymentMethod) == "" {
		return models.Record{}, apperrors.ErrMissingFields
	}

	kind := d.Kind
	if kind == "" {
		kind = models.RecordKindIncome
	}
	if !kind.Valid() {
		return models.Record{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}

	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return models.Record{}, err
	}

	date := today
	if strings.TrimSpace(d.Date) != "" {
		date, err = models.ParseDate(strings.TrimSpace(d.Date))
		if err != nil {
			return models.Record{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
	}

	return models.Record{
		ID:            newID(),
		Kind:          kind,
		Amount:        amount,
		Category:      strings.TrimSpace(d.Category),
		Description:   strings.TrimSpace(d.Description),
		OccurredOn:    date,
		PaymentMethod: strings.TrimSpace(d.PaymentMethod),
		Status:        models.RecordStatusCompleted,
	}, nil
}

// ParseAmount parses a decimal amount typed by the user. Both "12.50" and
// "12,50" are accepted; negative values and values outside float64 range
// are rejected.
func ParseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a number")
	}
	if d.IsNegative() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a number")
	}
	return f, nil
}

// Validate checks the invariants every stored record must hold.
func Validate(r models.Record) error {
	switch {
	case r.ID == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "id is required")
	case !r.Kind.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	case math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount < 0:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a non-negative number")
	case strings.TrimSpace(r.Category) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	case r.OccurredOn.IsZero():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	case !r.Status.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be completed, pending or cancelled")
	}
	return nil
}

// Today returns the current calendar day in the local time zone.
func Today() models.Date {
	return models.DateOf(time.Now())
}
