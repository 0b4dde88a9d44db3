package models

import (
	"fmt"
	"time"
)

// RecordKind determines the sign a record carries in aggregation.
type RecordKind string

const (
	RecordKindIncome  RecordKind = "income"
	RecordKindExpense RecordKind = "expense"
)

// Valid reports whether k is a known kind.
func (k RecordKind) Valid() bool {
	return k == RecordKindIncome || k == RecordKindExpense
}

// RecordStatus represents the settlement state of a record
type RecordStatus string

const (
	RecordStatusCompleted RecordStatus = "completed"
	RecordStatusPending   RecordStatus = "pending"
	RecordStatusCancelled RecordStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s RecordStatus) Valid() bool {
	switch s {
	case RecordStatusCompleted, RecordStatusPending, RecordStatusCancelled:
		return true
	}
	return false
}

// Record represents a single financial transaction held by a ledger.
// Amount is always a non-negative magnitude; Kind carries the sign.
type Record struct {
	ID            string       `json:"id"`
	Kind          RecordKind   `json:"type"`
	Amount        float64      `json:"amount"`
	Category      string       `json:"category"`
	Description   string       `json:"description"`
	OccurredOn    Date         `json:"date"`
	PaymentMethod string       `json:"payment_method"`
	Status        RecordStatus `json:"status"`
}

// DateLayout is the wire and display format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time component, stored at UTC midnight.
type Date struct {
	time.Time
}

// NewDate returns the calendar day y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time-of-day part of t, keeping t's calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	return d.Time.Compare(o.Time)
}

// AddDays returns the day n days after d.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" or an empty string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
