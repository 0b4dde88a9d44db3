package ledger

import (
	"fmt"
	"time"

	"finboard/internal/models"
)

func record(id string, kind models.RecordKind, amount float64, category string, day int) models.Record {
	return models.Record{
		ID:            id,
		Kind:          kind,
		Amount:        amount,
		Category:      category,
		Description:   category + " " + id,
		OccurredOn:    models.NewDate(2025, time.January, day),
		PaymentMethod: "Card",
		Status:        models.RecordStatusCompleted,
	}
}

func ids(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("T%d", n)
	}
}
