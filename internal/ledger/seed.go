package ledger

import (
	"time"

	"finboard/internal/models"
)

// DemoRecords returns the sample transactions a new workspace starts with.
func DemoRecords() []models.Record {
	jan := func(day int) models.Date { return models.NewDate(2025, time.January, day) }
	return []models.Record{
		{ID: "1", Kind: models.RecordKindIncome, Amount: 3500, Category: "Salary", OccurredOn: jan(15), Description: "Monthly Salary", PaymentMethod: "Bank Transfer", Status: models.RecordStatusCompleted},
		{ID: "2", Kind: models.RecordKindExpense, Amount: 1200, Category: "Rent", OccurredOn: jan(1), Description: "Monthly Rent", PaymentMethod: "Bank Transfer", Status: models.RecordStatusCompleted},
		{ID: "3", Kind: models.RecordKindExpense, Amount: 350, Category: "Food", OccurredOn: jan(5), Description: "Grocery Shopping", PaymentMethod: "Card", Status: models.RecordStatusCompleted},
		{ID: "4", Kind: models.RecordKindExpense, Amount: 80, Category: "Entertainment", OccurredOn: jan(10), Description: "Netflix Subscription", PaymentMethod: "Card", Status: models.RecordStatusCompleted},
		{ID: "5", Kind: models.RecordKindIncome, Amount: 700, Category: "Freelance", OccurredOn: jan(12), Description: "Web Design Project", PaymentMethod: "Bank Transfer", Status: models.RecordStatusCompleted},
		{ID: "6", Kind: models.RecordKindExpense, Amount: 60, Category: "Utilities", OccurredOn: jan(8), Description: "Electricity Bill", PaymentMethod: "Card", Status: models.RecordStatusCompleted},
		{ID: "7", Kind: models.RecordKindExpense, Amount: 120, Category: "Investment", OccurredOn: jan(14), Description: "Stock Purchase", PaymentMethod: "Bank Transfer", Status: models.RecordStatusCompleted},
	}
}
