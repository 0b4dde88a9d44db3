package ledger

import "finboard/internal/models"

// Summary holds the totals shown on the summary cards.
type Summary struct {
	Income       float64 `json:"income"`
	Expenses     float64 `json:"expenses"`
	Net          float64 `json:"net"`
	IncomeCount  int     `json:"income_count"`
	ExpenseCount int     `json:"expense_count"`
}

// Summarize totals income and expenses over records.
func Summarize(records []models.Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Kind {
		case models.RecordKindIncome:
			s.Income += r.Amount
			s.IncomeCount++
		case models.RecordKindExpense:
			s.Expenses += r.Amount
			s.ExpenseCount++
		}
	}
	s.Net = s.Income - s.Expenses
	return s
}

// Combine merges two summaries of disjoint record sets. Net is recomputed
// from the merged sums.
func (s Summary) Combine(o Summary) Summary {
	out := Summary{
		Income:       s.Income + o.Income,
		Expenses:     s.Expenses + o.Expenses,
		IncomeCount:  s.IncomeCount + o.IncomeCount,
		ExpenseCount: s.ExpenseCount + o.ExpenseCount,
	}
	out.Net = out.Income - out.Expenses
	return out
}
