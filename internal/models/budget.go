package models

// BudgetStatus classifies how much of an allocation has been spent
type BudgetStatus string

const (
	BudgetStatusGood    BudgetStatus = "good"
	BudgetStatusWarning BudgetStatus = "warning"
	BudgetStatusOver    BudgetStatus = "over"
)

// Budget is a spending allocation for a category label. Spent is entered
// independently of the ledger's records.
type Budget struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	Color     string  `json:"color"`
	Icon      string  `json:"icon"`
}
