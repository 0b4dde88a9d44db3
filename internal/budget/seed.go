package budget

import "finboard/internal/models"

// DemoBudgets returns the budgets a new planner starts with.
func DemoBudgets() []models.Budget {
	return []models.Budget{
		{ID: "1", Category: "Food & Dining", Allocated: 800, Spent: 620, Color: "#10b981", Icon: "🍔"},
		{ID: "2", Category: "Transportation", Allocated: 400, Spent: 280, Color: "#3b82f6", Icon: "🚗"},
		{ID: "3", Category: "Entertainment", Allocated: 300, Spent: 340, Color: "#8b5cf6", Icon: "🎮"},
		{ID: "4", Category: "Shopping", Allocated: 500, Spent: 380, Color: "#f59e0b", Icon: "🛍️"},
		{ID: "5", Category: "Bills & Utilities", Allocated: 600, Spent: 550, Color: "#ef4444", Icon: "💡"},
		{ID: "6", Category: "Healthcare", Allocated: 250, Spent: 180, Color: "#06b6d4", Icon: "🏥"},
	}
}
