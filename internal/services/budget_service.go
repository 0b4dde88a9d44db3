package services

import (
	"finboard/internal/budget"
	"finboard/internal/models"
)

// budgetService handles the budget planner of each user.
type budgetService struct {
	registry *Registry
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(registry *Registry) BudgetServicer {
	return &budgetService{registry: registry}
}

func progressOf(b models.Budget) *budget.Progress {
	p := budget.ProgressOf(b)
	return &p
}

// CreateBudget adds a budget.
func (s *budgetService) CreateBudget(userID string, draft budget.Draft) (*budget.Progress, error) {
	b, err := s.registry.Planner(userID).Create(draft)
	if err != nil {
		return nil, err
	}
	return progressOf(b), nil
}

// GetUserBudgets returns every budget with its progress.
func (s *budgetService) GetUserBudgets(userID string) ([]budget.Progress, error) {
	return s.registry.Planner(userID).Progress(), nil
}

// GetBudgetByID returns one budget with its progress.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*budget.Progress, error) {
	b, err := s.registry.Planner(userID).Get(budgetID)
	if err != nil {
		return nil, err
	}
	return progressOf(b), nil
}

// UpdateBudget replaces a budget's category, allocation, color and icon.
func (s *budgetService) UpdateBudget(userID, budgetID string, draft budget.Draft) (*budget.Progress, error) {
	b, err := s.registry.Planner(userID).Update(budgetID, draft)
	if err != nil {
		return nil, err
	}
	return progressOf(b), nil
}

// RecordSpending sets the amount spent against a budget.
func (s *budgetService) RecordSpending(userID, budgetID string, spent float64) (*budget.Progress, error) {
	b, err := s.registry.Planner(userID).RecordSpending(budgetID, spent)
	if err != nil {
		return nil, err
	}
	return progressOf(b), nil
}

// DeleteBudget removes a budget once confirmed.
func (s *budgetService) DeleteBudget(userID, budgetID string, confirmed bool) error {
	return s.registry.Planner(userID).Delete(budgetID, confirmed)
}

// GetBudgetSummary totals the user's budgets.
func (s *budgetService) GetBudgetSummary(userID string) (*BudgetSummary, error) {
	p := s.registry.Planner(userID)
	summary := &BudgetSummary{Totals: p.Totals()}
	for _, pr := range p.Progress() {
		switch pr.Status {
		case models.BudgetStatusOver:
			summary.Over++
		case models.BudgetStatusWarning:
			summary.Warning++
		default:
			summary.Good++
		}
	}
	return summary, nil
}
