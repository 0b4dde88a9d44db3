// Package budget plans per-category spending allocations and reports how
// much of each allocation has been used.
package budget

import (
	"regexp"
	"strings"
	"sync"

	apperrors "finboard/internal/errors"
	"finboard/internal/ledger"
	"finboard/internal/models"
)

// Defaults applied to a draft that leaves them empty.
const (
	DefaultColor = "#3b82f6"
	DefaultIcon  = "💰"
)

// Status thresholds, as a percentage of the allocation.
const (
	OverThreshold    = 100.0
	WarningThreshold = 80.0
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Draft is a budget as submitted from the budget form.
type Draft struct {
	Category  string `json:"category"`
	Allocated string `json:"allocated"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
}

// Totals sums every budget of a planner.
type Totals struct {
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// Progress is a budget together with how far it has been used.
type Progress struct {
	models.Budget
	Percentage float64             `json:"percentage"`
	Remaining  float64             `json:"remaining"`
	Status     models.BudgetStatus `json:"status"`
}

// Status classifies spending against an allocation. A zero allocation is
// over as soon as anything is spent.
func Status(spent, allocated float64) models.BudgetStatus {
	if allocated <= 0 {
		if spent > 0 {
			return models.BudgetStatusOver
		}
		return models.BudgetStatusGood
	}
	pct := spent / allocated * 100
	switch {
	case pct >= OverThreshold:
		return models.BudgetStatusOver
	case pct >= WarningThreshold:
		return models.BudgetStatusWarning
	default:
		return models.BudgetStatusGood
	}
}

// ProgressOf computes the progress of one budget.
func ProgressOf(b models.Budget) Progress {
	p := Progress{Budget: b, Remaining: b.Allocated - b.Spent, Status: Status(b.Spent, b.Allocated)}
	if b.Allocated > 0 {
		p.Percentage = b.Spent / b.Allocated * 100
	}
	return p
}

// Planner holds one user's budgets. It is safe for concurrent use.
type Planner struct {
	mu      sync.Mutex
	budgets []models.Budget
	newID   ledger.IDFunc
}

// NewPlanner creates a planner over budgets. A nil newID uses ledger.NewID.
func NewPlanner(budgets []models.Budget, newID ledger.IDFunc) *Planner {
	if newID == nil {
		newID = ledger.NewID
	}
	return &Planner{budgets: append([]models.Budget(nil), budgets...), newID: newID}
}

func parseDraft(d Draft) (category string, allocated float64, color, icon string, err error) {
	category = strings.TrimSpace(d.Category)
	if category == "" || strings.TrimSpace(d.Allocated) == "" {
		return "", 0, "", "", apperrors.ErrMissingFields
	}
	allocated, err = ledger.ParseAmount(d.Allocated)
	if err != nil {
		return "", 0, "", "", err
	}
	color = strings.TrimSpace(d.Color)
	if color == "" {
		color = DefaultColor
	}
	if !hexColor.MatchString(color) {
		return "", 0, "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, "color must be a hex color such as #3b82f6")
	}
	icon = strings.TrimSpace(d.Icon)
	if icon == "" {
		icon = DefaultIcon
	}
	return category, allocated, color, icon, nil
}

// Create adds a budget with nothing spent yet.
func (p *Planner) Create(d Draft) (models.Budget, error) {
	category, allocated, color, icon, err := parseDraft(d)
	if err != nil {
		return models.Budget{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	b := models.Budget{
		ID:        p.newID(),
		Category:  category,
		Allocated: allocated,
		Color:     color,
		Icon:      icon,
	}
	p.budgets = append(p.budgets, b)
	return b, nil
}

// Update replaces a budget's category, allocation, color and icon. The
// spent amount is kept.
func (p *Planner) Update(id string, d Draft) (models.Budget, error) {
	category, allocated, color, icon, err := parseDraft(d)
	if err != nil {
		return models.Budget{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(id)
	if i < 0 {
		return models.Budget{}, apperrors.ErrBudgetNotFound
	}
	b := p.budgets[i]
	b.Category, b.Allocated, b.Color, b.Icon = category, allocated, color, icon
	p.budgets[i] = b
	return b, nil
}

// RecordSpending sets how much has been spent against a budget.
func (p *Planner) RecordSpending(id string, spent float64) (models.Budget, error) {
	if spent < 0 {
		return models.Budget{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "spent must not be negative")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(id)
	if i < 0 {
		return models.Budget{}, apperrors.ErrBudgetNotFound
	}
	p.budgets[i].Spent = spent
	return p.budgets[i], nil
}

// Delete removes a budget once the deletion is confirmed.
func (p *Planner) Delete(id string, confirmed bool) error {
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(id)
	if i < 0 {
		return apperrors.ErrBudgetNotFound
	}
	p.budgets = append(p.budgets[:i], p.budgets[i+1:]...)
	return nil
}

// Get returns a budget by id.
func (p *Planner) Get(id string) (models.Budget, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(id)
	if i < 0 {
		return models.Budget{}, apperrors.ErrBudgetNotFound
	}
	return p.budgets[i], nil
}

// List returns every budget in creation order.
func (p *Planner) List() []models.Budget {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Budget{}, p.budgets...)
}

// Progress returns the progress of every budget in creation order.
func (p *Planner) Progress() []Progress {
	budgets := p.List()
	out := make([]Progress, len(budgets))
	for i, b := range budgets {
		out[i] = ProgressOf(b)
	}
	return out
}

// Totals sums allocations and spending over every budget.
func (p *Planner) Totals() Totals {
	var t Totals
	for _, b := range p.List() {
		t.Allocated += b.Allocated
		t.Spent += b.Spent
	}
	t.Remaining = t.Allocated - t.Spent
	return t
}

func (p *Planner) indexOf(id string) int {
	for i, b := range p.budgets {
		if b.ID == id {
			return i
		}
	}
	return -1
}
