package services

import (
	"sync"

	"finboard/internal/budget"
	"finboard/internal/ledger"
	"finboard/internal/logger"
	"finboard/internal/models"
)

// Registry holds one ledger workspace and one budget planner per user,
// created on first use.
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*ledger.Workspace
	planners   map[string]*budget.Planner
	engine     *ledger.Engine
	seed       bool
	options    []ledger.Option
}

// NewRegistry creates an empty registry. When seed is true new workspaces
// and planners start with the demo data.
func NewRegistry(engine *ledger.Engine, seed bool, opts ...ledger.Option) *Registry {
	return &Registry{
		workspaces: make(map[string]*ledger.Workspace),
		planners:   make(map[string]*budget.Planner),
		engine:     engine,
		seed:       seed,
		options:    opts,
	}
}

// Workspace returns the user's workspace.
func (r *Registry) Workspace(userID string) (*ledger.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.workspaces[userID]; ok {
		return w, nil
	}
	var records []models.Record
	if r.seed {
		records = ledger.DemoRecords()
	}
	opts := r.options
	if r.engine != nil {
		opts = append([]ledger.Option{ledger.WithEngine(r.engine)}, opts...)
	}
	w, err := ledger.NewWorkspace(records, opts...)
	if err != nil {
		return nil, err
	}
	r.workspaces[userID] = w
	logger.Get().Debugw("Created ledger workspace", "user_id", userID, "records", len(records))
	return w, nil
}

// Planner returns the user's budget planner.
func (r *Registry) Planner(userID string) *budget.Planner {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.planners[userID]; ok {
		return p
	}
	var budgets []models.Budget
	if r.seed {
		budgets = budget.DemoBudgets()
	}
	p := budget.NewPlanner(budgets, nil)
	r.planners[userID] = p
	return p
}
