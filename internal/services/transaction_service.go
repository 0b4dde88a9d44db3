package services

import (
	"finboard/internal/ledger"
	"finboard/internal/models"
	"finboard/internal/pagination"
)

// transactionService handles the transactions page of each user.
type transactionService struct {
	registry *Registry
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(registry *Registry) TransactionServicer {
	return &transactionService{registry: registry}
}

// ListTransactions merges update over the active query of the user's
// workspace and returns one page of the resulting view.
func (s *transactionService) ListTransactions(userID string, update ledger.QueryUpdate, page pagination.PageRequest) (*TransactionPage, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	view, err := w.UpdateQuery(update)
	if err != nil {
		return nil, err
	}
	return &TransactionPage{
		PageResponse: pagination.Slice(view.Records, page),
		Summary:      view.Summary,
		Categories:   view.Categories,
		Query:        view.Query,
		Mode:         view.Mode,
		Selected:     view.Selected,
		TotalRecords: view.Total,
	}, nil
}

// CurrentView returns the view under the active query.
func (s *transactionService) CurrentView(userID string) (*ledger.View, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	view := w.View()
	return &view, nil
}

// GetTransaction returns one record.
func (s *transactionService) GetTransaction(userID, id string) (*models.Record, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	r, err := w.Record(id)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateTransaction adds a record from a form draft.
func (s *transactionService) CreateTransaction(userID string, draft ledger.Draft) (*models.Record, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	r, err := w.AddRecord(draft)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateTransaction replaces every editable field of a record.
func (s *transactionService) UpdateTransaction(userID, id string, update RecordUpdate) (*models.Record, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	r := models.Record{
		ID:            id,
		Kind:          update.Kind,
		Amount:        update.Amount,
		Category:      update.Category,
		Description:   update.Description,
		OccurredOn:    update.Date,
		PaymentMethod: update.PaymentMethod,
		Status:        update.Status,
	}
	if r.Status == "" {
		r.Status = models.RecordStatusCompleted
	}
	if err := w.ReplaceRecord(r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteTransaction removes a record once confirmed and reports whether it
// existed.
func (s *transactionService) DeleteTransaction(userID, id string, confirmed bool) (bool, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return false, err
	}
	return w.DeleteRecord(id, confirmed)
}

// ToggleSort flips or switches the sort of the active query.
func (s *transactionService) ToggleSort(userID string, field ledger.SortField) (*ledger.Query, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	q, err := w.ToggleSort(field)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetCategories returns the category filter options.
func (s *transactionService) GetCategories(userID string) ([]string, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	return ledger.Categories(w.Records()), nil
}

// ToggleBulkMode enters or leaves bulk select mode.
func (s *transactionService) ToggleBulkMode(userID string) (*SelectionState, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	mode := w.ToggleBulkMode()
	return &SelectionState{Mode: mode, Selected: []string{}}, nil
}

// ClickTransaction opens or selects a record depending on the mode.
func (s *transactionService) ClickTransaction(userID, id string) (*ledger.ClickResult, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	res, err := w.Click(id)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ToggleSelected toggles one record's selection.
func (s *transactionService) ToggleSelected(userID, id string) (*SelectionState, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	if _, err := w.ToggleSelected(id); err != nil {
		return nil, err
	}
	return selectionState(w), nil
}

// SelectAll toggles the selection of every visible record.
func (s *transactionService) SelectAll(userID string) (*SelectionState, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	if _, err := w.SelectAll(); err != nil {
		return nil, err
	}
	return selectionState(w), nil
}

// DeleteSelected removes every selected record once confirmed.
func (s *transactionService) DeleteSelected(userID string, confirmed bool) (int, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return 0, err
	}
	return w.BulkDeleteSelected(confirmed)
}

func selectionState(w *ledger.Workspace) *SelectionState {
	selected := w.Selected()
	return &SelectionState{Mode: w.Mode(), Selected: selected, Count: len(selected)}
}
