package ledger

import (
	"sync"
	"time"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// Mode is the interaction mode of the transactions list.
type Mode string

const (
	// ModeBrowsing opens a record's details when it is clicked.
	ModeBrowsing Mode = "browsing"
	// ModeSelecting toggles a record's selection when it is clicked.
	ModeSelecting Mode = "selecting"
)

// View is the derived state rendered by the transactions page.
type View struct {
	Records    []models.Record `json:"records"`
	Summary    Summary         `json:"summary"`
	Categories []string        `json:"categories"`
	Total      int             `json:"total"`
	Query      Query           `json:"query"`
	Mode       Mode            `json:"mode"`
	Selected   []string        `json:"selected"`
}

// ClickResult describes what clicking a record did.
type ClickResult struct {
	Mode     Mode           `json:"mode"`
	Record   *models.Record `json:"record,omitempty"`
	Selected bool           `json:"selected"`
}

// Workspace is the state of one user's transactions page: the record store,
// the active query, the bulk selection and the interaction mode. All methods
// are safe for concurrent use and every mutation is applied atomically.
type Workspace struct {
	mu        sync.Mutex
	store     *Store
	engine    *Engine
	query     Query
	selection *Selection
	mode      Mode
	newID     IDFunc
	now       func() time.Time
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithIDFunc overrides record id generation.
func WithIDFunc(fn IDFunc) Option {
	return func(w *Workspace) { w.newID = fn }
}

// WithClock overrides the clock used to default record dates.
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) { w.now = now }
}

// WithEngine overrides the query engine.
func WithEngine(e *Engine) Option {
	return func(w *Workspace) { w.engine = e }
}

// NewWorkspace creates a workspace over the given records in browsing mode
// with the default query.
func NewWorkspace(records []models.Record, opts ...Option) (*Workspace, error) {
	store, err := NewStore(records...)
	if err != nil {
		return nil, err
	}
	w := &Workspace{
		store:     store,
		engine:    NewEngineFor("en"),
		query:     DefaultQuery(),
		selection: NewSelection(),
		mode:      ModeBrowsing,
		newID:     NewID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// View derives the current view.
func (w *Workspace) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

func (w *Workspace) viewLocked() View {
	all := w.store.All()
	records := w.engine.Apply(all, w.query)
	return View{
		Records:    records,
		Summary:    Summarize(records),
		Categories: Categories(all),
		Total:      len(all),
		Query:      w.query,
		Mode:       w.mode,
		Selected:   w.selection.IDs(),
	}
}

// Records returns every stored record in insertion order.
func (w *Workspace) Records() []models.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.All()
}

// Query returns the active query.
func (w *Workspace) Query() Query {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.query
}

// SetQuery replaces the active query. Empty fields take their defaults.
func (w *Workspace) SetQuery(q Query) error {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.query = q
	return nil
}

// UpdateQuery merges u over the active query and returns the view under
// the result. An invalid result leaves the active query unchanged.
func (w *Workspace) UpdateQuery(u QueryUpdate) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := u.Merge(w.query).Normalize()
	if err := next.Validate(); err != nil {
		return View{}, err
	}
	w.query = next
	return w.viewLocked(), nil
}

// ToggleSort applies Query.ToggleSort to the active query.
func (w *Workspace) ToggleSort(field SortField) (Query, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := w.query.ToggleSort(field)
	if err := next.Validate(); err != nil {
		return w.query, err
	}
	w.query = next
	return w.query, nil
}

// AddRecord creates a record from a form draft and appends it.
func (w *Workspace) AddRecord(d Draft) (models.Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, err := NewRecord(d, w.newID, models.DateOf(w.now()))
	if err != nil {
		return models.Record{}, err
	}
	if err := w.store.Add(r); err != nil {
		return models.Record{}, err
	}
	return r, nil
}

// ReplaceRecord swaps a stored record for r as a whole.
func (w *Workspace) ReplaceRecord(r models.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Replace(r)
}

// Record returns the stored record with the given id.
func (w *Workspace) Record(id string) (models.Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.store.Get(id)
	if !ok {
		return models.Record{}, apperrors.ErrRecordNotFound
	}
	return r, nil
}

// DeleteRecord removes a record once the deletion is confirmed. The id is
// also dropped from the selection. Deleting an unknown id is not an error.
func (w *Workspace) DeleteRecord(id string, confirmed bool) (bool, error) {
	if !confirmed {
		return false, apperrors.ErrConfirmationRequired
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	removed := w.store.Remove(id)
	w.selection.Forget(id)
	return removed, nil
}

// Mode returns the interaction mode.
func (w *Workspace) Mode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

// ToggleBulkMode switches between browsing and selecting. The selection is
// cleared on every switch.
func (w *Workspace) ToggleBulkMode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == ModeSelecting {
		w.mode = ModeBrowsing
	} else {
		w.mode = ModeSelecting
	}
	w.selection.Clear()
	return w.mode
}

// Click handles a click on a record: in browsing mode it returns the record
// for the detail view, in selecting mode it toggles the record's selection.
func (w *Workspace) Click(id string) (ClickResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.store.Get(id)
	if !ok {
		return ClickResult{Mode: w.mode}, apperrors.ErrRecordNotFound
	}
	if w.mode == ModeSelecting {
		return ClickResult{Mode: w.mode, Selected: w.selection.Toggle(id)}, nil
	}
	return ClickResult{Mode: w.mode, Record: &r}, nil
}

// ToggleSelected toggles one record's selection. Only allowed while selecting.
func (w *Workspace) ToggleSelected(id string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode != ModeSelecting {
		return false, apperrors.ErrNotSelecting
	}
	if _, ok := w.store.Get(id); !ok {
		return false, apperrors.ErrRecordNotFound
	}
	return w.selection.Toggle(id), nil
}

// SelectAll toggles the selection of every record in the current view.
// Only allowed while selecting.
func (w *Workspace) SelectAll() ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode != ModeSelecting {
		return nil, apperrors.ErrNotSelecting
	}
	w.selection.SelectAll(w.engine.Apply(w.store.All(), w.query))
	return w.selection.IDs(), nil
}

// Selected returns the selected ids in sorted order.
func (w *Workspace) Selected() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selection.IDs()
}

// BulkDeleteSelected removes every selected record once confirmed, clears
// the selection and returns to browsing mode. It returns how many records
// were removed.
func (w *Workspace) BulkDeleteSelected(confirmed bool) (int, error) {
	if !confirmed {
		return 0, apperrors.ErrConfirmationRequired
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selection.Len() == 0 {
		return 0, apperrors.ErrNothingSelected
	}
	removed := w.store.RemoveMany(w.selection.Set())
	w.selection.Clear()
	w.mode = ModeBrowsing
	return removed, nil
}
