package services

import (
	"context"
	"io"

	"finboard/internal/auth"
	"finboard/internal/budget"
	"finboard/internal/dashboard"
	"finboard/internal/export"
	"finboard/internal/ledger"
	"finboard/internal/models"
	"finboard/internal/pagination"
)

// SessionServicer defines the contract for the simulated sign-in session.
type SessionServicer interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	LoginWithGoogle(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (models.User, bool)
	State() auth.State
}

var _ SessionServicer = (*auth.Session)(nil)

// TransactionPage is one page of the current transactions view together
// with the state the page renders around it.
type TransactionPage struct {
	pagination.PageResponse[models.Record]
	Summary      ledger.Summary `json:"summary"`
	Categories   []string       `json:"categories"`
	Query        ledger.Query   `json:"query"`
	Mode         ledger.Mode    `json:"mode"`
	Selected     []string       `json:"selected"`
	TotalRecords int            `json:"total_records"`
}

// RecordUpdate is the full replacement of a record's editable fields.
type RecordUpdate struct {
	Kind          models.RecordKind
	Amount        float64
	Category      string
	Description   string
	Date          models.Date
	PaymentMethod string
	Status        models.RecordStatus
}

// SelectionState reports the bulk selection after a change.
type SelectionState struct {
	Mode     ledger.Mode `json:"mode"`
	Selected []string    `json:"selected"`
	Count    int         `json:"count"`
}

// TransactionServicer defines the contract for the transactions page.
type TransactionServicer interface {
	ListTransactions(userID string, update ledger.QueryUpdate, page pagination.PageRequest) (*TransactionPage, error)
	CurrentView(userID string) (*ledger.View, error)
	GetTransaction(userID, id string) (*models.Record, error)
	CreateTransaction(userID string, draft ledger.Draft) (*models.Record, error)
	UpdateTransaction(userID, id string, update RecordUpdate) (*models.Record, error)
	DeleteTransaction(userID, id string, confirmed bool) (bool, error)
	ToggleSort(userID string, field ledger.SortField) (*ledger.Query, error)
	GetCategories(userID string) ([]string, error)
	ToggleBulkMode(userID string) (*SelectionState, error)
	ClickTransaction(userID, id string) (*ledger.ClickResult, error)
	ToggleSelected(userID, id string) (*SelectionState, error)
	SelectAll(userID string) (*SelectionState, error)
	DeleteSelected(userID string, confirmed bool) (int, error)
}

// BudgetSummary totals a user's budgets and counts them by status.
type BudgetSummary struct {
	budget.Totals
	Good    int `json:"good"`
	Warning int `json:"warning"`
	Over    int `json:"over"`
}

// BudgetServicer defines the contract for the budget planner.
type BudgetServicer interface {
	CreateBudget(userID string, draft budget.Draft) (*budget.Progress, error)
	GetUserBudgets(userID string) ([]budget.Progress, error)
	GetBudgetByID(userID, budgetID string) (*budget.Progress, error)
	UpdateBudget(userID, budgetID string, draft budget.Draft) (*budget.Progress, error)
	RecordSpending(userID, budgetID string, spent float64) (*budget.Progress, error)
	DeleteBudget(userID, budgetID string, confirmed bool) error
	GetBudgetSummary(userID string) (*BudgetSummary, error)
}

// WeeklyReport is the weekly activity chart and its raw points.
type WeeklyReport struct {
	WeekStart string                  `json:"week_start"`
	Days      []dashboard.DayActivity `json:"days"`
	Chart     dashboard.Chart         `json:"chart"`
}

// BreakdownReport is the expense breakdown chart and its slices.
type BreakdownReport struct {
	Slices []dashboard.ExpenseSlice `json:"slices"`
	Chart  dashboard.Chart          `json:"chart"`
}

// DashboardServicer defines the contract for the overview page. A nil
// month or week selects the one holding the latest completed record.
type DashboardServicer interface {
	GetMonthSummary(userID string, month *dashboard.Month) (*dashboard.Summary, error)
	GetWeeklyActivity(userID string, weekStart *models.Date) (*WeeklyReport, error)
	GetExpenseBreakdown(userID string) (*BreakdownReport, error)
}

// ExportServicer defines the contract for exporting the transactions view.
type ExportServicer interface {
	ExportView(userID string, format export.Format, w io.Writer) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
