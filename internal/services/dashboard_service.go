package services

import (
	"time"

	"finboard/internal/dashboard"
	"finboard/internal/models"
)

// dashboardService derives the overview page from a user's records.
type dashboardService struct {
	registry       *Registry
	openingBalance float64
	now            func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(registry *Registry, openingBalance float64) DashboardServicer {
	return &dashboardService{registry: registry, openingBalance: openingBalance, now: time.Now}
}

func (s *dashboardService) records(userID string) ([]models.Record, error) {
	w, err := s.registry.Workspace(userID)
	if err != nil {
		return nil, err
	}
	return w.Records(), nil
}

// GetMonthSummary summarizes a month.
func (s *dashboardService) GetMonthSummary(userID string, month *dashboard.Month) (*dashboard.Summary, error) {
	records, err := s.records(userID)
	if err != nil {
		return nil, err
	}
	m := dashboard.LatestMonth(records, s.now())
	if month != nil {
		m = *month
	}
	summary := dashboard.MonthSummary(records, m, s.openingBalance)
	return &summary, nil
}

// GetWeeklyActivity returns the income and outcome of each day of a week.
func (s *dashboardService) GetWeeklyActivity(userID string, weekStart *models.Date) (*WeeklyReport, error) {
	records, err := s.records(userID)
	if err != nil {
		return nil, err
	}
	start := dashboard.LatestWeek(records, s.now())
	if weekStart != nil {
		start = dashboard.WeekStart(*weekStart)
	}
	days := dashboard.WeeklyActivity(records, start)
	return &WeeklyReport{WeekStart: start.String(), Days: days, Chart: dashboard.WeeklyChart(days)}, nil
}

// GetExpenseBreakdown splits expenses by category.
func (s *dashboardService) GetExpenseBreakdown(userID string) (*BreakdownReport, error) {
	records, err := s.records(userID)
	if err != nil {
		return nil, err
	}
	slices := dashboard.ExpenseBreakdown(records)
	return &BreakdownReport{Slices: slices, Chart: dashboard.BreakdownChart(slices)}, nil
}
