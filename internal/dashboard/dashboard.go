// Package dashboard derives the overview page from a user's records: the
// monthly summary cards, the weekly activity chart and the expense
// breakdown. Only completed records are counted.
package dashboard

import (
	"fmt"
	"math"
	"time"

	"finboard/internal/models"
)

// MonthLayout is the wire format of a Month.
const MonthLayout = "2006-01"

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month d falls in.
func MonthOf(d models.Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, use YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Previous returns the month before m.
func (m Month) Previous() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Contains reports whether d falls in m.
func (m Month) Contains(d models.Date) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

// End returns the last day of m.
func (m Month) End() models.Date {
	return models.NewDate(m.Year, m.Month+1, 0)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Summary backs the summary cards. Changes are whole percentages relative
// to the previous month and are zero when the previous month is zero.
type Summary struct {
	Month         string  `json:"month"`
	TotalBalance  float64 `json:"total_balance"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	BalanceChange int     `json:"balance_change"`
	IncomeChange  int     `json:"income_change"`
	ExpenseChange int     `json:"expense_change"`
}

// MonthSummary summarizes month m. The balance is the opening balance plus
// the net of every completed record up to the end of the month.
func MonthSummary(records []models.Record, m Month, openingBalance float64) Summary {
	prev := m.Previous()
	income, expenses := monthTotals(records, m)
	prevIncome, prevExpenses := monthTotals(records, prev)
	balance := balanceAt(records, m.End(), openingBalance)
	prevBalance := balanceAt(records, prev.End(), openingBalance)

	return Summary{
		Month:         m.String(),
		TotalBalance:  balance,
		TotalIncome:   income,
		TotalExpenses: expenses,
		BalanceChange: change(balance, prevBalance),
		IncomeChange:  change(income, prevIncome),
		ExpenseChange: change(expenses, prevExpenses),
	}
}

// LatestMonth returns the month of the most recent completed record, or
// the month of now when there is none.
func LatestMonth(records []models.Record, now time.Time) Month {
	latest, ok := latestDate(records)
	if !ok {
		return MonthOf(models.DateOf(now))
	}
	return MonthOf(latest)
}

func monthTotals(records []models.Record, m Month) (income, expenses float64) {
	for _, r := range records {
		if r.Status != models.RecordStatusCompleted || !m.Contains(r.OccurredOn) {
			continue
		}
		if r.Kind == models.RecordKindIncome {
			income += r.Amount
		} else {
			expenses += r.Amount
		}
	}
	return income, expenses
}

func balanceAt(records []models.Record, end models.Date, opening float64) float64 {
	balance := opening
	for _, r := range records {
		if r.Status != models.RecordStatusCompleted || r.OccurredOn.Compare(end) > 0 {
			continue
		}
		if r.Kind == models.RecordKindIncome {
			balance += r.Amount
		} else {
			balance -= r.Amount
		}
	}
	return balance
}

func change(current, previous float64) int {
	if previous == 0 {
		return 0
	}
	return int(math.Round((current - previous) / math.Abs(previous) * 100))
}

func latestDate(records []models.Record) (models.Date, bool) {
	var latest models.Date
	found := false
	for _, r := range records {
		if r.Status != models.RecordStatusCompleted {
			continue
		}
		if !found || r.OccurredOn.Compare(latest) > 0 {
			latest = r.OccurredOn
			found = true
		}
	}
	return latest, found
}
