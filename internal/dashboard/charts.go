package dashboard

import (
	"math"
	"time"

	"finboard/internal/models"
)

// Palette colors breakdown slices in order.
var Palette = []string{"#3b82f6", "#10b981", "#8b5cf6", "#06b6d4", "#f59e0b", "#ef4444", "#ec4899", "#14b8a6"}

// Series is one labelled line or bar set of a chart.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Chart is what a chart renderer consumes.
type Chart struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// DayActivity is one day of the weekly activity chart.
type DayActivity struct {
	Day     string  `json:"day"`
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Outcome float64 `json:"outcome"`
}

// WeekStart returns the Sunday on or before d.
func WeekStart(d models.Date) models.Date {
	return d.AddDays(-int(d.Weekday()))
}

// WeeklyActivity totals income and outcome per day for the Sunday to
// Saturday week containing day.
func WeeklyActivity(records []models.Record, day models.Date) []DayActivity {
	start := WeekStart(day)
	days := make([]DayActivity, 7)
	for i := range days {
		d := start.AddDays(i)
		days[i] = DayActivity{Day: d.Weekday().String()[:3], Date: d.String()}
	}
	for _, r := range records {
		if r.Status != models.RecordStatusCompleted {
			continue
		}
		offset := int(r.OccurredOn.Sub(start.Time) / (24 * time.Hour))
		if r.OccurredOn.Before(start.Time) || offset >= 7 {
			continue
		}
		if r.Kind == models.RecordKindIncome {
			days[offset].Income += r.Amount
		} else {
			days[offset].Outcome += r.Amount
		}
	}
	return days
}

// LatestWeek returns the start of the week of the most recent completed
// record, or of now when there is none.
func LatestWeek(records []models.Record, now time.Time) models.Date {
	latest, ok := latestDate(records)
	if !ok {
		return WeekStart(models.DateOf(now))
	}
	return WeekStart(latest)
}

// WeeklyChart turns weekly activity into a two-series chart.
func WeeklyChart(days []DayActivity) Chart {
	c := Chart{
		Labels: make([]string, len(days)),
		Series: []Series{
			{Label: "Income", Values: make([]float64, len(days))},
			{Label: "Outcome", Values: make([]float64, len(days))},
		},
	}
	for i, d := range days {
		c.Labels[i] = d.Day
		c.Series[0].Values[i] = d.Income
		c.Series[1].Values[i] = d.Outcome
	}
	return c
}

// ExpenseSlice is one category of the expense breakdown.
type ExpenseSlice struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// ExpenseBreakdown splits completed expenses by category in first-seen
// order. Percentages are rounded to one decimal.
func ExpenseBreakdown(records []models.Record) []ExpenseSlice {
	var total float64
	index := make(map[string]int)
	slices := []ExpenseSlice{}
	for _, r := range records {
		if r.Status != models.RecordStatusCompleted || r.Kind != models.RecordKindExpense {
			continue
		}
		total += r.Amount
		i, ok := index[r.Category]
		if !ok {
			i = len(slices)
			index[r.Category] = i
			slices = append(slices, ExpenseSlice{Category: r.Category, Color: Palette[i%len(Palette)]})
		}
		slices[i].Amount += r.Amount
	}
	if total > 0 {
		for i := range slices {
			slices[i].Percentage = math.Round(slices[i].Amount/total*1000) / 10
		}
	}
	return slices
}

// BreakdownChart turns an expense breakdown into a single-series chart.
func BreakdownChart(slices []ExpenseSlice) Chart {
	c := Chart{Labels: make([]string, len(slices)), Series: []Series{{Label: "Expenses", Values: make([]float64, len(slices))}}}
	for i, s := range slices {
		c.Labels[i] = s.Category
		c.Series[0].Values[i] = s.Amount
	}
	return c
}
