package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finboard/internal/dashboard"
	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/services"
)

// DashboardHandler handles the overview page.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles the summary cards
// @Summary     Month summary
// @Description Balance, income and expenses of a month with the change against the previous month
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month as YYYY-MM, defaults to the latest month with activity"
// @Success     200 {object} dashboard.Summary "Month summary"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var month *dashboard.Month
	if v := c.Query("month"); v != "" {
		m, err := dashboard.ParseMonth(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		month = &m
	}

	summary, err := h.dashboardService.GetMonthSummary(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetWeeklyActivity handles the weekly activity chart
// @Summary     Weekly activity
// @Description Income and outcome per day for one Sunday to Saturday week
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       week_start query string false "Any day of the week as YYYY-MM-DD"
// @Success     200 {object} services.WeeklyReport "Weekly activity"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/weekly [get]
func (h *DashboardHandler) GetWeeklyActivity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var week *models.Date
	if v := c.Query("week_start"); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		week = &d
	}

	report, err := h.dashboardService.GetWeeklyActivity(userID, week)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetExpenseBreakdown handles the expense breakdown chart
// @Summary     Expense breakdown
// @Description Completed expenses per category with their share of the total
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.BreakdownReport "Expense breakdown"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/breakdown [get]
func (h *DashboardHandler) GetExpenseBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.dashboardService.GetExpenseBreakdown(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
