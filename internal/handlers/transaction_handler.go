package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/export"
	"finboard/internal/ledger"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	exportService      services.ExportServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, exportService services.ExportServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, exportService: exportService, auditService: auditService}
}

// ListTransactionsQuery represents the query string of the transactions list.
// Parameters that are absent keep their current value.
type ListTransactionsQuery struct {
	Search    string `form:"search" binding:"max=200"`
	Type      string `form:"type" binding:"omitempty,type_filter"`
	Category  string `form:"category" binding:"max=100"`
	Sort      string `form:"sort" binding:"omitempty,sort_field"`
	Direction string `form:"direction" binding:"omitempty,sort_direction"`
	pagination.PageRequest
}

// CreateTransactionRequest represents the add-transaction form.
type CreateTransactionRequest struct {
	Type          models.RecordKind `json:"type" binding:"omitempty,record_kind"`
	Amount        amountText        `json:"amount" swaggertype:"string"`
	Description   string            `json:"description" binding:"max=500"`
	Category      string            `json:"category" binding:"max=100"`
	PaymentMethod string            `json:"payment_method" binding:"max=100"`
	Date          string            `json:"date"`
}

// UpdateTransactionRequest represents the full replacement of a transaction.
type UpdateTransactionRequest struct {
	Type          models.RecordKind   `json:"type" binding:"required,record_kind"`
	Amount        *float64            `json:"amount" binding:"required,gte=0"`
	Description   string              `json:"description" binding:"max=500"`
	Category      string              `json:"category" binding:"required,max=100"`
	PaymentMethod string              `json:"payment_method" binding:"max=100"`
	Date          string              `json:"date" binding:"required"`
	Status        models.RecordStatus `json:"status" binding:"omitempty,record_status"`
}

// ListTransactions handles the filtered, sorted and paged transactions view
// @Summary     List transactions
// @Description Apply search, type, category and sort to the transactions view and return one page of it
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       search    query string false "Case-insensitive text in description or category"
// @Param       type      query string false "all, income or expense"
// @Param       category  query string false "Category label or all"
// @Param       sort      query string false "date, amount or category"
// @Param       direction query string false "asc or desc"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page"
// @Success     200 {object} services.TransactionPage "Transactions view"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListTransactionsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var update ledger.QueryUpdate
	if _, ok := c.GetQuery("search"); ok {
		update.Search = &req.Search
	}
	if _, ok := c.GetQuery("type"); ok {
		t := ledger.TypeFilter(req.Type)
		update.Type = &t
	}
	if _, ok := c.GetQuery("category"); ok {
		update.Category = &req.Category
	}
	if _, ok := c.GetQuery("sort"); ok {
		f := ledger.SortField(req.Sort)
		update.SortField = &f
	}
	if _, ok := c.GetQuery("direction"); ok {
		d := ledger.SortDirection(req.Direction)
		update.SortDirection = &d
	}

	page, err := h.transactionService.ListTransactions(userID, update, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Add a transaction from the add-transaction form
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.transactionService.CreateTransaction(userID, ledger.Draft{
		Kind:          req.Type,
		Amount:        string(req.Amount),
		Description:   req.Description,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", record.ID, c.ClientIP(),
		map[string]interface{}{"type": record.Kind, "amount": record.Amount, "category": record.Category})

	c.JSON(http.StatusCreated, TransactionResponse{Transaction: record})
}

// GetTransaction handles retrieving a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.transactionService.GetTransaction(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: record})
}

// UpdateTransaction handles replacing a transaction
// @Summary     Update a transaction
// @Description Replace every editable field of a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Transaction details"
// @Success     200 {object} TransactionResponse "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := models.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.transactionService.UpdateTransaction(userID, id, services.RecordUpdate{
		Kind:          req.Type,
		Amount:        *req.Amount,
		Category:      strings.TrimSpace(req.Category),
		Description:   strings.TrimSpace(req.Description),
		Date:          date,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Status:        req.Status,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", id, c.ClientIP(),
		map[string]interface{}{"amount": record.Amount, "status": record.Status})

	c.JSON(http.StatusOK, TransactionResponse{Transaction: record})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete a transaction
// @Description Delete a transaction. Requires confirm=true.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id      path  string true "Transaction ID"
// @Param       confirm query bool   true "Confirm the deletion"
// @Success     200 {object} DeleteResponse "Whether a transaction was removed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     428 {object} ErrorResponse "Confirmation required"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	removed, err := h.transactionService.DeleteTransaction(userID, id, isConfirmed(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	if removed {
		h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", id, c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, DeleteResponse{Deleted: removed})
}

// ToggleSort handles clicking a column header
// @Summary     Toggle sort
// @Description Flip the direction when sorting by the same field, otherwise sort by the new field descending
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       field path string true "date, amount or category"
// @Success     200 {object} QueryResponse "Active query"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions/sort/{field} [post]
func (h *TransactionHandler) ToggleSort(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	q, err := h.transactionService.ToggleSort(userID, ledger.SortField(c.Param("field")))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, QueryResponse{Query: q})
}

// GetCategories handles listing the category filter options
// @Summary     List categories
// @Description List "all" followed by every category in use
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CategoriesResponse "Categories"
// @Router      /transactions/categories [get]
func (h *TransactionHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.transactionService.GetCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoriesResponse{Categories: categories})
}

// ExportTransactions handles downloading the current view
// @Summary     Export transactions
// @Description Download the current transactions view as CSV or XLSX
// @Tags        transactions
// @Produce     text/csv
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       format query string false "csv or xlsx"
// @Success     200 {file} file "Export file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", "attachment; filename="+format.Filename(time.Now()))
	if err := h.exportService.ExportView(userID, format, c.Writer); err != nil {
		c.Header("Content-Disposition", "")
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ToggleBulkMode handles the bulk select button
// @Summary     Toggle bulk select mode
// @Description Enter or leave bulk select mode. The selection is cleared either way.
// @Tags        selection
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SelectionState "Selection"
// @Router      /transactions/selection/mode [post]
func (h *TransactionHandler) ToggleBulkMode(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := h.transactionService.ToggleBulkMode(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// ClickTransaction handles a click on a transaction row
// @Summary     Click a transaction
// @Description Return the transaction details, or toggle its selection in bulk select mode
// @Tags        selection
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} ledger.ClickResult "Click result"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id}/click [post]
func (h *TransactionHandler) ClickTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	res, err := h.transactionService.ClickTransaction(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ToggleSelected handles a row checkbox
// @Summary     Toggle a selection
// @Tags        selection
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} services.SelectionState "Selection"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Not in bulk select mode"
// @Router      /transactions/selection/{id} [post]
func (h *TransactionHandler) ToggleSelected(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := h.transactionService.ToggleSelected(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// SelectAll handles the select-all checkbox
// @Summary     Toggle select all
// @Description Select every visible transaction, or clear the selection when exactly those are selected
// @Tags        selection
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SelectionState "Selection"
// @Failure     409 {object} ErrorResponse "Not in bulk select mode"
// @Router      /transactions/selection/all [post]
func (h *TransactionHandler) SelectAll(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := h.transactionService.SelectAll(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// DeleteSelected handles the bulk delete button
// @Summary     Delete selected transactions
// @Description Delete every selected transaction and leave bulk select mode. Requires confirm=true.
// @Tags        selection
// @Produce     json
// @Security    BearerAuth
// @Param       confirm query bool true "Confirm the deletion"
// @Success     200 {object} BulkDeleteResponse "Number of deleted transactions"
// @Failure     400 {object} ErrorResponse "Nothing selected"
// @Failure     428 {object} ErrorResponse "Confirmation required"
// @Router      /transactions/selection/delete [post]
func (h *TransactionHandler) DeleteSelected(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	n, err := h.transactionService.DeleteSelected(userID, isConfirmed(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "BULK_DELETE_TRANSACTIONS", "transaction", "", c.ClientIP(),
		map[string]interface{}{"count": n})

	c.JSON(http.StatusOK, BulkDeleteResponse{Deleted: n})
}
