package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"finboard/internal/budget"
	apperrors "finboard/internal/errors"
	"finboard/internal/ledger"
	"finboard/internal/middleware"
	"finboard/internal/models"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID reads a non-empty path parameter.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// isConfirmed reports whether the request carries confirm=true.
func isConfirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

// amountText is an amount typed into a form. It accepts a JSON number or a
// JSON string so that "12,50" can be parsed later.
type amountText string

func (a *amountText) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountText(s)
		return nil
	}
	if string(data) == "null" {
		*a = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = amountText(n.String())
	return nil
}

// respondWithError writes err as the JSON error response through the same
// renderer as middleware.ErrorHandler.
func respondWithError(c *gin.Context, err error) {
	middleware.RenderError(c, err)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// TransactionResponse wraps a single transaction.
type TransactionResponse struct {
	Transaction *models.Record `json:"transaction"`
}

// BudgetResponse wraps a single budget with its progress.
type BudgetResponse struct {
	Budget *budget.Progress `json:"budget"`
}

// ProfileResponse wraps the signed-in user.
type ProfileResponse struct {
	User models.User `json:"user"`
}

// QueryResponse wraps the active transactions query.
type QueryResponse struct {
	Query *ledger.Query `json:"query"`
}

// CategoriesResponse lists the categories of the stored transactions.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// DeleteResponse reports whether a transaction was removed.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// BulkDeleteResponse reports how many selected transactions were removed.
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
