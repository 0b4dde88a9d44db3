// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finboard/internal/ledger"
	"finboard/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers all custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("record_kind", validateRecordKind)
	_ = v.RegisterValidation("record_status", validateRecordStatus)
	_ = v.RegisterValidation("type_filter", validateTypeFilter)
	_ = v.RegisterValidation("sort_field", validateSortField)
	_ = v.RegisterValidation("sort_direction", validateSortDirection)
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateRecordKind(fl validator.FieldLevel) bool {
	return models.RecordKind(fl.Field().String()).Valid()
}

func validateRecordStatus(fl validator.FieldLevel) bool {
	return models.RecordStatus(fl.Field().String()).Valid()
}

func validateTypeFilter(fl validator.FieldLevel) bool {
	switch ledger.TypeFilter(fl.Field().String()) {
	case ledger.TypeAll, ledger.TypeIncome, ledger.TypeExpense:
		return true
	}
	return false
}

func validateSortField(fl validator.FieldLevel) bool {
	switch ledger.SortField(fl.Field().String()) {
	case ledger.SortByDate, ledger.SortByAmount, ledger.SortByCategory:
		return true
	}
	return false
}

func validateSortDirection(fl validator.FieldLevel) bool {
	switch ledger.SortDirection(fl.Field().String()) {
	case ledger.Ascending, ledger.Descending:
		return true
	}
	return false
}
