// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_sort", validateExpenseSort)
		_ = v.RegisterValidation("sort_order", validateSortOrder)
	}
}

func validateExpenseSort(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "date", "amount", "created_at":
		return true
	}
	return false
}

func validateSortOrder(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "asc", "desc":
		return true
	}
	return false
}
