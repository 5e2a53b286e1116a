// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("category", validateCategory)
		_ = v.RegisterValidation("payment_status", validatePaymentStatus)
		_ = v.RegisterValidation("summary_period", validateSummaryPeriod)
	}
}

func validateCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "need", "want", "culture", "billPayment", "unplanned":
		return true
	}
	return false
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "due", "paid":
		return true
	}
	return false
}

func validateSummaryPeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "today", "weekly", "monthly":
		return true
	}
	return false
}
