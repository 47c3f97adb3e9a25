// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("insight_kind", validateInsightKind)
		_ = v.RegisterValidation("insight_severity", validateInsightSeverity)
	}
}

func validateInsightKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "forecast", "anomaly", "trend", "risk", "suggestion":
		return true
	}
	return false
}

func validateInsightSeverity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "info", "warning", "danger":
		return true
	}
	return false
}
