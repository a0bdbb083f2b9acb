// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the custom tags to v. Decimal fields are validated
// through their string form.
func RegisterOn(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("positive_decimal", validatePositiveDecimal)
	_ = v.RegisterValidation("date_format", validateDateFormat)
	_ = v.RegisterValidation("language", validateLanguage)
	_ = v.RegisterValidation("category_color", validateCategoryColor)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validatePositiveDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}

func validateDateFormat(fl validator.FieldLevel) bool {
	return models.DateFormat(fl.Field().String()).Valid()
}

func validateLanguage(fl validator.FieldLevel) bool {
	return models.Language(fl.Field().String()).Valid()
}

func validateCategoryColor(fl validator.FieldLevel) bool {
	return models.Color(fl.Field().String()).Valid()
}
