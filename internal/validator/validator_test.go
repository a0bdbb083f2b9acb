package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
)

type sample struct {
	Amount     decimal.Decimal   `validate:"required,positive_decimal"`
	Budget     *decimal.Decimal  `validate:"omitempty,positive_decimal"`
	DateFormat models.DateFormat `validate:"omitempty,date_format"`
	Language   models.Language   `validate:"omitempty,language"`
	Color      models.Color      `validate:"omitempty,category_color"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func TestCustomTags(t *testing.T) {
	v := newValidate()
	neg := decimal.NewFromInt(-1)
	pos := decimal.NewFromInt(10)

	tests := []struct {
		name  string
		input sample
		ok    bool
	}{
		{"valid", sample{Amount: decimal.RequireFromString("0.01"), Budget: &pos, DateFormat: models.DateFormatISO, Language: models.LanguageHindi, Color: models.ColorTeal}, true},
		{"zero_amount", sample{Amount: decimal.Zero}, false},
		{"negative_budget", sample{Amount: pos, Budget: &neg}, false},
		{"bad_date_format", sample{Amount: pos, DateFormat: "YY"}, false},
		{"bad_language", sample{Amount: pos, Language: "jp"}, false},
		{"bad_color", sample{Amount: pos, Color: "#ff0000"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.input)
			if tc.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
