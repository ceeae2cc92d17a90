package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// RecordInput carries the user-editable fields of a record.
type RecordInput struct {
	Amount     decimal.Decimal  `json:"amount"`
	Type       model.RecordType `json:"type" validate:"required,oneof=expense income"`
	CategoryID string           `json:"categoryId" validate:"required"`
	AccountID  string           `json:"accountId"`
	Note       string           `json:"note" validate:"max=500"`
	Date       string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// normalize trims text fields and rounds the amount to cents.
func (in RecordInput) normalize() RecordInput {
	in.Amount = in.Amount.Round(2)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.AccountID = strings.TrimSpace(in.AccountID)
	in.Note = strings.TrimSpace(in.Note)
	in.Date = strings.TrimSpace(in.Date)
	return in
}

// Validate checks the input against the record rules. The amount is checked
// first, then the tagged fields in declaration order.
func (in RecordInput) Validate() error {
	if !in.Amount.IsPositive() {
		return common.NewValidationError("amount", "must be greater than 0")
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return common.NewValidationError("", err.Error())
	}
	fe := fieldErrs[0]
	return common.NewValidationError(fe.Field(), describeTag(fe))
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return "must be a YYYY-MM-DD date"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
