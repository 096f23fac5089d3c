package expense

import (
	errors "github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// ExpenseInput is the validated body of create and full update requests.
type ExpenseInput struct {
	ResponsibleID *string
	Description   string
	Amount        decimal.Decimal
	Status        string
	SpentAt       string
}

type StatusInput struct {
	Status string
}

// ListFilter narrows a range query. Empty fields do not filter.
type ListFilter struct {
	From          string
	To            string
	ResponsibleID string
	Limit         int
}

func ParseExpenseInput(payload validation.Payload) (*ExpenseInput, *errors.AppError) {
	v := validation.NewValidator()

	responsibleID := v.Field("responsible_id", payload.Get("responsible_id")).
		Optional().
		String().
		EmptyAsAbsent().
		UUID()

	description := v.Field("description", payload.Get("description")).
		Required().
		String().
		Trim().
		MinLength(1)

	amount := v.Field("amount", payload.Get("amount")).
		Number().
		MinDecimal(decimal.Zero)

	status := v.Field("status", payload.Get("status")).
		Optional().
		OneOf(StatusOpen, StatusPaid).
		Default(StatusOpen)

	spentAt := v.Field("spent_at", payload.Get("spent_at")).
		Required().
		String().
		Pattern(validation.DatePattern, "invalid date, expected YYYY-MM-DD", errors.ErrCodeInvalidDate)

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return &ExpenseInput{
		ResponsibleID: responsibleID.StringPtr(),
		Description:   description.StringValue(),
		Amount:        amount.Decimal(),
		Status:        status.StringValue(),
		SpentAt:       spentAt.StringValue(),
	}, nil
}

// ParseStatusInput accepts exactly {"status": "open"|"paid"}.
func ParseStatusInput(payload validation.Payload) (*StatusInput, *errors.AppError) {
	v := validation.NewValidator()

	status := v.Field("status", payload.Get("status")).
		Required().
		OneOf(StatusOpen, StatusPaid)
	v.Strict(payload, "status")

	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &StatusInput{Status: status.StringValue()}, nil
}
