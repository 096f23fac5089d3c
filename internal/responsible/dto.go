package responsible

import (
	errors "github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
)

// ResponsibleInput is the validated body of create and update requests.
type ResponsibleInput struct {
	Name string
}

func ParseResponsibleInput(payload validation.Payload) (*ResponsibleInput, *errors.AppError) {
	v := validation.NewValidator()
	name := v.Field("name", payload.Get("name")).
		Required().
		String().
		Trim().
		MinLength(1)

	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &ResponsibleInput{Name: name.StringValue()}, nil
}
