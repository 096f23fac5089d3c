package expense

import (
	"time"

	"github.com/frahmantamala/expense-tracker/internal/core/common/money"
	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
	"github.com/shopspring/decimal"
)

const (
	StatusOpen = expenseDatamodel.StatusOpen
	StatusPaid = expenseDatamodel.StatusPaid

	// MaxListRows caps every range query, the dashboard included.
	MaxListRows = 500
)

// ResponsibleRef is the embedded {id, name} of the linked responsible.
type ResponsibleRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID            string          `json:"id"`
	ResponsibleID *string         `json:"responsible_id"`
	Description   string          `json:"description"`
	Amount        money.Amount    `json:"amount"`
	Status        string          `json:"status"`
	SpentAt       string          `json:"spent_at"`
	CreatedAt     time.Time       `json:"created_at"`
	Responsible   *ResponsibleRef `json:"responsible,omitempty"`
}

func (e *Expense) CanBeDeleted() bool {
	return e.Status == StatusOpen
}

// ResponsibleName returns the linked responsible's name, or fallback when the
// expense is unassigned.
func (e *Expense) ResponsibleName(fallback string) string {
	if e.Responsible == nil || e.Responsible.Name == "" {
		return fallback
	}
	return e.Responsible.Name
}

func NewExpense(input ExpenseInput) *Expense {
	return &Expense{
		ResponsibleID: input.ResponsibleID,
		Description:   input.Description,
		Amount:        money.New(input.Amount),
		Status:        input.Status,
		SpentAt:       input.SpentAt,
	}
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:            e.ID,
		ResponsibleID: e.ResponsibleID,
		Description:   e.Description,
		Amount:        e.Amount.Decimal,
		Status:        e.Status,
		SpentAt:       expenseDatamodel.Date(e.SpentAt),
		CreatedAt:     e.CreatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	result := &Expense{
		ID:            e.ID,
		ResponsibleID: e.ResponsibleID,
		Description:   e.Description,
		Amount:        money.New(e.Amount),
		Status:        e.Status,
		SpentAt:       e.SpentAt.String(),
		CreatedAt:     e.CreatedAt,
	}
	if e.Responsible != nil {
		result.Responsible = &ResponsibleRef{ID: e.Responsible.ID, Name: e.Responsible.Name}
	}
	return result
}

func FromDataModelSlice(rows []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(rows))
	for i, e := range rows {
		result[i] = FromDataModel(e)
	}
	return result
}

// Sum adds up the amounts exactly.
func Sum(expenses []*Expense) money.Amount {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount.Decimal)
	}
	return money.New(total)
}
