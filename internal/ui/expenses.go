package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/client"
	"github.com/frahmantamala/expense-tracker/internal/core/common/money"
	"github.com/frahmantamala/expense-tracker/internal/core/common/query"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/responsible"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDescriptionRequired = errors.New("description is required")
	ErrAmountRequired      = errors.New("amount is required")
)

const noResponsible = "—"

// ExpenseForm mirrors the fields of the create form. Amount is kept as typed
// text until submit.
type ExpenseForm struct {
	Description   string
	Amount        string
	SpentAt       string
	ResponsibleID string
	Status        string
}

// ExpensesPage lists every expense alongside the responsibles used by the
// form's picker.
type ExpensesPage struct {
	api API
	now func() time.Time

	Loading      bool
	Saving       bool
	Err          string
	Form         ExpenseForm
	Responsibles []responsible.Responsible
	Expenses     []expense.Expense
}

func NewExpensesPage(api API, now func() time.Time) *ExpensesPage {
	if now == nil {
		now = time.Now
	}
	p := &ExpensesPage{api: api, now: now}
	p.ResetForm()
	return p
}

func (p *ExpensesPage) ResetForm() {
	p.Form = ExpenseForm{
		SpentAt: query.Today(p.now()),
		Status:  expense.StatusOpen,
	}
}

// Reload fetches responsibles and expenses concurrently and replaces both
// lists only when both calls succeed.
func (p *ExpensesPage) Reload(ctx context.Context) error {
	p.Loading = true
	p.Err = ""
	defer func() { p.Loading = false }()

	var (
		responsibles []responsible.Responsible
		expenses     []expense.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		responsibles, err = p.api.ListResponsibles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = p.api.ListExpenses(gctx, client.ExpenseQuery{})
		return err
	})
	if err := g.Wait(); err != nil {
		p.Err = ErrorMessage(err, "Failed to load expenses")
		return err
	}

	p.Responsibles = responsibles
	p.Expenses = expenses
	return nil
}

func (p *ExpensesPage) Create(ctx context.Context) error {
	description := strings.TrimSpace(p.Form.Description)
	amountText := strings.TrimSpace(p.Form.Amount)
	if description == "" {
		p.Err = ErrDescriptionRequired.Error()
		return ErrDescriptionRequired
	}
	if amountText == "" {
		p.Err = ErrAmountRequired.Error()
		return ErrAmountRequired
	}
	amount, err := money.FromString(amountText)
	if err != nil {
		p.Err = "amount: expected number"
		return err
	}

	p.Saving = true
	p.Err = ""
	defer func() { p.Saving = false }()

	_, err = p.api.CreateExpense(ctx, client.ExpenseRequest{
		ResponsibleID: p.Form.ResponsibleID,
		Description:   description,
		Amount:        amount,
		Status:        p.Form.Status,
		SpentAt:       p.Form.SpentAt,
	})
	if err != nil {
		p.Err = ErrorMessage(err, "Failed to save")
		return err
	}
	p.ResetForm()
	return p.Reload(ctx)
}

func (p *ExpensesPage) SetStatus(ctx context.Context, id, status string) error {
	p.Err = ""
	if _, err := p.api.SetExpenseStatus(ctx, id, status); err != nil {
		p.Err = ErrorMessage(err, "Failed to update status")
		return err
	}
	return p.Reload(ctx)
}

// ToggleStatus flips open to paid and back.
func (p *ExpensesPage) ToggleStatus(ctx context.Context, e expense.Expense) error {
	next := expense.StatusPaid
	if e.Status == expense.StatusPaid {
		next = expense.StatusOpen
	}
	return p.SetStatus(ctx, e.ID, next)
}

func (p *ExpensesPage) Delete(ctx context.Context, id string) error {
	p.Err = ""
	if err := p.api.DeleteExpense(ctx, id); err != nil {
		p.Err = ErrorMessage(err, "Failed to delete")
		return err
	}
	return p.Reload(ctx)
}

// Total sums the listed expenses.
func (p *ExpensesPage) Total() money.Amount {
	list := make([]*expense.Expense, len(p.Expenses))
	for i := range p.Expenses {
		list[i] = &p.Expenses[i]
	}
	return expense.Sum(list)
}

func (p *ExpensesPage) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Expenses"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("Total (list): " + FormatUSD(p.Total())))
	b.WriteString("\n")

	if p.Err != "" {
		b.WriteString(errorStyle.Render(p.Err))
		b.WriteString("\n")
	}

	switch {
	case p.Loading:
		b.WriteString(mutedStyle.Render("Loading..."))
	case len(p.Expenses) == 0:
		b.WriteString(mutedStyle.Render("No expenses recorded."))
	default:
		t := newTable("Date", "Description", "Responsible", "Amount", "Status", "ID")
		for i := range p.Expenses {
			e := &p.Expenses[i]
			t.Row(
				FormatDateUS(e.SpentAt),
				e.Description,
				e.ResponsibleName(noResponsible),
				FormatUSD(e.Amount),
				statusCell(e.Status),
				e.ID,
			)
		}
		b.WriteString(t.Render())
	}
	b.WriteString("\n")
	return b.String()
}
