package ui

import (
	"context"

	"github.com/frahmantamala/expense-tracker/internal/client"
	"github.com/frahmantamala/expense-tracker/internal/dashboard"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/responsible"
)

// API is the part of *client.Client the pages use.
type API interface {
	ListResponsibles(ctx context.Context) ([]responsible.Responsible, error)
	CreateResponsible(ctx context.Context, name string) (*responsible.Responsible, error)
	UpdateResponsible(ctx context.Context, id, name string) (*responsible.Responsible, error)
	DeleteResponsible(ctx context.Context, id string) error
	ListExpenses(ctx context.Context, q client.ExpenseQuery) ([]expense.Expense, error)
	CreateExpense(ctx context.Context, req client.ExpenseRequest) (*expense.Expense, error)
	SetExpenseStatus(ctx context.Context, id, status string) (*expense.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	Dashboard(ctx context.Context, from, to string) (*dashboard.Summary, error)
}

var _ API = (*client.Client)(nil)
