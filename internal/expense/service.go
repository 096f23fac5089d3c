package expense

import (
	"context"
	stderrors "errors"
	"log/slog"

	errors "github.com/frahmantamala/expense-tracker/internal"
	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-tracker/internal/platform/metrics"
	"gorm.io/gorm"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*expenseDatamodel.Expense, error)
	GetByID(ctx context.Context, id string) (*expenseDatamodel.Expense, error)
	Create(ctx context.Context, row *expenseDatamodel.Expense) error
	Update(ctx context.Context, row *expenseDatamodel.Expense) (*expenseDatamodel.Expense, error)
	UpdateStatus(ctx context.Context, id, status string) (*expenseDatamodel.Expense, error)
	// DeleteOpen removes the row only while its status is open and reports
	// whether a row was removed.
	DeleteOpen(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo    RepositoryAPI
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(repo RepositoryAPI, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		logger:  logger,
		metrics: m,
	}
}

// List returns at most filter.Limit rows (MaxListRows when unset), most
// recently spent first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	if filter.Limit <= 0 || filter.Limit > MaxListRows {
		filter.Limit = MaxListRows
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "from", filter.From, "to", filter.To)
		return nil, errors.NewStoreError(err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Create(ctx context.Context, input ExpenseInput) (*Expense, error) {
	row := ToDataModel(NewExpense(input))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create expense", "error", err)
		return nil, errors.NewStoreError(err)
	}
	s.metrics.IncrementExpensesCreated()

	// the column rounds the amount; answer with what was stored
	stored, err := s.repo.GetByID(ctx, row.ID)
	if err != nil {
		s.logger.Error("failed to read created expense", "error", err, "expense_id", row.ID)
		return nil, errors.NewStoreError(err)
	}

	s.logger.Info("expense created",
		"expense_id", stored.ID,
		"amount", stored.Amount.String(),
		"status", stored.Status)

	return FromDataModel(stored), nil
}

// Update replaces every field of the expense. A missing status resets it to
// open, there is no partial update.
func (s *Service) Update(ctx context.Context, id string, input ExpenseInput) (*Expense, error) {
	row := ToDataModel(NewExpense(input))
	row.ID = id

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, errors.NewStoreError(err)
	}
	return FromDataModel(updated), nil
}

func (s *Service) SetStatus(ctx context.Context, id string, input StatusInput) (*Expense, error) {
	updated, err := s.repo.UpdateStatus(ctx, id, input.Status)
	if err != nil {
		s.logger.Error("failed to update expense status", "error", err, "expense_id", id, "status", input.Status)
		return nil, errors.NewStoreError(err)
	}

	s.logger.Info("expense status changed", "expense_id", id, "status", input.Status)
	return FromDataModel(updated), nil
}

// Delete removes an open expense in a single conditional statement. When
// nothing was removed the row is read once to tell a missing expense from a
// paid one.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteOpen(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return errors.NewStoreError(err)
	}
	if deleted {
		s.metrics.IncrementExpensesDeleted()
		s.logger.Info("expense deleted", "expense_id", id)
		return nil
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.IncrementDeleteRejection("not_found")
			return errors.ErrExpenseNotFound
		}
		s.logger.Error("failed to read expense after refused delete", "error", err, "expense_id", id)
		return errors.NewStoreError(err)
	}

	s.metrics.IncrementDeleteRejection("not_open")
	s.logger.Warn("refused to delete expense", "expense_id", id, "status", existing.Status)
	return errors.ErrExpenseNotOpen
}
