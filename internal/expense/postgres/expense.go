package postgres

import (
	"context"

	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements expense.RepositoryAPI using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

func withResponsible(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

func (r *ExpenseRepository) List(ctx context.Context, filter expense.ListFilter) ([]*expenseDatamodel.Expense, error) {
	q := r.db.WithContext(ctx).Preload("Responsible", withResponsible)

	if filter.From != "" {
		q = q.Where("spent_at >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("spent_at <= ?", filter.To)
	}
	if filter.ResponsibleID != "" {
		q = q.Where("responsible_id = ?", filter.ResponsibleID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	rows := make([]*expenseDatamodel.Expense, 0)
	err := q.Order("spent_at DESC").Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// GetByID returns gorm.ErrRecordNotFound when no row matches.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*expenseDatamodel.Expense, error) {
	var row expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Preload("Responsible", withResponsible).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, row *expenseDatamodel.Expense) error {
	return r.db.WithContext(ctx).Omit("Responsible").Create(row).Error
}

func (r *ExpenseRepository) Update(ctx context.Context, row *expenseDatamodel.Expense) (*expenseDatamodel.Expense, error) {
	err := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"responsible_id": row.ResponsibleID,
			"description":    row.Description,
			"amount":         row.Amount,
			"status":         row.Status,
			"spent_at":       row.SpentAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, row.ID)
}

func (r *ExpenseRepository) UpdateStatus(ctx context.Context, id, status string) (*expenseDatamodel.Expense, error) {
	err := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ExpenseRepository) DeleteOpen(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, expenseDatamodel.StatusOpen).
		Delete(&expenseDatamodel.Expense{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
