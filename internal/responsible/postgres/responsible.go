package postgres

import (
	"context"

	responsibleDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/responsible"
	"github.com/frahmantamala/expense-tracker/internal/responsible"
	"gorm.io/gorm"
)

type ResponsibleRepository struct {
	db *gorm.DB
}

func NewResponsibleRepository(db *gorm.DB) responsible.RepositoryAPI {
	return &ResponsibleRepository{db: db}
}

func (r *ResponsibleRepository) GetAll(ctx context.Context) ([]*responsibleDatamodel.Responsible, error) {
	rows := make([]*responsibleDatamodel.Responsible, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// GetByID returns gorm.ErrRecordNotFound when no row matches.
func (r *ResponsibleRepository) GetByID(ctx context.Context, id string) (*responsibleDatamodel.Responsible, error) {
	var row responsibleDatamodel.Responsible
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ResponsibleRepository) Create(ctx context.Context, row *responsibleDatamodel.Responsible) error {
	return r.db.WithContext(ctx).Select("ID", "Name", "CreatedAt").Create(row).Error
}

func (r *ResponsibleRepository) UpdateName(ctx context.Context, id, name string) (*responsibleDatamodel.Responsible, error) {
	err := r.db.WithContext(ctx).
		Model(&responsibleDatamodel.Responsible{}).
		Where("id = ?", id).
		Update("name", name).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ResponsibleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&responsibleDatamodel.Responsible{}).Error
}
