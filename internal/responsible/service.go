package responsible

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/expense-tracker/internal"
	responsibleDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/responsible"
	"github.com/frahmantamala/expense-tracker/internal/platform/metrics"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*responsibleDatamodel.Responsible, error)
	GetByID(ctx context.Context, id string) (*responsibleDatamodel.Responsible, error)
	Create(ctx context.Context, r *responsibleDatamodel.Responsible) error
	UpdateName(ctx context.Context, id, name string) (*responsibleDatamodel.Responsible, error)
	Delete(ctx context.Context, id string) error
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

// List returns every responsible, newest first.
func (s *Service) List(ctx context.Context) ([]*Responsible, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list responsibles", "error", err)
		return nil, errors.NewStoreError(err)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Create(ctx context.Context, input ResponsibleInput) (*Responsible, error) {
	row := ToDataModel(NewResponsible(input.Name))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create responsible", "error", err)
		return nil, errors.NewStoreError(err)
	}

	s.metrics.IncrementResponsiblesCreated()

	stored, err := s.repo.GetByID(ctx, row.ID)
	if err != nil {
		s.logger.Error("failed to read created responsible", "error", err, "responsible_id", row.ID)
		return nil, errors.NewStoreError(err)
	}

	s.logger.Info("responsible created", "responsible_id", stored.ID)
	return FromDataModel(stored), nil
}

func (s *Service) Update(ctx context.Context, id string, input ResponsibleInput) (*Responsible, error) {
	row, err := s.repo.UpdateName(ctx, id, input.Name)
	if err != nil {
		s.logger.Error("failed to update responsible", "error", err, "responsible_id", id)
		return nil, errors.NewStoreError(err)
	}
	return FromDataModel(row), nil
}

// Delete removes the responsible unconditionally; what happens to expenses
// pointing at it is up to the foreign key.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete responsible", "error", err, "responsible_id", id)
		return errors.NewStoreError(err)
	}
	s.logger.Info("responsible deleted", "responsible_id", id)
	return nil
}
