package repositories

import (
	"context"

	"terranova/internal/models"
)

// ProjectRepository defines the interface for project data access. Every
// lookup and mutation is scoped to an owner; a project belonging to someone
// else is reported as ErrNotFound.
type ProjectRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error)
	GetByID(ctx context.Context, id, ownerID string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id, ownerID string) error
}
