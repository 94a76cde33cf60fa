package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"terranova/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GORMProjectRepository is a GORM implementation of ProjectRepository.
type GORMProjectRepository struct {
	db *gorm.DB
}

// NewGORMProjectRepository creates a new instance of GORMProjectRepository.
func NewGORMProjectRepository(db *gorm.DB) *GORMProjectRepository {
	return &GORMProjectRepository{
		db: db,
	}
}

// ListByOwner returns every project owned by ownerID. Order is not guaranteed.
func (r *GORMProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects for user %s: %w", ownerID, err)
	}
	return projects, nil
}

// GetByID retrieves a single project owned by ownerID.
func (r *GORMProjectRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project by ID %s: %w", id, err)
	}
	return &project, nil
}

// Create inserts a project. ID, status and milestones are defaulted and the
// timestamps are filled in by GORM, so the caller gets the stored record back.
func (r *GORMProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = models.StatusPlanning
	}
	if project.Milestones == nil {
		project.Milestones = datatypes.JSONSlice[models.Milestone]{}
	}
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Update overwrites name, location, status and milestones of a project owned
// by project.UserID and refreshes updated_at. On success project is reloaded.
func (r *GORMProjectRepository) Update(ctx context.Context, project *models.Project) error {
	milestones := project.Milestones
	if milestones == nil {
		milestones = datatypes.JSONSlice[models.Milestone]{}
	}
	res := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND user_id = ?", project.ID, project.UserID).
		Updates(map[string]interface{}{
			"name":       project.Name,
			"location":   project.Location,
			"status":     project.Status,
			"milestones": milestones,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project with ID %s: %w", project.ID, ErrNotFound)
	}
	if err := r.db.WithContext(ctx).First(project, "id = ?", project.ID).Error; err != nil {
		return fmt.Errorf("failed to reload project %s: %w", project.ID, err)
	}
	return nil
}

// Delete hard-deletes a project owned by ownerID.
func (r *GORMProjectRepository) Delete(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ? AND user_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
