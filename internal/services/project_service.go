package services

import (
	"context"
	"errors"
	"log"
	"time"

	"terranova/internal/models"
	"terranova/internal/repositories"
	"terranova/internal/validation"
)

// ErrForbidden is returned when the caller asks for another user's data.
var ErrForbidden = errors.New("forbidden")

// Routing keys for project events.
const (
	EventProjectCreated = "project.created"
	EventProjectUpdated = "project.updated"
	EventProjectDeleted = "project.deleted"
)

// EventPublisher publishes JSON-encoded events. A nil publisher disables
// publishing.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v interface{}) error
}

// ProjectEvent is the body of every project event.
type ProjectEvent struct {
	Type       string               `json:"type"`
	ProjectID  string               `json:"projectId"`
	UserID     string               `json:"userId"`
	Name       string               `json:"name,omitempty"`
	Status     models.ProjectStatus `json:"status,omitempty"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// ProjectService handles business logic related to projects. Every operation
// takes the authenticated caller's ID and only ever touches that caller's
// projects.
type ProjectService struct {
	repo     repositories.ProjectRepository
	events   EventPublisher
	validate *validation.Validator
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo repositories.ProjectRepository, events EventPublisher) *ProjectService {
	return &ProjectService{
		repo:     repo,
		events:   events,
		validate: validation.New(),
	}
}

// List returns the projects owned by ownerID, which must be the caller.
func (s *ProjectService) List(ctx context.Context, callerID, ownerID string) ([]models.Project, error) {
	if ownerID != callerID {
		return nil, ErrForbidden
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns one of the caller's projects.
func (s *ProjectService) Get(ctx context.Context, callerID, id string) (*models.Project, error) {
	return s.repo.GetByID(ctx, id, callerID)
}

// Create validates req and stores a new project for the caller.
func (s *ProjectService) Create(ctx context.Context, callerID string, req models.CreateProjectRequest) (*models.Project, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}
	if req.UserID != callerID {
		return nil, ErrForbidden
	}

	status := req.Status
	if status == "" {
		status = models.StatusPlanning
	}
	project := &models.Project{
		Name:       req.Name,
		Location:   req.Location,
		Status:     status,
		UserID:     req.UserID,
		Milestones: milestonesOrEmpty(req.Milestones),
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.publish(ctx, EventProjectCreated, project)
	return project, nil
}

// Update validates req and overwrites the caller's project id.
func (s *ProjectService) Update(ctx context.Context, callerID, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:         id,
		UserID:     callerID,
		Name:       req.Name,
		Location:   req.Location,
		Status:     req.Status,
		Milestones: milestonesOrEmpty(req.Milestones),
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.publish(ctx, EventProjectUpdated, project)
	return project, nil
}

// Delete removes the caller's project id.
func (s *ProjectService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.repo.Delete(ctx, id, callerID); err != nil {
		return err
	}
	s.publish(ctx, EventProjectDeleted, &models.Project{ID: id, UserID: callerID})
	return nil
}

func (s *ProjectService) publish(ctx context.Context, eventType string, project *models.Project) {
	if s.events == nil {
		return
	}
	event := ProjectEvent{
		Type:       eventType,
		ProjectID:  project.ID,
		UserID:     project.UserID,
		Name:       project.Name,
		Status:     project.Status,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishJSON(ctx, eventType, event); err != nil {
		log.Printf("Warning: failed to publish %s event for project %s: %v", eventType, project.ID, err)
	}
}

func milestonesOrEmpty(in []models.Milestone) []models.Milestone {
	if in == nil {
		return []models.Milestone{}
	}
	return in
}
