package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"terranova/internal/models"
	"terranova/internal/repositories"
	"terranova/internal/services"
	"terranova/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProjectRepository)
	mockEvents := new(MockPublisher)
	service := services.NewProjectService(mockRepo, mockEvents)

	req := models.CreateProjectRequest{
		Name:     "Solar Farm A",
		Location: "12.9716,77.5946",
		Status:   models.StatusPlanning,
		UserID:   "u1",
	}

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Project")).Run(func(args mock.Arguments) {
		p := args.Get(1).(*models.Project)
		p.ID = "generated-id"
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
	}).Return(nil).Once()
	mockEvents.On("PublishJSON", ctx, services.EventProjectCreated, mock.MatchedBy(func(e services.ProjectEvent) bool {
		return e.ProjectID == "generated-id" && e.UserID == "u1" && e.Type == services.EventProjectCreated
	})).Return(nil).Once()

	project, err := service.Create(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "generated-id", project.ID)
	assert.Equal(t, "12.9716,77.5946", project.Location)
	assert.Equal(t, models.StatusPlanning, project.Status)
	assert.False(t, project.CreatedAt.IsZero())
	assert.NotNil(t, project.Milestones)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProjectService_CreateDefaultsStatus(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProjectRepository)
	service := services.NewProjectService(mockRepo, nil)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Project) bool {
		return p.Status == models.StatusPlanning
	})).Return(nil).Once()

	project, err := service.Create(ctx, "u1", models.CreateProjectRequest{Name: "Wind", Location: "1,1", UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlanning, project.Status)
	mockRepo.AssertExpectations(t)
}

func TestProjectService_CreateRejectsInvalidPayloadWithoutWriting(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProjectRepository)
	service := services.NewProjectService(mockRepo, nil)

	for _, location := range []string{"", "12.9716", "91,0", "0,181", "north,east", "12.9716 77.5946"} {
		_, err := service.Create(ctx, "u1", models.CreateProjectRequest{
			Name:     "Solar Farm A",
			Location: location,
			Status:   models.StatusActive,
			UserID:   "u1",
		})
		var verr *validation.Error
		require.ErrorAs(t, err, &verr, "location %q", location)
		assert.Contains(t, verr.Fields, "location")
	}

	_, err := service.Create(ctx, "u1", models.CreateProjectRequest{Name: "x", Location: "1,1", Status: "Paused", UserID: "u1"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_CreateForAnotherUserIsForbidden(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	service := services.NewProjectService(mockRepo, nil)

	_, err := service.Create(context.Background(), "u1", models.CreateProjectRequest{Name: "x", Location: "1,1", UserID: "u2"})
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_CreateStoreFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProjectRepository)
	service := services.NewProjectService(mockRepo, nil)

	mockRepo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("database error")).Once()
	_, err := service.Create(ctx, "u1", models.CreateProjectRequest{Name: "x", Location: "1,1", UserID: "u1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProjectService_PublishFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProjectRepository)
	mockEvents := new(MockPublisher)
	service := services.NewProjectService(mockRepo, mockEvents)

	mockRepo.On("Delete", ctx, "p1", "u1").Return(nil).Once()
	mockEvents.On("PublishJSON", ctx, services.EventProjectDeleted, mock.Anything).Return(fmt.Errorf("channel closed")).Once()

	assert.NoError(t, service.Delete(ctx, "u1", "p1"))
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProjectService_List(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProjectRepository)
	service := services.NewProjectService(mockRepo, nil)

	expected := []models.Project{
		{ID: "1", Name: "Solar", UserID: "u1"},
		{ID: "2", Name: "Wind", UserID: "u1"},
	}
	mockRepo.On("ListByOwner", ctx, "u1").Return(expected, nil).Once()

	projects, err := service.List(ctx, "u1", "u1")
	require.NoError(t, err)
	assert.Equal(t, expected, projects)

	_, err = service.List(ctx, "u1", "u2")
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertExpectations(t)
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProjectRepository)
	service := services.NewProjectService(mockRepo, nil)

	req := models.UpdateProjectRequest{
		Name:     "Solar Farm B",
		Location: "12.5,77.5",
		Status:   models.StatusActive,
		Milestones: []models.Milestone{
			{Name: "Grid connection", TargetDate: "2025-09-01", CompletionPercentage: 75},
		},
	}

	// Test successful update, scoped to the caller
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Project) bool {
		return p.ID == "p1" && p.UserID == "u1" && p.Name == "Solar Farm B" && len(p.Milestones) == 1
	})).Return(nil).Once()
	project, err := service.Update(ctx, "u1", "p1", req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, project.Status)

	// Test nonexistent project
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Project) bool { return p.ID == "missing" })).
		Return(fmt.Errorf("project with ID missing: %w", repositories.ErrNotFound)).Once()
	_, err = service.Update(ctx, "u1", "missing", req)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Test invalid payload
	bad := req
	bad.Location = "somewhere"
	_, err = service.Update(ctx, "u1", "p1", bad)
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)

	mockRepo.AssertExpectations(t)
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProjectRepository)
	service := services.NewProjectService(mockRepo, nil)

	mockRepo.On("Delete", ctx, "p1", "u1").Return(nil).Once()
	assert.NoError(t, service.Delete(ctx, "u1", "p1"))

	mockRepo.On("Delete", ctx, "p99", "u1").Return(fmt.Errorf("project with ID p99: %w", repositories.ErrNotFound)).Once()
	err := service.Delete(ctx, "u1", "p99")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
