package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "Planning"
	StatusActive    ProjectStatus = "Active"
	StatusCompleted ProjectStatus = "Completed"
	StatusOnHold    ProjectStatus = "On Hold"
)

// ProjectStatuses lists the accepted statuses in display order.
var ProjectStatuses = []ProjectStatus{StatusPlanning, StatusActive, StatusCompleted, StatusOnHold}

// Milestone is a named sub-goal of a project.
type Milestone struct {
	Name                 string `json:"name" validate:"required"`
	TargetDate           string `json:"targetDate" validate:"required"`
	CompletionPercentage int    `json:"completionPercentage" validate:"min=0,max=100"`
}

// Project represents a renewable-energy project pinned on the map.
// Location is stored as a "lat,lon" string exactly as submitted.
type Project struct {
	ID         string                        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string                        `json:"name" gorm:"not null"`
	Status     ProjectStatus                 `json:"status" gorm:"type:varchar(20);not null;default:Planning"`
	Location   string                        `json:"location" gorm:"not null"`
	UserID     string                        `json:"userId" gorm:"column:user_id;type:varchar(36);not null;index"`
	CreatedAt  time.Time                     `json:"createdAt"`
	UpdatedAt  time.Time                     `json:"updatedAt"`
	Milestones datatypes.JSONSlice[Milestone] `json:"milestones"`
}

// TableName returns the projects table name.
func (Project) TableName() string {
	return "projects"
}

// CreateProjectRequest is the body accepted when creating a project.
type CreateProjectRequest struct {
	Name       string        `json:"name" validate:"required"`
	Location   string        `json:"location" validate:"required,latlon"`
	Status     ProjectStatus `json:"status" validate:"omitempty,project_status"`
	UserID     string        `json:"userId" validate:"required"`
	Milestones []Milestone   `json:"milestones" validate:"omitempty,dive"`
}

// UpdateProjectRequest is the body accepted when updating a project. The
// owner is taken from the session, never from the body.
type UpdateProjectRequest struct {
	Name       string        `json:"name" validate:"required"`
	Location   string        `json:"location" validate:"required,latlon"`
	Status     ProjectStatus `json:"status" validate:"required,project_status"`
	Milestones []Milestone   `json:"milestones" validate:"omitempty,dive"`
}

// WeatherData is optional context for the dashboard summary.
type WeatherData struct {
	Temperature   *float64 `json:"temperature"`
	Precipitation *float64 `json:"precipitation"`
	Forecast      string   `json:"forecast"`
}

// InsightRequest is the body accepted by the insights and summary endpoints.
type InsightRequest struct {
	Projects    []Project    `json:"projects" validate:"required"`
	WeatherData *WeatherData `json:"weatherData"`
}
