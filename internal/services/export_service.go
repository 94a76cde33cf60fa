package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"terranova/internal/models"
)

var (
	// ErrNoProjects is returned when there is nothing to export.
	ErrNoProjects = errors.New("no projects available for export")
	// ErrProjectsUnavailable is returned when the projects could not be fetched.
	ErrProjectsUnavailable = errors.New("failed to fetch projects")
)

var csvHeader = []string{"id", "name", "location", "status", "userId", "createdAt", "updatedAt", "milestones"}

// Export is a rendered CSV file.
type Export struct {
	Filename string
	Data     []byte
}

// ExportService renders a user's projects as CSV.
type ExportService struct {
	projects *ProjectService
	now      func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(projects *ProjectService) *ExportService {
	return &ExportService{projects: projects, now: time.Now}
}

// ExportCSV renders every project owned by ownerID. The file is built in
// memory so that a failure never yields a partial download.
func (s *ExportService) ExportCSV(ctx context.Context, callerID, ownerID string) (*Export, error) {
	projects, err := s.projects.List(ctx, callerID, ownerID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrProjectsUnavailable, err)
	}
	if len(projects) == 0 {
		return nil, ErrNoProjects
	}

	var buf bytes.Buffer
	if err := WriteProjectsCSV(&buf, projects); err != nil {
		return nil, err
	}
	return &Export{
		Filename: ExportFilename(s.now()),
		Data:     buf.Bytes(),
	}, nil
}

// ExportFilename names the download after the export date.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("TerraNova_Projects_%s.csv", t.UTC().Format("2006-01-02"))
}

// WriteProjectsCSV writes one row per project with milestones flattened
// into a single column.
func WriteProjectsCSV(buf *bytes.Buffer, projects []models.Project) error {
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, p := range projects {
		row := []string{
			p.ID,
			p.Name,
			p.Location,
			string(p.Status),
			p.UserID,
			p.CreatedAt.UTC().Format(time.RFC3339),
			p.UpdatedAt.UTC().Format(time.RFC3339),
			FlattenMilestones(p.Milestones),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for project %s: %w", p.ID, err)
		}
	}
	w.Flush()
	return w.Error()
}

// FlattenMilestones renders milestones as "name (date: pct%)" joined by ", ".
func FlattenMilestones(milestones []models.Milestone) string {
	parts := make([]string, 0, len(milestones))
	for _, m := range milestones {
		parts = append(parts, m.Name+" ("+m.TargetDate+": "+strconv.Itoa(m.CompletionPercentage)+"%)")
	}
	return strings.Join(parts, ", ")
}
