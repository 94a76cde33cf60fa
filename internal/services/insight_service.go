package services

import (
	"context"
	"fmt"
	"strings"

	"terranova/internal/ai"
	"terranova/internal/models"
)

// InsightService builds analyst prompts from a project list and asks the
// generator for insights or a dashboard summary.
type InsightService struct {
	gen ai.Generator
}

// NewInsightService creates a new InsightService. gen may be nil, in which
// case every call fails with ai.ErrUnavailable.
func NewInsightService(gen ai.Generator) *InsightService {
	return &InsightService{gen: gen}
}

// Insights asks for recommendations based on project locations and statuses.
func (s *InsightService) Insights(ctx context.Context, projects []models.Project) (string, error) {
	return s.generate(ctx, InsightsPrompt(projects))
}

// Summary asks for a short summary of project stats and weather conditions.
func (s *InsightService) Summary(ctx context.Context, projects []models.Project, weather *models.WeatherData) (string, error) {
	return s.generate(ctx, SummaryPrompt(projects, weather))
}

func (s *InsightService) generate(ctx context.Context, prompt string) (string, error) {
	if s.gen == nil {
		return "", ai.ErrUnavailable
	}
	return s.gen.GenerateText(ctx, prompt)
}

// InsightsPrompt lists every project on its own line.
func InsightsPrompt(projects []models.Project) string {
	lines := make([]string, 0, len(projects))
	for _, p := range projects {
		lines = append(lines, fmt.Sprintf("Project: %s, Location: %s, Status: %s", p.Name, p.Location, p.Status))
	}
	return "You are an environmental project analyst. Based on the following projects, " +
		"provide concise AI-driven insights (max 100 words) for optimizing renewable energy " +
		"or environmental impact. Include specific recommendations based on locations and statuses.\n\n" +
		strings.Join(lines, "\n") + "\n\nInsights:"
}

// StatusCounts tallies projects per status. Every status is present.
func StatusCounts(projects []models.Project) map[models.ProjectStatus]int {
	counts := make(map[models.ProjectStatus]int, len(models.ProjectStatuses))
	for _, status := range models.ProjectStatuses {
		counts[status] = 0
	}
	for _, p := range projects {
		counts[p.Status]++
	}
	return counts
}

// ActivePercentage is the rounded share of Active projects, 0 for none.
func ActivePercentage(projects []models.Project) int {
	if len(projects) == 0 {
		return 0
	}
	active := StatusCounts(projects)[models.StatusActive]
	return (active*100 + len(projects)/2) / len(projects)
}

// SummaryPrompt describes the status breakdown and optional weather.
func SummaryPrompt(projects []models.Project, weather *models.WeatherData) string {
	counts := StatusCounts(projects)

	var b strings.Builder
	b.WriteString("You are an environmental project analyst for TerraNova AI. Generate a concise summary ")
	b.WriteString("(max 100 words) of project stats and weather conditions. Include the percentage of ")
	b.WriteString("active projects and any relevant weather insights. Data:\n")
	fmt.Fprintf(&b, "- Total Projects: %d\n", len(projects))
	fmt.Fprintf(&b, "- Status Breakdown: Planning=%d, Active=%d, Completed=%d, On Hold=%d\n",
		counts[models.StatusPlanning], counts[models.StatusActive], counts[models.StatusCompleted], counts[models.StatusOnHold])
	fmt.Fprintf(&b, "- Active Percentage: %d%%\n", ActivePercentage(projects))
	b.WriteString(weatherSummary(weather))
	b.WriteString("\n\nSummary:")
	return b.String()
}

func weatherSummary(w *models.WeatherData) string {
	if w == nil {
		return "No weather data available"
	}
	forecast := w.Forecast
	if forecast == "" {
		forecast = "N/A"
	}
	return fmt.Sprintf("Weather Conditions: Temperature %s°C, Precipitation %smm, Forecast %s",
		optionalNumber(w.Temperature), optionalNumber(w.Precipitation), forecast)
}

func optionalNumber(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", *v), "0"), ".")
}
