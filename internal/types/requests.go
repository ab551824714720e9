package types

import (
	"time"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// OptionsResponse lists the selectable values of the profile and analysis
// forms.
type OptionsResponse struct {
	ActivityLevels  []models.Option[float64]           `json:"activityLevels"`
	MealTypes       []models.Option[models.MealType]   `json:"mealTypes"`
	HealthGoals     []models.Option[models.HealthGoal] `json:"healthGoals"`
	DefaultMealType models.MealType                    `json:"defaultMealType"`
}

// NutrientProgress is one row of the today view.
type NutrientProgress struct {
	Nutrient string  `json:"nutrient"`
	Label    string  `json:"label"`
	Unit     string  `json:"unit"`
	Current  float64 `json:"current"`
	Target   float64 `json:"target"`
	Percent  float64 `json:"percent"`
}

// TodaySummary is the body of GET /health-data/today. Targets and Progress
// are absent until a profile exists.
type TodaySummary struct {
	Date     string                `json:"date"`
	Totals   models.DailyTotals    `json:"totals"`
	Targets  *models.IntakeTargets `json:"targets,omitempty"`
	Progress []NutrientProgress    `json:"progress,omitempty"`
}

// AverageSummary is the body of GET /health-data/average. Average is null
// when the log is empty.
type AverageSummary struct {
	Average *models.DailyTotals `json:"average"`
	Days    int                 `json:"days"`
}

// TaskStatus is the observable state of an AI task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskSucceeded TaskStatus = "succeeded"
	TaskFailed    TaskStatus = "failed"
)

// TaskKind names the AI operation a task runs.
type TaskKind string

const (
	TaskAnalysis       TaskKind = "analysis"
	TaskRecommendation TaskKind = "recommendation"
	TaskRiskAssessment TaskKind = "riskAssessment"
)

// TaskResponse is the polling view of a task.
type TaskResponse struct {
	ID         string     `json:"id"`
	Kind       TaskKind   `json:"kind"`
	Status     TaskStatus `json:"status"`
	Result     any        `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error         string       `json:"error"`
	Fields        []FieldError `json:"fields,omitempty"`
	Precondition  string       `json:"precondition,omitempty"`
	DaysRemaining int          `json:"daysRemaining,omitempty"`
}
