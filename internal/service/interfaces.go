package service

import (
	"context"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/types"
)

// IAIService is the model behind the three AI operations.
type IAIService interface {
	AnalyzeFoodImage(ctx context.Context, imageBase64 string) (*models.AnalysisResult, error)
	GenerateRecommendations(ctx context.Context, p models.Profile) (*models.RecommendationResult, error)
	AssessHealthRisk(ctx context.Context, p models.Profile, avg models.DailyTotals) (*models.HealthRiskAssessment, error)
}

// ITaskRunner runs AI operations in the background, at most one per kind.
type ITaskRunner interface {
	Start(kind types.TaskKind, fn TaskFunc) (*types.TaskResponse, error)
	Get(id string) (*types.TaskResponse, error)
	Wait(ctx context.Context, id string) (*types.TaskResponse, error)
}

// IProfileService defines the profile operations
type IProfileService interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	SaveProfile(ctx context.Context, req types.ProfileRequest) (*models.Profile, error)
	GetIntake(ctx context.Context) (*models.IntakeTargets, error)
}

// IFoodLogService defines the food log operations
type IFoodLogService interface {
	StartAnalysis(ctx context.Context, image []byte, mealType models.MealType) (*types.TaskResponse, error)
	History(ctx context.Context, descending bool, day string) ([]models.FoodEntry, error)
	Clear(ctx context.Context) error
}

// IHealthService defines the aggregated health views
type IHealthService interface {
	Today(ctx context.Context) (*types.TodaySummary, error)
	Average(ctx context.Context) (*types.AverageSummary, error)
	StartRiskAssessment(ctx context.Context) (*types.TaskResponse, error)
}

// IRecommendationService defines the recommendation operations
type IRecommendationService interface {
	StartRecommendation(ctx context.Context) (*types.TaskResponse, error)
}

// IDataService defines export and import of the whole document
type IDataService interface {
	Export(ctx context.Context) (models.UserData, error)
	Import(ctx context.Context, data models.UserData) (models.UserData, error)
}
