package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/nutrition"
	"github.com/pageza/nutrilog/backend/internal/store"
	"github.com/pageza/nutrilog/backend/internal/types"
)

// FoodLogService analyzes meal photos and keeps the food log.
type FoodLogService struct {
	state  *store.State
	ai     IAIService
	tasks  ITaskRunner
	logger zerolog.Logger
	clock  func() time.Time
}

var _ IFoodLogService = (*FoodLogService)(nil)

func NewFoodLogService(state *store.State, ai IAIService, tasks ITaskRunner, logger zerolog.Logger) *FoodLogService {
	return &FoodLogService{
		state:  state,
		ai:     ai,
		tasks:  tasks,
		logger: logger.With().Str("component", "foodlog").Logger(),
		clock:  time.Now,
	}
}

// StartAnalysis prepares image and starts an analysis task. On success the
// task appends a new entry to the log and returns it. An empty mealType
// means the default.
func (s *FoodLogService) StartAnalysis(ctx context.Context, image []byte, mealType models.MealType) (*types.TaskResponse, error) {
	if mealType == "" {
		mealType = models.DefaultMealType
	}
	if err := types.ValidateVar("mealType", string(mealType), types.MealTypeRule); err != nil {
		return nil, err
	}

	encoded, err := PrepareImage(image)
	if err != nil {
		return nil, err
	}

	return s.tasks.Start(types.TaskAnalysis, func(ctx context.Context) (any, error) {
		result, err := s.ai.AnalyzeFoodImage(ctx, encoded)
		if err != nil {
			return nil, err
		}
		entry, err := s.newEntry(mealType, *result)
		if err != nil {
			return nil, err
		}
		if err := s.state.AppendEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to log entry: %w", err)
		}
		s.logger.Info().Str("entry_id", entry.ID).Str("food", result.FoodName).Float64("calories", result.TotalCalories).Msg("meal logged")
		return entry, nil
	})
}

func (s *FoodLogService) newEntry(mealType models.MealType, result models.AnalysisResult) (models.FoodEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return models.FoodEntry{}, fmt.Errorf("failed to generate entry id: %w", err)
	}
	return models.FoodEntry{
		ID:       id.String(),
		Date:     s.clock().UTC().Format(models.DateLayout),
		MealType: mealType,
		Analysis: result,
	}, nil
}

// History lists the log by date. A non-empty day (YYYY-MM-DD) keeps only
// that day's entries.
func (s *FoodLogService) History(ctx context.Context, descending bool, day string) ([]models.FoodEntry, error) {
	if day != "" {
		if _, err := time.Parse(time.DateOnly, day); err != nil {
			return nil, types.ValidationErrors{{Field: "date", Message: "must be YYYY-MM-DD"}}
		}
	}

	entries := s.state.List(descending)
	if day == "" {
		return entries, nil
	}
	out := make([]models.FoodEntry, 0, len(entries))
	for _, e := range entries {
		if nutrition.DayOf(e.Date) == day {
			out = append(out, e)
		}
	}
	return out, nil
}

// Clear empties the log and keeps the profile.
func (s *FoodLogService) Clear(ctx context.Context) error {
	if err := s.state.ClearLog(ctx); err != nil {
		return fmt.Errorf("failed to clear food log: %w", err)
	}
	s.logger.Info().Msg("food log cleared")
	return nil
}
