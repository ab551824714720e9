package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/store"
	"github.com/pageza/nutrilog/backend/internal/types"
)

// RecommendationService generates meal and exercise plans for the profile.
type RecommendationService struct {
	state  *store.State
	ai     IAIService
	tasks  ITaskRunner
	logger zerolog.Logger
}

var _ IRecommendationService = (*RecommendationService)(nil)

func NewRecommendationService(state *store.State, ai IAIService, tasks ITaskRunner, logger zerolog.Logger) *RecommendationService {
	return &RecommendationService{
		state:  state,
		ai:     ai,
		tasks:  tasks,
		logger: logger.With().Str("component", "recommendation").Logger(),
	}
}

// StartRecommendation starts a recommendation task for the current profile.
func (s *RecommendationService) StartRecommendation(ctx context.Context) (*types.TaskResponse, error) {
	p := s.state.Profile()
	if p == nil {
		return nil, ErrProfileRequired
	}

	profile := *p
	return s.tasks.Start(types.TaskRecommendation, func(ctx context.Context) (any, error) {
		return s.ai.GenerateRecommendations(ctx, profile)
	})
}
