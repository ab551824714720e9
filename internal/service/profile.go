package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/nutrition"
	"github.com/pageza/nutrilog/backend/internal/store"
	"github.com/pageza/nutrilog/backend/internal/types"
)

// ProfileService handles the user profile
type ProfileService struct {
	state  *store.State
	logger zerolog.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(state *store.State, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		state:  state,
		logger: logger.With().Str("component", "profile").Logger(),
	}
}

// GetProfile returns the stored profile or ErrProfileNotFound.
func (s *ProfileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	p := s.state.Profile()
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// SaveProfile validates req, computes BMR, TDEE and the evaluation message
// and replaces the stored profile.
func (s *ProfileService) SaveProfile(ctx context.Context, req types.ProfileRequest) (*models.Profile, error) {
	in, err := req.Build()
	if err != nil {
		return nil, err
	}

	p := nutrition.NewProfile(in)
	if err := s.state.SetProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info().Float64("bmr", p.BMR).Float64("tdee", p.TDEE).Msg("profile saved")
	return &p, nil
}

// GetIntake returns the recommended daily intake for the stored profile.
func (s *ProfileService) GetIntake(ctx context.Context) (*models.IntakeTargets, error) {
	p := s.state.Profile()
	if p == nil {
		return nil, ErrProfileRequired
	}
	targets := nutrition.RecommendedIntake(p.TDEE, p.HealthGoal)
	return &targets, nil
}
