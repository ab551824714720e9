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

// DataService exports and imports the whole user document.
type DataService struct {
	state  *store.State
	logger zerolog.Logger
}

var _ IDataService = (*DataService)(nil)

func NewDataService(state *store.State, logger zerolog.Logger) *DataService {
	return &DataService{
		state:  state,
		logger: logger.With().Str("component", "data").Logger(),
	}
}

// Export returns a copy of the stored document.
func (s *DataService) Export(ctx context.Context) (models.UserData, error) {
	return s.state.Snapshot(), nil
}

// Import validates data and replaces the stored document with it. The
// profile's derived fields are recomputed rather than trusted.
func (s *DataService) Import(ctx context.Context, data models.UserData) (models.UserData, error) {
	if err := types.ValidateUserData(data); err != nil {
		return models.UserData{}, err
	}

	next := data.Clone()
	if next.FoodLog == nil {
		next.FoodLog = []models.FoodEntry{}
	}
	if next.Profile != nil {
		p := nutrition.NewProfile(next.Profile.ProfileInput)
		next.Profile = &p
	}

	if err := s.state.Replace(ctx, next); err != nil {
		return models.UserData{}, fmt.Errorf("failed to import document: %w", err)
	}

	s.logger.Info().Int("entries", len(next.FoodLog)).Bool("profile", next.Profile != nil).Msg("document imported")
	return s.state.Snapshot(), nil
}
