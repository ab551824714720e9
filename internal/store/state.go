package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// State owns the user document. Reads return copies; every mutation is
// applied to a copy, persisted, and only then made visible.
type State struct {
	mu      sync.RWMutex
	backend Backend
	key     string
	data    models.UserData
	logger  zerolog.Logger
}

// Open loads the document stored under key. A missing document yields the
// empty default; a document that cannot be decoded is an error.
func Open(ctx context.Context, backend Backend, key string, logger zerolog.Logger) (*State, error) {
	s := &State{
		backend: backend,
		key:     key,
		data:    models.NewUserData(),
		logger:  logger.With().Str("component", "store").Str("backend", backend.Name()).Logger(),
	}

	raw, err := backend.Load(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		s.logger.Info().Str("key", key).Msg("no stored document, starting empty")
		return s, nil
	case err != nil:
		return nil, err
	}

	var data models.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode document %q: %w", key, err)
	}
	if data.FoodLog == nil {
		data.FoodLog = []models.FoodEntry{}
	}
	s.data = data

	s.logger.Info().Str("key", key).Int("entries", len(data.FoodLog)).Bool("profile", data.Profile != nil).Msg("document loaded")
	return s, nil
}

// Snapshot returns a copy of the whole document.
func (s *State) Snapshot() models.UserData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Profile returns a copy of the current profile, or nil.
func (s *State) Profile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Profile == nil {
		return nil
	}
	p := *s.data.Profile
	return &p
}

// SetProfile replaces the profile.
func (s *State) SetProfile(ctx context.Context, p models.Profile) error {
	return s.update(ctx, func(d *models.UserData) {
		d.Profile = &p
	})
}

// AppendEntry adds e to the end of the log.
func (s *State) AppendEntry(ctx context.Context, e models.FoodEntry) error {
	return s.update(ctx, func(d *models.UserData) {
		d.FoodLog = append(d.FoodLog, e)
	})
}

// ClearLog empties the log. The profile is kept.
func (s *State) ClearLog(ctx context.Context) error {
	return s.update(ctx, func(d *models.UserData) {
		d.FoodLog = []models.FoodEntry{}
	})
}

// Replace swaps in a whole document.
func (s *State) Replace(ctx context.Context, data models.UserData) error {
	next := data.Clone()
	return s.update(ctx, func(d *models.UserData) {
		*d = next
	})
}

// Entries returns the log in insertion order.
func (s *State) Entries() []models.FoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.FoodLog)
}

// List returns the log sorted by date. Descending order puts later
// insertions first among entries with equal dates.
func (s *State) List(descending bool) []models.FoodEntry {
	entries := s.Entries()
	if descending {
		slices.Reverse(entries)
		slices.SortStableFunc(entries, func(a, b models.FoodEntry) int {
			return compareDates(b.Date, a.Date)
		})
		return entries
	}
	slices.SortStableFunc(entries, func(a, b models.FoodEntry) int {
		return compareDates(a.Date, b.Date)
	})
	return entries
}

// Ping checks the backend.
func (s *State) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Close releases the backend.
func (s *State) Close() error {
	return s.backend.Close()
}

func (s *State) update(ctx context.Context, mutate func(*models.UserData)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	mutate(&next)

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := s.backend.Save(ctx, s.key, raw); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("failed to persist document")
		return err
	}

	s.data = next
	return nil
}

// compareDates orders RFC 3339 timestamps chronologically, falling back to
// string order when either side does not parse.
func compareDates(a, b string) int {
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return ta.Compare(tb)
}
