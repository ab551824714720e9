package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/store"
	"github.com/pageza/nutrilog/backend/internal/testhelpers"
	"github.com/pageza/nutrilog/backend/internal/types"
)

// stubAI records its calls and answers with canned results.
type stubAI struct {
	mu       sync.Mutex
	analysis *models.AnalysisResult
	err      error
	images   []string
	profiles []models.Profile
	averages []models.DailyTotals
}

func (s *stubAI) AnalyzeFoodImage(_ context.Context, img string) (*models.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, img)
	if s.err != nil {
		return nil, s.err
	}
	out := *s.analysis
	return &out, nil
}

func (s *stubAI) GenerateRecommendations(_ context.Context, p models.Profile) (*models.RecommendationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = append(s.profiles, p)
	if s.err != nil {
		return nil, s.err
	}
	return &models.RecommendationResult{ExercisePlan: models.ExercisePlan{Summary: "walk"}}, nil
}

func (s *stubAI) AssessHealthRisk(_ context.Context, p models.Profile, avg models.DailyTotals) (*models.HealthRiskAssessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = append(s.profiles, p)
	s.averages = append(s.averages, avg)
	if s.err != nil {
		return nil, s.err
	}
	return &models.HealthRiskAssessment{OverallRiskLevel: models.RiskLow, Summary: "ok"}, nil
}

func (s *stubAI) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images) + len(s.profiles)
}

type fixture struct {
	state   *store.State
	ai      *stubAI
	tasks   *TaskRunner
	profile *ProfileService
	foodlog *FoodLogService
	health  *HealthService
	recs    *RecommendationService
	data    *DataService
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	state, err := store.Open(context.Background(), store.NewMemoryBackend(), store.DefaultKey, zerolog.Nop())
	require.NoError(t, err)

	analysis := testhelpers.SampleAnalysis("雞肉飯", 450)
	f := &fixture{
		state: state,
		ai:    &stubAI{analysis: &analysis},
		tasks: newRunner(t),
		now:   time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC),
	}
	f.profile = NewProfileService(state, zerolog.Nop())
	f.foodlog = NewFoodLogService(state, f.ai, f.tasks, zerolog.Nop())
	f.foodlog.clock = func() time.Time { return f.now }
	f.health = NewHealthService(state, f.ai, f.tasks, zerolog.Nop())
	f.health.clock = func() time.Time { return f.now }
	f.recs = NewRecommendationService(state, f.ai, f.tasks, zerolog.Nop())
	f.data = NewDataService(state, zerolog.Nop())
	return f
}

func (f *fixture) saveProfile(t *testing.T) *models.Profile {
	t.Helper()
	p, err := f.profile.SaveProfile(context.Background(), types.ProfileRequestFrom(testhelpers.SampleProfileInput()))
	require.NoError(t, err)
	return p
}

func (f *fixture) logDays(t *testing.T, days int) {
	t.Helper()
	for _, e := range testhelpers.SampleLog(f.now, days) {
		require.NoError(t, f.state.AppendEntry(context.Background(), e))
	}
}

func TestAnalysisLogsEntry(t *testing.T) {
	f := newFixture(t)

	started, err := f.foodlog.StartAnalysis(context.Background(), pngOf(t, 40, 30), "")
	require.NoError(t, err)
	assert.Equal(t, types.TaskAnalysis, started.Kind)

	done := waitTask(t, f.tasks, started.ID)
	require.Equal(t, types.TaskSucceeded, done.Status)

	entry, ok := done.Result.(models.FoodEntry)
	require.True(t, ok)
	assert.Equal(t, models.MealLunch, entry.MealType)
	assert.Equal(t, "2024-05-20T08:30:00.000Z", entry.Date)
	assert.Equal(t, "雞肉飯", entry.Analysis.FoodName)
	assert.Len(t, entry.ID, 36)

	assert.Equal(t, []models.FoodEntry{entry}, f.state.Entries())
	require.Len(t, f.ai.images, 1)
	assert.NotEmpty(t, f.ai.images[0])
}

func TestAnalysisFailureLogsNothing(t *testing.T) {
	f := newFixture(t)
	f.ai.err = ErrMalformedReply

	started, err := f.foodlog.StartAnalysis(context.Background(), pngOf(t, 8, 8), models.MealDinner)
	require.NoError(t, err)

	done := waitTask(t, f.tasks, started.ID)
	assert.Equal(t, types.TaskFailed, done.Status)
	assert.Equal(t, MsgAnalysisFailed, done.Error)
	assert.Empty(t, f.state.Entries())
}

func TestAnalysisRejectsBadInputBeforeCallingAI(t *testing.T) {
	f := newFixture(t)

	_, err := f.foodlog.StartAnalysis(context.Background(), []byte("plain text"), models.MealLunch)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = f.foodlog.StartAnalysis(context.Background(), pngOf(t, 8, 8), "brunch")
	var verrs types.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	assert.Zero(t, f.ai.calls())
}

func TestHistoryOrderAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.logDays(t, 3)

	desc, err := f.foodlog.History(ctx, true, "")
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.True(t, desc[0].Date > desc[2].Date)

	asc, err := f.foodlog.History(ctx, false, "")
	require.NoError(t, err)
	assert.Equal(t, desc[2], asc[0])

	day, err := f.foodlog.History(ctx, true, "2024-05-19")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "2024-05-19", day[0].Date[:10])

	_, err = f.foodlog.History(ctx, true, "05/19/2024")
	var verrs types.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestClearKeepsProfileAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.saveProfile(t)
	f.logDays(t, 2)

	require.NoError(t, f.foodlog.Clear(context.Background()))
	require.NoError(t, f.foodlog.Clear(context.Background()))

	assert.Empty(t, f.state.Entries())
	assert.NotNil(t, f.state.Profile())
}

func TestTodaySummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.logDays(t, 2)

	today, err := f.health.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-20", today.Date)
	assert.Equal(t, 600.0, today.Totals.Calories)
	assert.Equal(t, 42.0, today.Totals.Protein)
	assert.Nil(t, today.Targets)
	assert.Empty(t, today.Progress)

	f.saveProfile(t)
	today, err = f.health.Today(ctx)
	require.NoError(t, err)
	require.NotNil(t, today.Targets)
	require.Len(t, today.Progress, 7)

	calories := today.Progress[0]
	assert.Equal(t, "calories", calories.Nutrient)
	assert.Equal(t, "總熱量", calories.Label)
	assert.InDelta(t, 600/2628.28385*100, calories.Percent, 1e-9)

	calcium := today.Progress[6]
	assert.Equal(t, "鈣質", calcium.Label)
	assert.Equal(t, 24.0, calcium.Current)
	assert.InDelta(t, 2.4, calcium.Percent, 1e-9)
}

func TestAverage(t *testing.T) {
	f := newFixture(t)

	avg, err := f.health.Average(context.Background())
	require.NoError(t, err)
	assert.Nil(t, avg.Average)
	assert.Zero(t, avg.Days)

	f.logDays(t, 4)
	avg, err = f.health.Average(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, avg.Days)
	assert.InDelta(t, 600, avg.Average.Calories, 1e-9)
}

func TestRiskAssessmentPreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.health.StartRiskAssessment(ctx)
	assert.ErrorIs(t, err, ErrProfileRequired)

	f.saveProfile(t)
	f.logDays(t, 2)
	_, err = f.health.StartRiskAssessment(ctx)
	require.ErrorIs(t, err, ErrInsufficientHistory)
	var hist *InsufficientHistoryError
	require.True(t, errors.As(err, &hist))
	assert.Equal(t, 1, hist.Remaining())
	assert.Zero(t, f.ai.calls())

	require.NoError(t, f.state.AppendEntry(ctx, testhelpers.SampleEntry(f.now.AddDate(0, 0, -2), 900)))
	started, err := f.health.StartRiskAssessment(ctx)
	require.NoError(t, err)

	done := waitTask(t, f.tasks, started.ID)
	require.Equal(t, types.TaskSucceeded, done.Status)
	require.Len(t, f.ai.averages, 1)
	assert.InDelta(t, 700, f.ai.averages[0].Calories, 1e-9)
}

func TestRecommendationNeedsProfile(t *testing.T) {
	f := newFixture(t)

	_, err := f.recs.StartRecommendation(context.Background())
	assert.ErrorIs(t, err, ErrProfileRequired)

	saved := f.saveProfile(t)
	started, err := f.recs.StartRecommendation(context.Background())
	require.NoError(t, err)

	done := waitTask(t, f.tasks, started.ID)
	assert.Equal(t, types.TaskSucceeded, done.Status)
	require.Len(t, f.ai.profiles, 1)
	assert.Equal(t, *saved, f.ai.profiles[0])
}

func TestExportImport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.saveProfile(t)
	f.logDays(t, 2)

	exported, err := f.data.Export(ctx)
	require.NoError(t, err)
	require.Len(t, exported.FoodLog, 2)

	require.NoError(t, f.foodlog.Clear(ctx))

	exported.Profile.BMR = 1
	imported, err := f.data.Import(ctx, exported)
	require.NoError(t, err)
	assert.Len(t, imported.FoodLog, 2)
	assert.InDelta(t, 1695.667, imported.Profile.BMR, 1e-6, "derived fields are recomputed")

	bad := exported.Clone()
	bad.FoodLog[1].ID = bad.FoodLog[0].ID
	_, err = f.data.Import(ctx, bad)
	var verrs types.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, f.state.Entries(), 2, "rejected import leaves state untouched")
}
