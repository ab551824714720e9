package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/nutrition"
	"github.com/pageza/nutrilog/backend/internal/testhelpers"
)

type failingBackend struct {
	*MemoryBackend
	err error
}

func (f *failingBackend) Save(context.Context, string, []byte) error { return f.err }

func openState(t *testing.T, b Backend) *State {
	t.Helper()
	s, err := Open(context.Background(), b, DefaultKey, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func entryAt(id, date string) models.FoodEntry {
	return models.FoodEntry{ID: id, Date: date, MealType: models.MealSnack,
		Analysis: models.AnalysisResult{FoodName: id}}
}

func ids(entries []models.FoodEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestOpenDefaults(t *testing.T) {
	s := openState(t, NewMemoryBackend())

	snap := s.Snapshot()
	assert.Nil(t, snap.Profile)
	assert.NotNil(t, snap.FoodLog)
	assert.Empty(t, snap.FoodLog)
	assert.Nil(t, s.Profile())
}

func TestOpenRejectsCorruptDocument(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Save(context.Background(), DefaultKey, []byte("{not json")))

	_, err := Open(context.Background(), b, DefaultKey, zerolog.Nop())
	assert.Error(t, err)
}

func TestOpenNullFoodLog(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Save(context.Background(), DefaultKey, []byte(`{"profile":null,"foodLog":null}`)))

	s := openState(t, b)
	assert.NotNil(t, s.Snapshot().FoodLog)
}

func TestAppendEntryKeepsOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	s := openState(t, NewMemoryBackend())

	a := entryAt("a", "2025-01-02T08:00:00.000Z")
	b := entryAt("b", "2025-01-01T08:00:00.000Z")
	require.NoError(t, s.AppendEntry(ctx, a))
	require.NoError(t, s.AppendEntry(ctx, b))
	require.NoError(t, s.AppendEntry(ctx, a))

	assert.Equal(t, []string{"a", "b", "a"}, ids(s.Entries()))
}

func TestClearLog(t *testing.T) {
	ctx := context.Background()
	s := openState(t, NewMemoryBackend())
	profile := nutrition.NewProfile(testhelpers.SampleProfileInput())
	require.NoError(t, s.SetProfile(ctx, profile))
	require.NoError(t, s.AppendEntry(ctx, entryAt("a", "2025-01-01T08:00:00.000Z")))

	require.NoError(t, s.ClearLog(ctx))
	first := s.Snapshot()
	require.NoError(t, s.ClearLog(ctx))
	second := s.Snapshot()

	assert.Empty(t, first.FoodLog)
	assert.Equal(t, first, second)
	require.NotNil(t, second.Profile)
	assert.Equal(t, profile, *second.Profile)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := openState(t, NewMemoryBackend())
	for _, e := range []models.FoodEntry{
		entryAt("mid", "2025-01-02T08:00:00.000Z"),
		entryAt("old", "2025-01-01T08:00:00.000Z"),
		entryAt("tie1", "2025-01-03T08:00:00.000Z"),
		entryAt("tie2", "2025-01-03T08:00:00.000Z"),
	} {
		require.NoError(t, s.AppendEntry(ctx, e))
	}

	assert.Equal(t, []string{"tie2", "tie1", "mid", "old"}, ids(s.List(true)))
	assert.Equal(t, []string{"old", "mid", "tie1", "tie2"}, ids(s.List(false)))

	// listing never reorders the stored log
	assert.Equal(t, []string{"mid", "old", "tie1", "tie2"}, ids(s.Entries()))
}

func TestListComparesInstants(t *testing.T) {
	ctx := context.Background()
	s := openState(t, NewMemoryBackend())
	require.NoError(t, s.AppendEntry(ctx, entryAt("utc", "2025-01-01T10:00:00.000Z")))
	// 09:00 UTC
	require.NoError(t, s.AppendEntry(ctx, entryAt("taipei", "2025-01-01T17:00:00+08:00")))

	assert.Equal(t, []string{"utc", "taipei"}, ids(s.List(true)))
}

func TestMutationsPersist(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s := openState(t, b)

	profile := nutrition.NewProfile(testhelpers.SampleProfileInput())
	entry := testhelpers.SampleEntry(time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC), 540)
	require.NoError(t, s.SetProfile(ctx, profile))
	require.NoError(t, s.AppendEntry(ctx, entry))

	raw, err := b.Load(ctx, DefaultKey)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "profile")
	assert.Contains(t, doc, "foodLog")

	reopened := openState(t, b)
	assert.Equal(t, s.Snapshot(), reopened.Snapshot())
}

func TestFailedSaveLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	b := &failingBackend{MemoryBackend: NewMemoryBackend(), err: boom}
	s := openState(t, b)

	err := s.AppendEntry(ctx, entryAt("a", "2025-01-01T08:00:00.000Z"))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Entries())

	err = s.SetProfile(ctx, nutrition.NewProfile(testhelpers.SampleProfileInput()))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, s.Profile())
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := openState(t, NewMemoryBackend())
	require.NoError(t, s.SetProfile(ctx, nutrition.NewProfile(testhelpers.SampleProfileInput())))
	require.NoError(t, s.AppendEntry(ctx, entryAt("a", "2025-01-01T08:00:00.000Z")))

	snap := s.Snapshot()
	snap.FoodLog[0].ID = "changed"
	snap.Profile.Age = 99

	assert.Equal(t, "a", s.Entries()[0].ID)
	assert.Equal(t, 30, s.Profile().Age)
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	s := openState(t, NewMemoryBackend())
	require.NoError(t, s.AppendEntry(ctx, entryAt("old", "2025-01-01T08:00:00.000Z")))

	next := models.UserData{FoodLog: []models.FoodEntry{entryAt("new", "2025-02-01T08:00:00.000Z")}}
	require.NoError(t, s.Replace(ctx, next))

	next.FoodLog[0].ID = "mutated after replace"
	assert.Equal(t, []string{"new"}, ids(s.Entries()))
}
