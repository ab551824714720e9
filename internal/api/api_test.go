package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/service"
	"github.com/pageza/nutrilog/backend/internal/store"
	"github.com/pageza/nutrilog/backend/internal/testhelpers"
	"github.com/pageza/nutrilog/backend/internal/types"
)

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", HealthCheck(store.NewMemoryBackend()))
	router.GET("/down", HealthCheck(downStore{}))

	w := perform(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = perform(router, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// newApp wires the real services over a memory store and a fake Gemini
// endpoint that answers every request with reply.
func newApp(t *testing.T, reply string) (*gin.Engine, *store.State) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		body, _ := json.Marshal(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{map[string]any{"text": reply}}},
			}},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(gemini.Close)

	logger := zerolog.Nop()
	state, err := store.Open(context.Background(), store.NewMemoryBackend(), store.DefaultKey, logger)
	require.NoError(t, err)

	ai := service.NewGeminiService(service.GeminiConfig{APIKey: "k", BaseURL: gemini.URL, Model: "test"}, logger)
	tasks := service.NewTaskRunner(5*time.Second, logger)
	t.Cleanup(func() { _ = tasks.Shutdown(context.Background()) })

	router := gin.New()
	RegisterRoutes(router, Services{
		Profile:         service.NewProfileService(state, logger),
		FoodLog:         service.NewFoodLogService(state, ai, tasks, logger),
		Health:          service.NewHealthService(state, ai, tasks, logger),
		Recommendations: service.NewRecommendationService(state, ai, tasks, logger),
		Data:            service.NewDataService(state, logger),
		Tasks:           tasks,
	}, state, 1<<20, logger)
	return router, state
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16))))
	return buf.Bytes()
}

func TestAnalyzeEndToEnd(t *testing.T) {
	reply := `{"foodName": "雞肉飯", "totalCalories": 450, "nutritionTags": [], "dietaryAdvice": [],
		"mainComponents": [{"name": "雞肉", "weight": 100, "calories": 200, "analysis": "",
			"nutrients": {"protein": 30, "carbohydrates": 0, "fat": 5, "fiber": 0, "sodium": 80, "vitaminC": 0, "calcium": 10}}]}`
	router, state := newApp(t, reply)

	w := perform(router, uploadRequest(t, "/api/v1/analysis?wait=true", testPNG(t), "breakfast"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Status types.TaskStatus `json:"status"`
		Result models.FoodEntry `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.TaskSucceeded, resp.Status)
	assert.Equal(t, models.MealBreakfast, resp.Result.MealType)
	assert.Equal(t, "雞肉飯", resp.Result.Analysis.FoodName)

	entries := state.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, resp.Result.ID, entries[0].ID)

	w = perform(router, jsonRequest(t, http.MethodGet, "/api/v1/health-data/today", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30.0, decode[types.TodaySummary](t, w).Totals.Protein)
}

func TestAnalyzeEndToEndMalformedReply(t *testing.T) {
	router, state := newApp(t, `{"foodName": "?"}`)

	w := perform(router, uploadRequest(t, "/api/v1/analysis?wait=true", testPNG(t), ""))

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, service.MsgAnalysisFailed, decode[types.ErrorResponse](t, w).Error)
	assert.Empty(t, state.Entries())
}

func TestRiskAssessmentEndToEnd(t *testing.T) {
	router, state := newApp(t, `{"overallRiskLevel": "high", "summary": "鈉攝取過高", "potentialRisks": []}`)
	ctx := context.Background()

	profile := types.ProfileRequestFrom(testhelpers.SampleProfileInput())
	w := perform(router, jsonRequest(t, http.MethodPut, "/api/v1/profile", profile))
	require.Equal(t, http.StatusOK, w.Code)
	saved := decode[models.Profile](t, w)
	assert.InDelta(t, 1695.667, saved.BMR, 1e-6)

	now := time.Now().UTC()
	for _, e := range testhelpers.SampleLog(now, 2) {
		require.NoError(t, state.AppendEntry(ctx, e))
	}

	w = perform(router, jsonRequest(t, http.MethodPost, "/api/v1/health-data/risk-assessment", nil))
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, 1, decode[types.ErrorResponse](t, w).DaysRemaining)

	require.NoError(t, state.AppendEntry(ctx, testhelpers.SampleEntry(now.AddDate(0, 0, -5), 800)))

	w = perform(router, jsonRequest(t, http.MethodPost, "/api/v1/health-data/risk-assessment", nil))
	require.Equal(t, http.StatusAccepted, w.Code)
	started := decode[types.TaskResponse](t, w)

	w = perform(router, jsonRequest(t, http.MethodGet, "/api/v1/tasks/"+started.ID+"?wait=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var done struct {
		Status types.TaskStatus            `json:"status"`
		Result models.HealthRiskAssessment `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &done))
	assert.Equal(t, types.TaskSucceeded, done.Status)
	assert.Equal(t, models.RiskHigh, done.Result.OverallRiskLevel)
}

func TestClearAndExportEndToEnd(t *testing.T) {
	router, state := newApp(t, `{}`)
	require.NoError(t, state.AppendEntry(context.Background(), testhelpers.SampleEntry(time.Now(), 500)))

	w := perform(router, jsonRequest(t, http.MethodDelete, "/api/v1/food-log?confirm=true", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = perform(router, jsonRequest(t, http.MethodGet, "/api/v1/export", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"profile": null, "foodLog": []}`, w.Body.String())
}
