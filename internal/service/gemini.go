package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// GeminiRequest is the generateContent request body.
type GeminiRequest struct {
	Contents         []GeminiContent   `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GenerationConfig struct {
	ResponseMimeType string        `json:"responseMimeType"`
	ResponseSchema   *GeminiSchema `json:"responseSchema,omitempty"`
}

// GeminiSchema is the OpenAPI subset Gemini accepts as a response schema.
type GeminiSchema struct {
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Properties  map[string]*GeminiSchema `json:"properties,omitempty"`
	Items       *GeminiSchema            `json:"items,omitempty"`
	Required    []string                 `json:"required,omitempty"`
	Enum        []string                 `json:"enum,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// maxErrorBody caps how much of a failed response is kept for the log.
const maxErrorBody = 2048

// GeminiConfig configures GeminiService.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds one HTTP round trip. Zero means no client timeout;
	// callers then rely on the context.
	Timeout time.Duration
}

// GeminiService calls the Gemini generateContent REST endpoint. Each method
// is one request and one reply; nothing is retried or cached.
type GeminiService struct {
	cfg    GeminiConfig
	http   *http.Client
	logger zerolog.Logger
}

var _ IAIService = (*GeminiService)(nil)

func NewGeminiService(cfg GeminiConfig, logger zerolog.Logger) *GeminiService {
	return &GeminiService{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("component", "gemini").Str("model", cfg.Model).Logger(),
	}
}

func (s *GeminiService) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.Model)
}

// Generate sends req and returns the text of the first candidate.
func (s *GeminiService) Generate(ctx context.Context, req GeminiRequest) (string, error) {
	if s.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: api key is not configured", ErrUpstream)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.cfg.APIKey)

	start := time.Now()
	resp, err := s.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	s.logger.Debug().Int("status", resp.StatusCode).Dur("latency", time.Since(start)).Msg("gemini responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrMalformedReply, err)
	}
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", ErrMalformedReply, out.PromptFeedback.BlockReason)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content in response", ErrMalformedReply)
	}

	var text strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}

// AnalyzeFoodImage analyzes a base64 JPEG.
func (s *GeminiService) AnalyzeFoodImage(ctx context.Context, imageBase64 string) (*models.AnalysisResult, error) {
	text, err := s.Generate(ctx, BuildAnalysisRequest(imageBase64))
	if err != nil {
		return nil, err
	}
	return ParseAnalysis(text)
}

// GenerateRecommendations produces a one-day meal plan and a weekly
// exercise plan for p.
func (s *GeminiService) GenerateRecommendations(ctx context.Context, p models.Profile) (*models.RecommendationResult, error) {
	text, err := s.Generate(ctx, BuildRecommendationRequest(p))
	if err != nil {
		return nil, err
	}
	return ParseRecommendation(text)
}

// AssessHealthRisk evaluates long-term risk from p and the average daily
// intake.
func (s *GeminiService) AssessHealthRisk(ctx context.Context, p models.Profile, avg models.DailyTotals) (*models.HealthRiskAssessment, error) {
	text, err := s.Generate(ctx, BuildRiskAssessmentRequest(p, avg))
	if err != nil {
		return nil, err
	}
	return ParseRiskAssessment(text)
}
