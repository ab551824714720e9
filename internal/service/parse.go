package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// shape walks a decoded reply and records the first missing field.
type shape struct {
	err error
}

func (s *shape) fail(format string, args ...any) {
	if s.err == nil {
		s.err = fmt.Errorf("%w: "+format, append([]any{ErrMalformedReply}, args...)...)
	}
}

// object decodes raw as a JSON object and checks that every key is present
// and not null.
func (s *shape) object(raw json.RawMessage, path string, keys ...string) map[string]json.RawMessage {
	if s.err != nil {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		s.fail("%s is not an object", path)
		return nil
	}
	for _, k := range keys {
		v, ok := m[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			s.fail("%s.%s is missing", path, k)
			return nil
		}
	}
	return m
}

// array decodes raw as a JSON array.
func (s *shape) array(raw json.RawMessage, path string) []json.RawMessage {
	if s.err != nil {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		s.fail("%s is not an array", path)
		return nil
	}
	return items
}

// replyJSON strips the markdown fence some models wrap JSON in.
func replyJSON(text string) []byte {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```json")
		t = strings.TrimPrefix(t, "```")
		t = strings.TrimSuffix(t, "```")
		t = strings.TrimSpace(t)
	}
	return []byte(t)
}

func decode(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return nil
}

// ParseAnalysis decodes a food analysis reply.
func ParseAnalysis(text string) (*models.AnalysisResult, error) {
	raw := replyJSON(text)

	var s shape
	top := s.object(raw, "reply", "foodName", "mainComponents", "totalCalories")
	for i, c := range s.array(top["mainComponents"], "reply.mainComponents") {
		path := fmt.Sprintf("reply.mainComponents[%d]", i)
		comp := s.object(c, path, "name", "nutrients")
		s.object(comp["nutrients"], path+".nutrients")
	}
	if s.err != nil {
		return nil, s.err
	}

	var out models.AnalysisResult
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	if out.NutritionTags == nil {
		out.NutritionTags = []string{}
	}
	if out.DietaryAdvice == nil {
		out.DietaryAdvice = []string{}
	}
	return &out, nil
}

// ParseRecommendation decodes a meal and exercise plan reply.
func ParseRecommendation(text string) (*models.RecommendationResult, error) {
	raw := replyJSON(text)

	var s shape
	top := s.object(raw, "reply", "mealPlan", "exercisePlan")
	meals := s.object(top["mealPlan"], "reply.mealPlan", "breakfast", "lunch", "dinner", "snacks")
	for _, meal := range []string{"breakfast", "lunch", "dinner", "snacks"} {
		s.object(meals[meal], "reply.mealPlan."+meal, "name", "recipe")
	}
	plan := s.object(top["exercisePlan"], "reply.exercisePlan", "summary", "weeklySchedule")
	s.array(plan["weeklySchedule"], "reply.exercisePlan.weeklySchedule")
	if s.err != nil {
		return nil, s.err
	}

	var out models.RecommendationResult
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseRiskAssessment decodes a health-risk assessment reply.
func ParseRiskAssessment(text string) (*models.HealthRiskAssessment, error) {
	raw := replyJSON(text)

	var s shape
	top := s.object(raw, "reply", "overallRiskLevel", "summary", "potentialRisks")
	s.array(top["potentialRisks"], "reply.potentialRisks")
	if s.err != nil {
		return nil, s.err
	}

	var out models.HealthRiskAssessment
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	if !out.OverallRiskLevel.Valid() {
		return nil, fmt.Errorf("%w: unknown overallRiskLevel %q", ErrMalformedReply, out.OverallRiskLevel)
	}
	return &out, nil
}
