package types

import (
	"strings"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// ProfileRequest is the body of PUT /profile. Pointer fields distinguish a
// missing value from a zero one.
type ProfileRequest struct {
	Age                *int               `json:"age" binding:"required,gt=0"`
	Gender             *models.Gender     `json:"gender" binding:"required,oneof=male female"`
	Height             *float64           `json:"height" binding:"required,gt=0"`
	Weight             *float64           `json:"weight" binding:"required,gt=0"`
	ActivityLevel      *float64           `json:"activityLevel" binding:"required,activitylevel"`
	HealthGoal         *models.HealthGoal `json:"healthGoal" binding:"required,oneof=weightLoss muscleGain maintenance"`
	DietaryPreferences string             `json:"dietaryPreferences,omitempty"`
	CommonActivities   string             `json:"commonActivities,omitempty"`
}

// Build validates the request and returns the profile input. On failure the
// error is a ValidationErrors listing every offending field.
func (r ProfileRequest) Build() (models.ProfileInput, error) {
	if err := ValidateStruct(r); err != nil {
		return models.ProfileInput{}, err
	}

	return models.ProfileInput{
		Age:                *r.Age,
		Gender:             *r.Gender,
		Height:             *r.Height,
		Weight:             *r.Weight,
		ActivityLevel:      *r.ActivityLevel,
		HealthGoal:         *r.HealthGoal,
		DietaryPreferences: strings.TrimSpace(r.DietaryPreferences),
		CommonActivities:   strings.TrimSpace(r.CommonActivities),
	}, nil
}

// ProfileRequestFrom is the inverse of Build, used to revalidate stored
// profiles.
func ProfileRequestFrom(in models.ProfileInput) ProfileRequest {
	return ProfileRequest{
		Age:                &in.Age,
		Gender:             &in.Gender,
		Height:             &in.Height,
		Weight:             &in.Weight,
		ActivityLevel:      &in.ActivityLevel,
		HealthGoal:         &in.HealthGoal,
		DietaryPreferences: in.DietaryPreferences,
		CommonActivities:   in.CommonActivities,
	}
}
