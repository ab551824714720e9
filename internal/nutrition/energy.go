// Package nutrition holds the energy model and the food-log aggregations.
// Everything here is a pure function of its arguments.
package nutrition

import "github.com/pageza/nutrilog/backend/internal/models"

// Fixed micronutrient targets, independent of TDEE.
const (
	FiberTargetGrams = 25
	VitaminCTargetMg = 90
	CalciumTargetMg  = 1000
)

const (
	carbsShare         = 0.5
	proteinShare       = 0.2
	fatShare           = 0.3
	kcalPerGramCarbs   = 4
	kcalPerGramProtein = 4
	kcalPerGramFat     = 9
)

// CalculateBMR returns the basal metabolic rate in kcal/day using the
// revised Harris-Benedict coefficients. Anything other than male uses the
// female formula.
func CalculateBMR(p models.ProfileInput) float64 {
	age := float64(p.Age)
	if p.Gender == models.GenderMale {
		return 88.362 + 13.397*p.Weight + 4.799*p.Height - 5.677*age
	}
	return 447.593 + 9.247*p.Weight + 3.098*p.Height - 4.330*age
}

// CalculateTDEE scales bmr by the activity coefficient. The coefficient is
// not checked here; see models.IsActivityLevel.
func CalculateTDEE(bmr, activityLevel float64) float64 {
	return bmr * activityLevel
}

// RecommendedIntake derives daily targets from tdee. The macro split is a
// fixed 50/20/30 carbs/protein/fat for every goal.
func RecommendedIntake(tdee float64, _ models.HealthGoal) models.IntakeTargets {
	return models.IntakeTargets{
		Calories:      tdee,
		Carbohydrates: tdee * carbsShare / kcalPerGramCarbs,
		Protein:       tdee * proteinShare / kcalPerGramProtein,
		Fat:           tdee * fatShare / kcalPerGramFat,
		Fiber:         FiberTargetGrams,
		VitaminC:      VitaminCTargetMg,
		Calcium:       CalciumTargetMg,
	}
}

// NewProfile computes the derived fields for in and returns the full profile.
func NewProfile(in models.ProfileInput) models.Profile {
	bmr := CalculateBMR(in)
	return models.Profile{
		ProfileInput:      in,
		BMR:               bmr,
		TDEE:              CalculateTDEE(bmr, in.ActivityLevel),
		EvaluationMessage: EvaluationMessage(in.ActivityLevel),
	}
}
