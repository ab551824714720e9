package models

// Gender is the biological sex used by the BMR formula.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// HealthGoal is the user's declared goal.
type HealthGoal string

const (
	GoalWeightLoss  HealthGoal = "weightLoss"
	GoalMuscleGain  HealthGoal = "muscleGain"
	GoalMaintenance HealthGoal = "maintenance"
)

// Activity level coefficients accepted by the profile form.
const (
	ActivitySedentary  = 1.2
	ActivityLight      = 1.375
	ActivityModerate   = 1.55
	ActivityActive     = 1.725
	ActivityVeryActive = 1.9
)

// ProfileInput holds the values the user submits on the profile form.
type ProfileInput struct {
	Age                int        `json:"age"`
	Gender             Gender     `json:"gender"`
	Height             float64    `json:"height"`
	Weight             float64    `json:"weight"`
	ActivityLevel      float64    `json:"activityLevel"`
	HealthGoal         HealthGoal `json:"healthGoal"`
	DietaryPreferences string     `json:"dietaryPreferences,omitempty"`
	CommonActivities   string     `json:"commonActivities,omitempty"`
}

// Profile is the submitted input plus the values derived from it on save.
type Profile struct {
	ProfileInput
	BMR               float64 `json:"bmr"`
	TDEE              float64 `json:"tdee"`
	EvaluationMessage string  `json:"evaluationMessage"`
}

// IntakeTargets is the recommended daily intake derived from TDEE.
type IntakeTargets struct {
	Calories      float64 `json:"calories"`
	Carbohydrates float64 `json:"carbs"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	VitaminC      float64 `json:"vitaminC"`
	Calcium       float64 `json:"calcium"`
}
