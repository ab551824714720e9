package models

type Recipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type Meal struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Recipe   Recipe  `json:"recipe"`
}

type MealPlan struct {
	Breakfast Meal `json:"breakfast"`
	Lunch     Meal `json:"lunch"`
	Dinner    Meal `json:"dinner"`
	Snacks    Meal `json:"snacks"`
}

type Exercise struct {
	Name        string `json:"name"`
	Sets        string `json:"sets"`
	Reps        string `json:"reps"`
	Description string `json:"description"`
}

type ExerciseDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

type ExercisePlan struct {
	Summary        string        `json:"summary"`
	WeeklySchedule []ExerciseDay `json:"weeklySchedule"`
}

// RecommendationResult is a one-day meal plan plus a weekly exercise plan.
type RecommendationResult struct {
	MealPlan     MealPlan     `json:"mealPlan"`
	ExercisePlan ExercisePlan `json:"exercisePlan"`
}

// RiskLevel is the overall level of a health-risk assessment.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether l is one of the three known levels.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

type PotentialRisk struct {
	RiskName       string `json:"riskName"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation"`
}

// HealthRiskAssessment is the model's long-term risk evaluation.
type HealthRiskAssessment struct {
	OverallRiskLevel RiskLevel       `json:"overallRiskLevel"`
	Summary          string          `json:"summary"`
	PotentialRisks   []PotentialRisk `json:"potentialRisks"`
}
