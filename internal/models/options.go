package models

// Option is a selectable value with its display label.
type Option[T any] struct {
	Value T      `json:"value"`
	Label string `json:"label"`
}

var ActivityLevels = []Option[float64]{
	{Value: ActivitySedentary, Label: "久坐不動（辦公室工作）"},
	{Value: ActivityLight, Label: "輕度活動（每周運動一至兩次）"},
	{Value: ActivityModerate, Label: "中度活動（每周運動三至五次）"},
	{Value: ActivityActive, Label: "重度活動（每周運動六至七次）"},
	{Value: ActivityVeryActive, Label: "極重度運動（運動員等級）"},
}

var MealTypes = []Option[MealType]{
	{Value: MealBreakfast, Label: "早餐"},
	{Value: MealLunch, Label: "午餐"},
	{Value: MealDinner, Label: "晚餐"},
	{Value: MealSnack, Label: "點心"},
}

var HealthGoals = []Option[HealthGoal]{
	{Value: GoalWeightLoss, Label: "減重減脂"},
	{Value: GoalMuscleGain, Label: "增肌塑形"},
	{Value: GoalMaintenance, Label: "維持健康"},
}

// IsActivityLevel reports whether v is exactly one of the five coefficients.
func IsActivityLevel(v float64) bool {
	for _, o := range ActivityLevels {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Label returns the display label of the goal, or the raw value when unknown.
func (g HealthGoal) Label() string {
	for _, o := range HealthGoals {
		if o.Value == g {
			return o.Label
		}
	}
	return string(g)
}

// Label returns 男性 for male and 女性 otherwise.
func (g Gender) Label() string {
	if g == GenderMale {
		return "男性"
	}
	return "女性"
}
