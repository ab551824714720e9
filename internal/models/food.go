package models

// MealType tags a logged meal.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// DefaultMealType is preselected on the analysis form.
const DefaultMealType = MealLunch

// DateLayout is the timestamp format of FoodEntry.Date, always UTC with
// millisecond precision.
const DateLayout = "2006-01-02T15:04:05.000Z"

// Nutrients of a single food component. Grams for macros and fiber,
// milligrams for sodium, vitamin C and calcium.
type Nutrients struct {
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sodium        float64 `json:"sodium"`
	VitaminC      float64 `json:"vitaminC"`
	Calcium       float64 `json:"calcium"`
}

// FoodComponent is one identified element of a meal.
type FoodComponent struct {
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
	Calories  float64   `json:"calories"`
	Nutrients Nutrients `json:"nutrients"`
	Analysis  string    `json:"analysis"`
}

// AnalysisResult is a complete food image analysis as returned by the model.
type AnalysisResult struct {
	FoodName       string          `json:"foodName" binding:"required"`
	MainComponents []FoodComponent `json:"mainComponents"`
	TotalCalories  float64         `json:"totalCalories"`
	NutritionTags  []string        `json:"nutritionTags"`
	DietaryAdvice  []string        `json:"dietaryAdvice"`
}

// FoodEntry is one logged meal. Date is an RFC 3339 UTC timestamp.
type FoodEntry struct {
	ID       string         `json:"id" binding:"required"`
	Date     string         `json:"date" binding:"required,datetime=2006-01-02T15:04:05Z07:00"`
	MealType MealType       `json:"mealType" binding:"required,oneof=breakfast lunch dinner snack"`
	Analysis AnalysisResult `json:"analysis"`
}

// UserData is the whole persisted document.
type UserData struct {
	Profile *Profile    `json:"profile"`
	FoodLog []FoodEntry `json:"foodLog"`
}

// NewUserData returns the empty default state.
func NewUserData() UserData {
	return UserData{FoodLog: []FoodEntry{}}
}

// Clone returns a copy whose profile and log can be mutated independently.
func (d UserData) Clone() UserData {
	out := UserData{FoodLog: make([]FoodEntry, len(d.FoodLog))}
	copy(out.FoodLog, d.FoodLog)
	if d.Profile != nil {
		p := *d.Profile
		out.Profile = &p
	}
	return out
}

// DailyTotals is the sum of nutrients over a set of food entries.
type DailyTotals struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	VitaminC      float64 `json:"vitaminC"`
	Calcium       float64 `json:"calcium"`
	Sodium        float64 `json:"sodium"`
}

// Plus returns the element-wise sum of t and o.
func (t DailyTotals) Plus(o DailyTotals) DailyTotals {
	return DailyTotals{
		Calories:      t.Calories + o.Calories,
		Protein:       t.Protein + o.Protein,
		Carbohydrates: t.Carbohydrates + o.Carbohydrates,
		Fat:           t.Fat + o.Fat,
		Fiber:         t.Fiber + o.Fiber,
		VitaminC:      t.VitaminC + o.VitaminC,
		Calcium:       t.Calcium + o.Calcium,
		Sodium:        t.Sodium + o.Sodium,
	}
}

// Div divides every field by n.
func (t DailyTotals) Div(n float64) DailyTotals {
	return DailyTotals{
		Calories:      t.Calories / n,
		Protein:       t.Protein / n,
		Carbohydrates: t.Carbohydrates / n,
		Fat:           t.Fat / n,
		Fiber:         t.Fiber / n,
		VitaminC:      t.VitaminC / n,
		Calcium:       t.Calcium / n,
		Sodium:        t.Sodium / n,
	}
}
