package testhelpers

import (
	"fmt"
	"time"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// SampleProfileInput is a valid 30 year old male profile with moderate
// activity.
func SampleProfileInput() models.ProfileInput {
	return models.ProfileInput{
		Age:           30,
		Gender:        models.GenderMale,
		Height:        175,
		Weight:        70,
		ActivityLevel: models.ActivityModerate,
		HealthGoal:    models.GoalMaintenance,
	}
}

// SampleAnalysis returns a two-component analysis of roughly the given
// calories.
func SampleAnalysis(name string, calories float64) models.AnalysisResult {
	return models.AnalysisResult{
		FoodName: name,
		MainComponents: []models.FoodComponent{
			{
				Name:     "白飯",
				Weight:   200,
				Calories: calories * 0.6,
				Nutrients: models.Nutrients{
					Protein: 5, Carbohydrates: 56, Fat: 0.6, Fiber: 0.8,
					Sodium: 2, VitaminC: 0, Calcium: 6,
				},
				Analysis: "主要碳水化合物來源",
			},
			{
				Name:     "雞胸肉",
				Weight:   120,
				Calories: calories * 0.4,
				Nutrients: models.Nutrients{
					Protein: 37, Carbohydrates: 0, Fat: 4.3, Fiber: 0,
					Sodium: 89, VitaminC: 0, Calcium: 18,
				},
				Analysis: "優質蛋白質",
			},
		},
		TotalCalories: calories,
		NutritionTags: []string{"高蛋白"},
		DietaryAdvice: []string{"搭配蔬菜增加膳食纖維"},
	}
}

// SampleEntry returns a lunch entry logged at the given time.
func SampleEntry(at time.Time, calories float64) models.FoodEntry {
	return models.FoodEntry{
		ID:       fmt.Sprintf("entry-%d", at.UnixNano()),
		Date:     at.UTC().Format(models.DateLayout),
		MealType: models.MealLunch,
		Analysis: SampleAnalysis("雞肉飯", calories),
	}
}

// SampleLog returns one entry per day for the given number of days ending
// at end.
func SampleLog(end time.Time, days int) []models.FoodEntry {
	out := make([]models.FoodEntry, 0, days)
	for i := days - 1; i >= 0; i-- {
		out = append(out, SampleEntry(end.AddDate(0, 0, -i), 600))
	}
	return out
}
