package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/nutrilog/backend/internal/models"
)

func validEntry(id string) models.FoodEntry {
	return models.FoodEntry{
		ID:       id,
		Date:     "2025-05-01T12:30:00.000Z",
		MealType: models.MealLunch,
		Analysis: models.AnalysisResult{FoodName: "牛肉麵", TotalCalories: 650},
	}
}

func TestValidateUserData(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		assert.NoError(t, ValidateUserData(models.NewUserData()))
	})

	t.Run("valid document", func(t *testing.T) {
		d := models.UserData{
			Profile: &models.Profile{ProfileInput: models.ProfileInput{
				Age: 30, Gender: models.GenderMale, Height: 175, Weight: 70,
				ActivityLevel: models.ActivityModerate, HealthGoal: models.GoalMaintenance,
			}},
			FoodLog: []models.FoodEntry{validEntry("a"), validEntry("b")},
		}
		assert.NoError(t, ValidateUserData(d))
	})

	t.Run("reports nested fields", func(t *testing.T) {
		bad := validEntry("a")
		bad.Date = "yesterday"
		bad.MealType = "brunch"
		d := models.UserData{
			Profile: &models.Profile{ProfileInput: models.ProfileInput{
				Age: 30, Gender: models.GenderMale, Height: 175, Weight: 70,
				ActivityLevel: 1.3, HealthGoal: models.GoalMaintenance,
			}},
			FoodLog: []models.FoodEntry{bad, validEntry("a"), {}},
		}

		err := ValidateUserData(d)
		assert.ElementsMatch(t, []string{
			"profile.activityLevel",
			"foodLog[0].date",
			"foodLog[0].mealType",
			"foodLog[1].id",
			"foodLog[2].id",
			"foodLog[2].date",
			"foodLog[2].mealType",
			"foodLog[2].analysis.foodName",
		}, fieldsOf(t, err))
	})
}
