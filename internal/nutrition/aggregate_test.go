package nutrition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrilog/backend/internal/models"
)

func entry(date string, calories float64, comps ...models.Nutrients) models.FoodEntry {
	e := models.FoodEntry{
		ID:       date,
		Date:     date,
		MealType: models.MealLunch,
		Analysis: models.AnalysisResult{FoodName: "meal", TotalCalories: calories},
	}
	for i, n := range comps {
		e.Analysis.MainComponents = append(e.Analysis.MainComponents, models.FoodComponent{
			Name:      fmt.Sprintf("c%d", i),
			Nutrients: n,
		})
	}
	return e
}

var (
	rice    = models.Nutrients{Protein: 4, Carbohydrates: 45, Fat: 0.5, Fiber: 1, Sodium: 2, VitaminC: 0, Calcium: 10}
	chicken = models.Nutrients{Protein: 31, Carbohydrates: 0, Fat: 3.6, Fiber: 0, Sodium: 74, VitaminC: 0, Calcium: 15}
	salad   = models.Nutrients{Protein: 1.5, Carbohydrates: 6, Fat: 0.2, Fiber: 2.5, Sodium: 30, VitaminC: 25, Calcium: 40}
)

func TestAggregateTotals(t *testing.T) {
	t.Run("empty log is all zero", func(t *testing.T) {
		assert.Equal(t, models.DailyTotals{}, AggregateTotals(nil, ""))
		assert.Equal(t, models.DailyTotals{}, AggregateTotals([]models.FoodEntry{}, "2025-01-01"))
	})

	t.Run("sums calories from the meal and nutrients from components", func(t *testing.T) {
		got := AggregateTotals([]models.FoodEntry{
			entry("2025-01-01T08:00:00.000Z", 500, rice, chicken),
			entry("2025-01-01T19:00:00.000Z", 120, salad),
		}, "")

		assert.InDelta(t, 620, got.Calories, 1e-9)
		assert.InDelta(t, 36.5, got.Protein, 1e-9)
		assert.InDelta(t, 51, got.Carbohydrates, 1e-9)
		assert.InDelta(t, 4.3, got.Fat, 1e-9)
		assert.InDelta(t, 3.5, got.Fiber, 1e-9)
		assert.InDelta(t, 106, got.Sodium, 1e-9)
		assert.InDelta(t, 25, got.VitaminC, 1e-9)
		assert.InDelta(t, 65, got.Calcium, 1e-9)
	})

	t.Run("filters by day prefix", func(t *testing.T) {
		log := []models.FoodEntry{
			entry("2025-01-01T08:00:00.000Z", 500, rice),
			entry("2025-01-02T08:00:00.000Z", 300, chicken),
			entry("2025-01-02T21:30:00.000Z", 100, salad),
		}
		got := AggregateTotals(log, "2025-01-02")
		assert.InDelta(t, 400, got.Calories, 1e-9)
		assert.InDelta(t, 32.5, got.Protein, 1e-9)

		assert.Equal(t, models.DailyTotals{}, AggregateTotals(log, "2025-01-03"))
	})

	t.Run("is additive over disjoint logs", func(t *testing.T) {
		a := []models.FoodEntry{
			entry("2025-01-01T08:00:00.000Z", 500, rice, chicken),
			entry("2025-01-02T08:00:00.000Z", 250, salad, salad),
		}
		b := []models.FoodEntry{
			entry("2025-01-03T08:00:00.000Z", 700, chicken, rice, salad),
		}
		union := append(append([]models.FoodEntry{}, a...), b...)

		want := AggregateTotals(a, "").Plus(AggregateTotals(b, ""))
		got := AggregateTotals(union, "")
		assert.InDelta(t, want.Calories, got.Calories, 1e-9)
		assert.InDelta(t, want.Protein, got.Protein, 1e-9)
		assert.InDelta(t, want.Carbohydrates, got.Carbohydrates, 1e-9)
		assert.InDelta(t, want.Fat, got.Fat, 1e-9)
		assert.InDelta(t, want.Fiber, got.Fiber, 1e-9)
		assert.InDelta(t, want.Sodium, got.Sodium, 1e-9)
		assert.InDelta(t, want.VitaminC, got.VitaminC, 1e-9)
		assert.InDelta(t, want.Calcium, got.Calcium, 1e-9)
	})
}

func TestAverageDailyTotals(t *testing.T) {
	t.Run("empty log", func(t *testing.T) {
		avg, days := AverageDailyTotals(nil)
		assert.Nil(t, avg)
		assert.Equal(t, 0, days)
	})

	t.Run("divides the full sum by distinct days", func(t *testing.T) {
		var log []models.FoodEntry
		for i := 0; i < 10; i++ {
			log = append(log, entry(fmt.Sprintf("2025-03-01T%02d:00:00.000Z", i+8), 100, rice))
		}
		log = append(log, entry("2025-03-02T12:00:00.000Z", 900, chicken))

		avg, days := AverageDailyTotals(log)
		require.NotNil(t, avg)
		assert.Equal(t, 2, days)

		// (10*100 + 900) / 2, not the mean of 1000 and 900 per entry count
		assert.InDelta(t, 950, avg.Calories, 1e-9)
		assert.InDelta(t, (10*rice.Protein+chicken.Protein)/2, avg.Protein, 1e-9)
		assert.InDelta(t, (10*rice.Carbohydrates)/2, avg.Carbohydrates, 1e-9)
		assert.InDelta(t, (10*rice.Sodium+chicken.Sodium)/2, avg.Sodium, 1e-9)
	})

	t.Run("single day equals the total", func(t *testing.T) {
		log := []models.FoodEntry{
			entry("2025-03-01T08:00:00.000Z", 300, rice),
			entry("2025-03-01T12:00:00.000Z", 400, chicken),
		}
		avg, days := AverageDailyTotals(log)
		require.NotNil(t, avg)
		assert.Equal(t, 1, days)
		assert.Equal(t, AggregateTotals(log, ""), *avg)
	})

	t.Run("dates without a time part count as their own day", func(t *testing.T) {
		log := []models.FoodEntry{
			entry("2025-03-01", 300),
			entry("2025-03-01T12:00:00.000Z", 300),
			entry("2025-03-02", 300),
		}
		_, days := AverageDailyTotals(log)
		assert.Equal(t, 2, days)
	})
}

func TestDistinctDays(t *testing.T) {
	log := []models.FoodEntry{
		entry("2025-03-01T08:00:00.000Z", 0),
		entry("2025-03-03T08:00:00.000Z", 0),
		entry("2025-03-01T23:59:59.999Z", 0),
	}
	assert.Equal(t, 2, DistinctDays(log))
	assert.Equal(t, 0, DistinctDays(nil))
}

func TestProgressPercent(t *testing.T) {
	assert.InDelta(t, 50, ProgressPercent(50, 100), 1e-9)
	assert.Equal(t, 100.0, ProgressPercent(250, 100))
	assert.Equal(t, 0.0, ProgressPercent(10, 0))
}
