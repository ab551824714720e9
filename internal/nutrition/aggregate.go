package nutrition

import (
	"math"
	"strings"

	"github.com/pageza/nutrilog/backend/internal/models"
)

// DayOf returns the calendar-day part of an ISO timestamp, i.e. everything
// before the first 'T'.
func DayOf(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}

// AggregateTotals sums the log. When day is non-empty only entries whose
// date starts with day (YYYY-MM-DD) are counted. Calories come from the
// meal total, every other field from the components.
func AggregateTotals(entries []models.FoodEntry, day string) models.DailyTotals {
	var totals models.DailyTotals
	for _, entry := range entries {
		if day != "" && !strings.HasPrefix(entry.Date, day) {
			continue
		}
		totals.Calories += entry.Analysis.TotalCalories
		for _, comp := range entry.Analysis.MainComponents {
			n := comp.Nutrients
			totals.Protein += n.Protein
			totals.Carbohydrates += n.Carbohydrates
			totals.Fat += n.Fat
			totals.Fiber += n.Fiber
			totals.VitaminC += n.VitaminC
			totals.Calcium += n.Calcium
			totals.Sodium += n.Sodium
		}
	}
	return totals
}

// DistinctDays counts the distinct calendar days present in the log.
func DistinctDays(entries []models.FoodEntry) int {
	days := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		days[DayOf(entry.Date)] = struct{}{}
	}
	return len(days)
}

// AverageDailyTotals divides the whole-log sum by the number of distinct
// logged days. It is not a mean of per-day sums: ten entries on one day and
// one on another give (sum of eleven) / 2. An empty log returns nil, 0.
func AverageDailyTotals(entries []models.FoodEntry) (*models.DailyTotals, int) {
	if len(entries) == 0 {
		return nil, 0
	}
	days := DistinctDays(entries)
	if days == 0 {
		days = 1
	}
	avg := AggregateTotals(entries, "").Div(float64(days))
	return &avg, days
}

// ProgressPercent is current as a percentage of goal, capped at 100. A
// non-positive goal yields 0.
func ProgressPercent(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(current/goal*100, 100)
}
