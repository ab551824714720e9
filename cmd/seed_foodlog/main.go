// Command seed_foodlog writes a demo profile and a food log spanning the
// last N days into the configured store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/nutrilog/backend/config"
	"github.com/pageza/nutrilog/backend/internal/database"
	"github.com/pageza/nutrilog/backend/internal/logging"
	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/nutrition"
	"github.com/pageza/nutrilog/backend/internal/store"
)

type meal struct {
	mealType models.MealType
	hour     int
	analysis models.AnalysisResult
}

func component(name string, weight, calories float64, n models.Nutrients) models.FoodComponent {
	return models.FoodComponent{Name: name, Weight: weight, Calories: calories, Nutrients: n}
}

var meals = []meal{
	{models.MealBreakfast, 7, models.AnalysisResult{
		FoodName: "燕麥優格碗",
		MainComponents: []models.FoodComponent{
			component("燕麥", 50, 190, models.Nutrients{Protein: 6.5, Carbohydrates: 33, Fat: 3.4, Fiber: 5, Sodium: 1, Calcium: 27}),
			component("希臘優格", 150, 146, models.Nutrients{Protein: 15, Carbohydrates: 6, Fat: 7, Sodium: 54, Calcium: 165}),
			component("藍莓", 80, 46, models.Nutrients{Protein: 0.6, Carbohydrates: 11.6, Fat: 0.3, Fiber: 1.9, Sodium: 1, VitaminC: 7.8, Calcium: 5}),
		},
		TotalCalories: 382,
		NutritionTags: []string{"高纖", "高蛋白"},
		DietaryAdvice: []string{"可加入堅果增加健康脂肪"},
	}},
	{models.MealLunch, 12, models.AnalysisResult{
		FoodName: "雞肉飯便當",
		MainComponents: []models.FoodComponent{
			component("白飯", 200, 260, models.Nutrients{Protein: 5, Carbohydrates: 56, Fat: 0.6, Fiber: 0.8, Sodium: 2, Calcium: 6}),
			component("雞胸肉", 120, 198, models.Nutrients{Protein: 37, Fat: 4.3, Sodium: 89, Calcium: 18}),
			component("燙青菜", 100, 25, models.Nutrients{Protein: 2.4, Carbohydrates: 3.6, Fat: 0.4, Fiber: 2.2, Sodium: 180, VitaminC: 28, Calcium: 99}),
		},
		TotalCalories: 483,
		NutritionTags: []string{"均衡"},
		DietaryAdvice: []string{"注意醬汁的鈉含量"},
	}},
	{models.MealDinner, 19, models.AnalysisResult{
		FoodName: "鮭魚蔬菜盤",
		MainComponents: []models.FoodComponent{
			component("烤鮭魚", 150, 312, models.Nutrients{Protein: 33, Fat: 19.5, Sodium: 88, Calcium: 14}),
			component("地瓜", 150, 129, models.Nutrients{Protein: 2.4, Carbohydrates: 30, Fat: 0.1, Fiber: 4.5, Sodium: 83, VitaminC: 3.6, Calcium: 45}),
			component("花椰菜", 100, 34, models.Nutrients{Protein: 2.8, Carbohydrates: 6.6, Fat: 0.4, Fiber: 2.6, Sodium: 33, VitaminC: 89, Calcium: 47}),
		},
		TotalCalories: 475,
		NutritionTags: []string{"Omega-3", "高蛋白"},
		DietaryAdvice: []string{"晚餐份量適中"},
	}},
}

func main() {
	days := flag.Int("days", 7, "number of days to seed, ending today")
	keepProfile := flag.Bool("keep-profile", false, "keep the stored profile instead of writing the demo one")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	backend, err := database.NewBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	state, err := store.Open(ctx, backend, cfg.StateKey, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load state")
	}
	defer state.Close()

	data := state.Snapshot()
	if !*keepProfile || data.Profile == nil {
		p := nutrition.NewProfile(models.ProfileInput{
			Age:                30,
			Gender:             models.GenderFemale,
			Height:             162,
			Weight:             56,
			ActivityLevel:      models.ActivityLight,
			HealthGoal:         models.GoalMaintenance,
			DietaryPreferences: "喜歡甜食，不吃辣",
			CommonActivities:   "散步、瑜珈",
		})
		data.Profile = &p
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	data.FoodLog = data.FoodLog[:0]
	for d := *days - 1; d >= 0; d-- {
		day := today.AddDate(0, 0, -d)
		for _, m := range meals {
			at := day.Add(time.Duration(m.hour) * time.Hour)
			id, err := uuid.NewV7()
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to generate id")
			}
			data.FoodLog = append(data.FoodLog, models.FoodEntry{
				ID:       id.String(),
				Date:     at.Format(models.DateLayout),
				MealType: m.mealType,
				Analysis: m.analysis,
			})
		}
	}

	if err := state.Replace(ctx, data); err != nil {
		logger.Fatal().Err(err).Msg("failed to write seed data")
	}
	logger.Info().Int("days", *days).Int("entries", len(data.FoodLog)).Msg("seeded food log")
}
