package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/nutrition"
	"github.com/pageza/nutrilog/backend/internal/store"
	"github.com/pageza/nutrilog/backend/internal/types"
)

// HealthService serves the aggregated views of the food log and the
// long-term risk assessment.
type HealthService struct {
	state  *store.State
	ai     IAIService
	tasks  ITaskRunner
	logger zerolog.Logger
	clock  func() time.Time
}

var _ IHealthService = (*HealthService)(nil)

func NewHealthService(state *store.State, ai IAIService, tasks ITaskRunner, logger zerolog.Logger) *HealthService {
	return &HealthService{
		state:  state,
		ai:     ai,
		tasks:  tasks,
		logger: logger.With().Str("component", "health").Logger(),
		clock:  time.Now,
	}
}

type progressRow struct {
	nutrient string
	label    string
	unit     string
	current  func(models.DailyTotals) float64
	target   func(models.IntakeTargets) float64
}

var progressRows = []progressRow{
	{"calories", "總熱量", "大卡",
		func(t models.DailyTotals) float64 { return t.Calories },
		func(t models.IntakeTargets) float64 { return t.Calories }},
	{"carbohydrates", "碳水化合物", "克",
		func(t models.DailyTotals) float64 { return t.Carbohydrates },
		func(t models.IntakeTargets) float64 { return t.Carbohydrates }},
	{"protein", "蛋白質", "克",
		func(t models.DailyTotals) float64 { return t.Protein },
		func(t models.IntakeTargets) float64 { return t.Protein }},
	{"fat", "脂肪", "克",
		func(t models.DailyTotals) float64 { return t.Fat },
		func(t models.IntakeTargets) float64 { return t.Fat }},
	{"fiber", "膳食纖維", "克",
		func(t models.DailyTotals) float64 { return t.Fiber },
		func(t models.IntakeTargets) float64 { return t.Fiber }},
	{"vitaminC", "維生素C", "毫克",
		func(t models.DailyTotals) float64 { return t.VitaminC },
		func(t models.IntakeTargets) float64 { return t.VitaminC }},
	{"calcium", "鈣質", "毫克",
		func(t models.DailyTotals) float64 { return t.Calcium },
		func(t models.IntakeTargets) float64 { return t.Calcium }},
}

// Today sums the entries of the current UTC day. Targets and progress are
// only filled in once a profile exists.
func (s *HealthService) Today(ctx context.Context) (*types.TodaySummary, error) {
	day := s.clock().UTC().Format(time.DateOnly)
	data := s.state.Snapshot()

	out := &types.TodaySummary{
		Date:   day,
		Totals: nutrition.AggregateTotals(data.FoodLog, day),
	}
	if data.Profile == nil {
		return out, nil
	}

	targets := nutrition.RecommendedIntake(data.Profile.TDEE, data.Profile.HealthGoal)
	out.Targets = &targets
	out.Progress = make([]types.NutrientProgress, 0, len(progressRows))
	for _, row := range progressRows {
		current, target := row.current(out.Totals), row.target(targets)
		out.Progress = append(out.Progress, types.NutrientProgress{
			Nutrient: row.nutrient,
			Label:    row.label,
			Unit:     row.unit,
			Current:  current,
			Target:   target,
			Percent:  nutrition.ProgressPercent(current, target),
		})
	}
	return out, nil
}

// Average returns the average daily totals over the whole log.
func (s *HealthService) Average(ctx context.Context) (*types.AverageSummary, error) {
	avg, days := nutrition.AverageDailyTotals(s.state.Entries())
	return &types.AverageSummary{Average: avg, Days: days}, nil
}

// StartRiskAssessment starts a risk assessment task. It needs a profile and
// at least MinRiskAssessmentDays distinct logged days.
func (s *HealthService) StartRiskAssessment(ctx context.Context) (*types.TaskResponse, error) {
	data := s.state.Snapshot()
	if data.Profile == nil {
		return nil, ErrProfileRequired
	}

	avg, days := nutrition.AverageDailyTotals(data.FoodLog)
	if days < MinRiskAssessmentDays {
		return nil, &InsufficientHistoryError{Days: days, Required: MinRiskAssessmentDays}
	}

	profile, average := *data.Profile, *avg
	s.logger.Debug().Int("days", days).Msg("starting risk assessment")
	return s.tasks.Start(types.TaskRiskAssessment, func(ctx context.Context) (any, error) {
		return s.ai.AssessHealthRisk(ctx, profile, average)
	})
}
