package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/service"
	"github.com/pageza/nutrilog/backend/internal/types"
)

func taskOrNil(args mock.Arguments) (*types.TaskResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TaskResponse), args.Error(1)
}

// MockFoodLogService is a mock implementation of IFoodLogService
type MockFoodLogService struct {
	mock.Mock
}

func (m *MockFoodLogService) StartAnalysis(ctx context.Context, image []byte, mealType models.MealType) (*types.TaskResponse, error) {
	return taskOrNil(m.Called(ctx, image, mealType))
}

func (m *MockFoodLogService) History(ctx context.Context, descending bool, day string) ([]models.FoodEntry, error) {
	args := m.Called(ctx, descending, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FoodEntry), args.Error(1)
}

func (m *MockFoodLogService) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockHealthService is a mock implementation of IHealthService
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Today(ctx context.Context) (*types.TodaySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TodaySummary), args.Error(1)
}

func (m *MockHealthService) Average(ctx context.Context) (*types.AverageSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AverageSummary), args.Error(1)
}

func (m *MockHealthService) StartRiskAssessment(ctx context.Context) (*types.TaskResponse, error) {
	return taskOrNil(m.Called(ctx))
}

// MockRecommendationService is a mock implementation of IRecommendationService
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) StartRecommendation(ctx context.Context) (*types.TaskResponse, error) {
	return taskOrNil(m.Called(ctx))
}

// MockDataService is a mock implementation of IDataService
type MockDataService struct {
	mock.Mock
}

func (m *MockDataService) Export(ctx context.Context) (models.UserData, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.UserData), args.Error(1)
}

func (m *MockDataService) Import(ctx context.Context, data models.UserData) (models.UserData, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(models.UserData), args.Error(1)
}

// MockTaskRunner is a mock implementation of ITaskRunner
type MockTaskRunner struct {
	mock.Mock
}

func (m *MockTaskRunner) Start(kind types.TaskKind, fn service.TaskFunc) (*types.TaskResponse, error) {
	return taskOrNil(m.Called(kind, fn))
}

func (m *MockTaskRunner) Get(id string) (*types.TaskResponse, error) {
	return taskOrNil(m.Called(id))
}

func (m *MockTaskRunner) Wait(ctx context.Context, id string) (*types.TaskResponse, error) {
	return taskOrNil(m.Called(ctx, id))
}

var (
	_ service.IProfileService        = (*MockProfileService)(nil)
	_ service.IFoodLogService        = (*MockFoodLogService)(nil)
	_ service.IHealthService         = (*MockHealthService)(nil)
	_ service.IRecommendationService = (*MockRecommendationService)(nil)
	_ service.IDataService           = (*MockDataService)(nil)
	_ service.ITaskRunner            = (*MockTaskRunner)(nil)
)
