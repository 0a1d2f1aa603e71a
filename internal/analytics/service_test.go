package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"subtrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionWithDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithDetails), args.Error(1)
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, subscription *models.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) List(ctx context.Context, limit, offset int) ([]*models.SubscriptionWithDetails, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.SubscriptionWithDetails), args.Error(1)
}

func (m *MockSubscriptionRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.SubscriptionWithDetails, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]*models.SubscriptionWithDetails), args.Error(1)
}

func (m *MockSubscriptionRepository) ListExpiring(ctx context.Context, cutoff time.Time) ([]*models.SubscriptionWithDetails, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*models.SubscriptionWithDetails), args.Error(1)
}

func (m *MockSubscriptionRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) CountExpiringBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) MonthlyTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

type AnalyticsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSubscriptionRepository
	service  *analyticsService
	now      time.Time
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockSubscriptionRepository{}
	suite.now = time.Date(2025, 3, 15, 10, 30, 0, 0, time.Local)
	suite.service = &analyticsService{
		subscriptionRepo: suite.mockRepo,
		now:              func() time.Time { return suite.now },
	}

	suite.mockRepo.Test(suite.T())
}

func TestAnalyticsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}

func (suite *AnalyticsServiceTestSuite) TestGetDashboardMetrics() {
	monthStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	suite.mockRepo.On("CountByStatus", mock.Anything, models.StatusActive).Return(int64(12), nil)
	suite.mockRepo.On("CountExpiringBetween", mock.Anything, suite.now, suite.now.AddDate(0, 0, 30)).
		Return(int64(4), nil)
	suite.mockRepo.On("MonthlyTotals", mock.Anything, monthStart, monthEnd).
		Return(decimal.RequireFromString("25000"), decimal.RequireFromString("6100.50"), nil)

	metrics, err := suite.service.GetDashboardMetrics(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(12), metrics.ActiveSubscriptions)
	assert.Equal(suite.T(), int64(4), metrics.ExpiringSoon)
	assert.True(suite.T(), metrics.MonthlyRevenue.Equal(decimal.RequireFromString("25000")))
	assert.True(suite.T(), metrics.MonthlyProfit.Equal(decimal.RequireFromString("6100.50")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestGetDashboardMetrics_MonthBoundsCoverWholeMonth() {
	// December: the window must run from Dec 1 00:00 through the last instant
	// of Dec 31, crossing the year boundary correctly.
	suite.now = time.Date(2025, 12, 31, 23, 0, 0, 0, time.Local)

	monthStart := time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local)
	monthEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local).Add(-time.Nanosecond)

	suite.mockRepo.On("CountByStatus", mock.Anything, models.StatusActive).Return(int64(0), nil)
	suite.mockRepo.On("CountExpiringBetween", mock.Anything, suite.now, suite.now.AddDate(0, 0, 30)).
		Return(int64(0), nil)
	suite.mockRepo.On("MonthlyTotals", mock.Anything, monthStart, monthEnd).
		Return(decimal.Zero, decimal.Zero, nil)

	_, err := suite.service.GetDashboardMetrics(context.Background())
	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestGetDashboardMetrics_RepoError() {
	suite.mockRepo.On("CountByStatus", mock.Anything, models.StatusActive).
		Return(int64(0), errors.New("connection refused"))

	metrics, err := suite.service.GetDashboardMetrics(context.Background())
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), metrics)
}
