// Package analytics computes the dashboard summary numbers. Every request
// recomputes from the store; nothing here is cached or incrementally
// maintained, so the numbers are only as stale as the last committed write.
package analytics

import (
	"context"
	"time"

	"subtrack/internal/models"
	"subtrack/internal/repositories"

	"github.com/shopspring/decimal"
)

// DashboardMetrics is the payload for GET /api/dashboard/metrics.
type DashboardMetrics struct {
	ActiveSubscriptions int64           `json:"activeSubscriptions"`
	ExpiringSoon        int64           `json:"expiringSoon"`
	MonthlyRevenue      decimal.Decimal `json:"monthlyRevenue"`
	MonthlyProfit       decimal.Decimal `json:"monthlyProfit"`
}

// AnalyticsService computes dashboard metrics over the subscription
// collection.
type AnalyticsService interface {
	GetDashboardMetrics(ctx context.Context) (*DashboardMetrics, error)
}

type analyticsService struct {
	subscriptionRepo repositories.SubscriptionRepository
	now              func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService instance.
func NewAnalyticsService(subscriptionRepo repositories.SubscriptionRepository) AnalyticsService {
	return &analyticsService{
		subscriptionRepo: subscriptionRepo,
		now:              time.Now,
	}
}

// GetDashboardMetrics computes the four dashboard numbers in one read pass:
//   - activeSubscriptions: count of status 'active'
//   - expiringSoon: active subscriptions expiring within 30 days, both
//     bounds inclusive
//   - monthlyRevenue / monthlyProfit: sums over subscriptions created in the
//     current calendar month (first through last day, server-local)
//
// The four reads are independent; skew between them during concurrent writes
// is accepted.
func (s *analyticsService) GetDashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	now := s.now()

	active, err := s.subscriptionRepo.CountByStatus(ctx, models.StatusActive)
	if err != nil {
		return nil, err
	}

	expiring, err := s.subscriptionRepo.CountExpiringBetween(ctx, now, now.AddDate(0, 0, models.ExpiringWindowDays))
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	revenue, profit, err := s.subscriptionRepo.MonthlyTotals(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return &DashboardMetrics{
		ActiveSubscriptions: active,
		ExpiringSoon:        expiring,
		MonthlyRevenue:      revenue,
		MonthlyProfit:       profit,
	}, nil
}
