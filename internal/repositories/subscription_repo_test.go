package repositories

import (
	"context"
	"testing"
	"time"

	"subtrack/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SubscriptionRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    SubscriptionRepository
	subID   uuid.UUID
	context context.Context
}

func (suite *SubscriptionRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewSubscriptionRepository(mock)
	suite.subID = uuid.New()
	suite.context = context.Background()
}

func (suite *SubscriptionRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestSubscriptionRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionRepoTestSuite))
}

func (suite *SubscriptionRepoTestSuite) TestCreate_Success() {
	sub := &models.Subscription{
		ID:               suite.subID,
		CustomerID:       uuid.New(),
		SoftwareID:       uuid.New(),
		PurchasePrice:    decimal.NewFromInt(800),
		SalesPrice:       decimal.NewFromInt(1000),
		CommissionRate:   decimal.NewFromInt(10),
		CommissionAmount: decimal.NewFromInt(100),
		GSTIncluded:      true,
		FinalAmount:      decimal.RequireFromString("1180"),
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RenewalFrequency: models.FrequencyAnnual,
		Status:           models.StatusActive,
	}

	suite.mock.ExpectExec(`INSERT INTO subscriptions`).
		WithArgs(sub.ID, sub.CustomerID, sub.ResellerID, sub.SoftwareID, sub.PlanType,
			sub.PurchasePrice, sub.SalesPrice, sub.CommissionRate, sub.CommissionAmount,
			sub.GSTIncluded, sub.TDSDeducted, sub.FinalAmount,
			sub.StartDate, sub.ExpiryDate, sub.RenewalFrequency, sub.Status,
			sub.ReminderSent, sub.LastReminderDate, sub.Notes, sub.CreatedBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, sub)
	assert.NoError(suite.T(), err)
}

func (suite *SubscriptionRepoTestSuite) TestCountByStatus() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM subscriptions WHERE status = \$1`).
		WithArgs(models.StatusActive).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := suite.repo.CountByStatus(suite.context, models.StatusActive)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), count)
}

func (suite *SubscriptionRepoTestSuite) TestCountExpiringBetween_BoundsInclusive() {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	suite.mock.ExpectQuery(`expiry_date >= \$1 AND expiry_date <= \$2`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := suite.repo.CountExpiringBetween(suite.context, from, to)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), count)
}

func (suite *SubscriptionRepoTestSuite) TestMonthlyTotals() {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.Local)

	suite.mock.ExpectQuery(`COALESCE\(SUM\(sales_price\), 0\)`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"revenue", "profit"}).
			AddRow(decimal.RequireFromString("4500.50"), decimal.RequireFromString("1200.25")))

	revenue, profit, err := suite.repo.MonthlyTotals(suite.context, from, to)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), revenue.Equal(decimal.RequireFromString("4500.50")))
	assert.True(suite.T(), profit.Equal(decimal.RequireFromString("1200.25")))
}

func (suite *SubscriptionRepoTestSuite) TestListExpiring_QueriesActiveSoonestFirst() {
	cutoff := time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`WHERE s\.status = 'active' AND s\.expiry_date <= \$1\s+ORDER BY s\.expiry_date ASC`).
		WithArgs(cutoff).
		WillReturnRows(detailRows())

	details, err := suite.repo.ListExpiring(suite.context, cutoff)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), details, 1)
	assert.Equal(suite.T(), "Acme Traders", details[0].Customer.Name)
	assert.Nil(suite.T(), details[0].Reseller)
}

func (suite *SubscriptionRepoTestSuite) TestMarkReminderSent() {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	suite.mock.ExpectExec(`UPDATE subscriptions SET reminder_sent = TRUE`).
		WithArgs(at, suite.subID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.MarkReminderSent(suite.context, suite.subID, at)
	assert.NoError(suite.T(), err)
}

// detailRows builds one joined row for a direct (reseller-less) sale.
func detailRows() *pgxmock.Rows {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	subID := uuid.New()
	customerID := uuid.New()
	softwareID := uuid.New()

	columns := []string{
		"id", "customer_id", "reseller_id", "software_id", "plan_type",
		"purchase_price", "sales_price", "commission_rate", "commission_amount",
		"gst_included", "tds_deducted", "final_amount",
		"start_date", "expiry_date", "renewal_frequency", "status",
		"reminder_sent", "last_reminder_date", "notes", "created_by", "created_at", "updated_at",
		"c_id", "c_name", "c_email", "c_phone", "c_company", "c_address", "c_gst_number",
		"c_contact_person", "c_notes", "c_created_at", "c_updated_at",
		"r_id", "r_name", "r_email", "r_phone", "r_company", "r_address",
		"r_default_commission_rate", "r_pan_number", "r_bank_details", "r_is_active",
		"r_created_at", "r_updated_at",
		"w_id", "w_name", "w_brand", "w_category", "w_description", "w_icon_url",
		"w_is_active", "w_created_at",
	}

	return pgxmock.NewRows(columns).AddRow(
		subID, customerID, nil, softwareID, nil,
		decimal.NewFromInt(800), decimal.NewFromInt(1000), decimal.Zero, decimal.Zero,
		false, false, decimal.NewFromInt(1000),
		now, now.AddDate(0, 1, 0), models.FrequencyMonthly, models.StatusActive,
		false, nil, nil, nil, now, now,
		customerID, "Acme Traders", "accounts@acme.example", nil, nil, nil, nil,
		nil, nil, now, now,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil,
		softwareID, "Tally Prime", "Tally", nil, nil, nil,
		true, now,
	)
}
