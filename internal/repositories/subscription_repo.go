package repositories

import (
	"context"
	"encoding/json"
	"time"

	"subtrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionWithDetails, error)
	Update(ctx context.Context, subscription *models.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.SubscriptionWithDetails, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.SubscriptionWithDetails, error)
	// ListExpiring returns active subscriptions whose expiry date falls on or
	// before the cutoff, soonest first. The stored status column alone is not
	// trusted for "expiring"; the expiry comparison is part of the query.
	ListExpiring(ctx context.Context, cutoff time.Time) ([]*models.SubscriptionWithDetails, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error

	// Aggregates for the dashboard.
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountExpiringBetween(ctx context.Context, from, to time.Time) (int64, error)
	MonthlyTotals(ctx context.Context, from, to time.Time) (revenue, profit decimal.Decimal, err error)
}

type subscriptionRepo struct {
	db DB
}

func NewSubscriptionRepository(db DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

const subscriptionColumns = `s.id, s.customer_id, s.reseller_id, s.software_id, s.plan_type,
		s.purchase_price, s.sales_price, s.commission_rate, s.commission_amount,
		s.gst_included, s.tds_deducted, s.final_amount,
		s.start_date, s.expiry_date, s.renewal_frequency, s.status,
		s.reminder_sent, s.last_reminder_date, s.notes, s.created_by, s.created_at, s.updated_at`

const detailColumns = subscriptionColumns + `,
		c.id, c.name, c.email, c.phone, c.company, c.address, c.gst_number, c.contact_person, c.notes, c.created_at, c.updated_at,
		r.id, r.name, r.email, r.phone, r.company, r.address, r.default_commission_rate, r.pan_number, r.bank_details, r.is_active, r.created_at, r.updated_at,
		w.id, w.name, w.brand, w.category, w.description, w.icon_url, w.is_active, w.created_at`

const detailJoins = `
		FROM subscriptions s
		JOIN customers c ON c.id = s.customer_id
		LEFT JOIN resellers r ON r.id = s.reseller_id
		JOIN software_catalog w ON w.id = s.software_id`

func (r *subscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, customer_id, reseller_id, software_id, plan_type,
			purchase_price, sales_price, commission_rate, commission_amount,
			gst_included, tds_deducted, final_amount,
			start_date, expiry_date, renewal_frequency, status,
			reminder_sent, last_reminder_date, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		subscription.ID, subscription.CustomerID, subscription.ResellerID, subscription.SoftwareID,
		subscription.PlanType, subscription.PurchasePrice, subscription.SalesPrice,
		subscription.CommissionRate, subscription.CommissionAmount,
		subscription.GSTIncluded, subscription.TDSDeducted, subscription.FinalAmount,
		subscription.StartDate, subscription.ExpiryDate, subscription.RenewalFrequency,
		subscription.Status, subscription.ReminderSent, subscription.LastReminderDate,
		subscription.Notes, subscription.CreatedBy)
	return translateError(err)
}

func (r *subscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionWithDetails, error) {
	query := `SELECT ` + detailColumns + detailJoins + ` WHERE s.id = $1`
	row := r.db.QueryRow(ctx, query, id)
	detail, err := scanSubscriptionDetail(row)
	if err != nil {
		return nil, translateError(err)
	}
	return detail, nil
}

func (r *subscriptionRepo) Update(ctx context.Context, subscription *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET customer_id = $1, reseller_id = $2, software_id = $3, plan_type = $4,
			purchase_price = $5, sales_price = $6, commission_rate = $7, commission_amount = $8,
			gst_included = $9, tds_deducted = $10, final_amount = $11,
			start_date = $12, expiry_date = $13, renewal_frequency = $14, status = $15,
			reminder_sent = $16, last_reminder_date = $17, notes = $18, updated_at = NOW()
		WHERE id = $19
	`
	tag, err := r.db.Exec(ctx, query,
		subscription.CustomerID, subscription.ResellerID, subscription.SoftwareID, subscription.PlanType,
		subscription.PurchasePrice, subscription.SalesPrice, subscription.CommissionRate, subscription.CommissionAmount,
		subscription.GSTIncluded, subscription.TDSDeducted, subscription.FinalAmount,
		subscription.StartDate, subscription.ExpiryDate, subscription.RenewalFrequency, subscription.Status,
		subscription.ReminderSent, subscription.LastReminderDate, subscription.Notes, subscription.ID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *subscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *subscriptionRepo) List(ctx context.Context, limit, offset int) ([]*models.SubscriptionWithDetails, error) {
	query := `SELECT ` + detailColumns + detailJoins + ` ORDER BY s.created_at DESC LIMIT $1 OFFSET $2`
	return r.queryDetails(ctx, query, limit, offset)
}

func (r *subscriptionRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.SubscriptionWithDetails, error) {
	query := `SELECT ` + detailColumns + detailJoins + ` WHERE s.status = $1 ORDER BY s.created_at DESC LIMIT $2 OFFSET $3`
	return r.queryDetails(ctx, query, status, limit, offset)
}

func (r *subscriptionRepo) ListExpiring(ctx context.Context, cutoff time.Time) ([]*models.SubscriptionWithDetails, error) {
	query := `SELECT ` + detailColumns + detailJoins + `
		WHERE s.status = 'active' AND s.expiry_date <= $1
		ORDER BY s.expiry_date ASC`
	return r.queryDetails(ctx, query, cutoff)
}

func (r *subscriptionRepo) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE subscriptions SET reminder_sent = TRUE, last_reminder_date = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *subscriptionRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions WHERE status = $1`, status).Scan(&count)
	return count, translateError(err)
}

func (r *subscriptionRepo) CountExpiringBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM subscriptions WHERE status = 'active' AND expiry_date >= $1 AND expiry_date <= $2`
	err := r.db.QueryRow(ctx, query, from, to).Scan(&count)
	return count, translateError(err)
}

func (r *subscriptionRepo) MonthlyTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var revenue, profit decimal.Decimal
	query := `
		SELECT COALESCE(SUM(sales_price), 0),
		       COALESCE(SUM(sales_price - purchase_price - commission_amount), 0)
		FROM subscriptions
		WHERE created_at >= $1 AND created_at <= $2
	`
	err := r.db.QueryRow(ctx, query, from, to).Scan(&revenue, &profit)
	if err != nil {
		return decimal.Zero, decimal.Zero, translateError(err)
	}
	return revenue, profit, nil
}

func (r *subscriptionRepo) queryDetails(ctx context.Context, query string, args ...any) ([]*models.SubscriptionWithDetails, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	details := []*models.SubscriptionWithDetails{}
	for rows.Next() {
		detail, err := scanSubscriptionDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSubscriptionDetail reads one joined row. The reseller side of the join
// is nullable, so its columns land in temporaries and the embedded struct is
// only materialized for reseller-sold subscriptions.
func scanSubscriptionDetail(row rowScanner) (*models.SubscriptionWithDetails, error) {
	d := &models.SubscriptionWithDetails{}

	var (
		rID        *uuid.UUID
		rName      *string
		rEmail     *string
		rPhone     *string
		rCompany   *string
		rAddress   *string
		rRate      *decimal.Decimal
		rPAN       *string
		rBank      json.RawMessage
		rActive    *bool
		rCreatedAt *time.Time
		rUpdatedAt *time.Time
	)

	err := row.Scan(
		&d.ID, &d.CustomerID, &d.ResellerID, &d.SoftwareID, &d.PlanType,
		&d.PurchasePrice, &d.SalesPrice, &d.CommissionRate, &d.CommissionAmount,
		&d.GSTIncluded, &d.TDSDeducted, &d.FinalAmount,
		&d.StartDate, &d.ExpiryDate, &d.RenewalFrequency, &d.Status,
		&d.ReminderSent, &d.LastReminderDate, &d.Notes, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
		&d.Customer.ID, &d.Customer.Name, &d.Customer.Email, &d.Customer.Phone, &d.Customer.Company,
		&d.Customer.Address, &d.Customer.GSTNumber, &d.Customer.ContactPerson, &d.Customer.Notes,
		&d.Customer.CreatedAt, &d.Customer.UpdatedAt,
		&rID, &rName, &rEmail, &rPhone, &rCompany, &rAddress, &rRate, &rPAN, &rBank, &rActive, &rCreatedAt, &rUpdatedAt,
		&d.Software.ID, &d.Software.Name, &d.Software.Brand, &d.Software.Category,
		&d.Software.Description, &d.Software.IconURL, &d.Software.IsActive, &d.Software.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rID != nil {
		d.Reseller = &models.Reseller{
			ID:          *rID,
			Name:        *rName,
			Email:       *rEmail,
			Phone:       rPhone,
			Company:     rCompany,
			Address:     rAddress,
			PANNumber:   rPAN,
			BankDetails: rBank,
		}
		if rRate != nil {
			d.Reseller.DefaultCommissionRate = *rRate
		}
		if rActive != nil {
			d.Reseller.IsActive = *rActive
		}
		if rCreatedAt != nil {
			d.Reseller.CreatedAt = *rCreatedAt
		}
		if rUpdatedAt != nil {
			d.Reseller.UpdatedAt = *rUpdatedAt
		}
	}

	return d, nil
}
