package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subtrack/internal/common"
	"subtrack/internal/models"
	"subtrack/internal/pricing"
	"subtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionInput carries the writable fields of a new subscription.
// Derived amounts (final amount, commission amount) are computed here, never
// accepted from the caller. Prices are pointers so an absent field is
// rejected rather than read as zero.
type CreateSubscriptionInput struct {
	CustomerID       uuid.UUID        `json:"customer_id"`
	ResellerID       *uuid.UUID       `json:"reseller_id"`
	SoftwareID       uuid.UUID        `json:"software_id"`
	PlanType         *string          `json:"plan_type"`
	PurchasePrice    *decimal.Decimal `json:"purchase_price"`
	SalesPrice       *decimal.Decimal `json:"sales_price"`
	CommissionRate   *decimal.Decimal `json:"commission_rate"`
	GSTIncluded      bool             `json:"gst_included"`
	TDSDeducted      bool             `json:"tds_deducted"`
	StartDate        time.Time        `json:"start_date"`
	ExpiryDate       time.Time        `json:"expiry_date"`
	RenewalFrequency string           `json:"renewal_frequency"`
	Status           string           `json:"status"`
	Notes            *string          `json:"notes"`
}

// UpdateSubscriptionInput is a partial update: nil fields keep their stored
// value. If any pricing input (sales price, GST flag, TDS flag, commission
// rate) is present, the derived amounts are recomputed from the merged state.
type UpdateSubscriptionInput struct {
	CustomerID       *uuid.UUID       `json:"customer_id"`
	ResellerID       *uuid.UUID       `json:"reseller_id"`
	SoftwareID       *uuid.UUID       `json:"software_id"`
	PlanType         *string          `json:"plan_type"`
	PurchasePrice    *decimal.Decimal `json:"purchase_price"`
	SalesPrice       *decimal.Decimal `json:"sales_price"`
	CommissionRate   *decimal.Decimal `json:"commission_rate"`
	GSTIncluded      *bool            `json:"gst_included"`
	TDSDeducted      *bool            `json:"tds_deducted"`
	StartDate        *time.Time       `json:"start_date"`
	ExpiryDate       *time.Time       `json:"expiry_date"`
	RenewalFrequency *string          `json:"renewal_frequency"`
	Status           *string          `json:"status"`
	Notes            *string          `json:"notes"`
}

type SubscriptionService interface {
	CreateSubscription(ctx context.Context, input CreateSubscriptionInput, createdBy uuid.UUID) (*models.SubscriptionWithDetails, error)
	GetSubscription(ctx context.Context, id uuid.UUID) (*models.SubscriptionWithDetails, error)
	UpdateSubscription(ctx context.Context, id uuid.UUID, input UpdateSubscriptionInput) (*models.SubscriptionWithDetails, error)
	DeleteSubscription(ctx context.Context, id uuid.UUID) error
	ListSubscriptions(ctx context.Context, status string, limit, offset int) ([]*models.SubscriptionWithDetails, error)
	// ListExpiring returns active subscriptions expiring within the given
	// number of days from now, soonest first.
	ListExpiring(ctx context.Context, days int) ([]*models.SubscriptionWithDetails, error)
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	resellerRepo     repositories.ResellerRepository
	now              func() time.Time
}

func NewSubscriptionService(subscriptionRepo repositories.SubscriptionRepository, resellerRepo repositories.ResellerRepository) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		resellerRepo:     resellerRepo,
		now:              time.Now,
	}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, input CreateSubscriptionInput, createdBy uuid.UUID) (*models.SubscriptionWithDetails, error) {
	if input.CustomerID == uuid.Nil {
		return nil, &common.ValidationError{Field: "customer_id", Message: "customer_id is required"}
	}
	if input.SoftwareID == uuid.Nil {
		return nil, &common.ValidationError{Field: "software_id", Message: "software_id is required"}
	}
	// A price left out of the payload is an error, never an implicit zero.
	if input.SalesPrice == nil {
		return nil, &common.ValidationError{Field: "sales_price", Message: "sales_price is required"}
	}
	if input.PurchasePrice == nil {
		return nil, &common.ValidationError{Field: "purchase_price", Message: "purchase_price is required"}
	}
	if input.SalesPrice.IsNegative() || input.PurchasePrice.IsNegative() {
		return nil, &common.ValidationError{Field: "sales_price", Message: "prices must not be negative"}
	}
	if err := common.ValidateDateOrder(input.StartDate, input.ExpiryDate); err != nil {
		return nil, err
	}
	if input.RenewalFrequency == "" {
		input.RenewalFrequency = models.FrequencyAnnual
	}
	if !models.ValidFrequency(input.RenewalFrequency) {
		return nil, &common.ValidationError{Field: "renewal_frequency", Message: "unknown renewal frequency"}
	}
	if input.Status == "" {
		input.Status = models.StatusActive
	}
	if !models.ValidStatus(input.Status) {
		return nil, &common.ValidationError{Field: "status", Message: "unknown status"}
	}

	rate, err := s.resolveCommissionRate(ctx, input.ResellerID, input.CommissionRate)
	if err != nil {
		return nil, err
	}

	sub := &models.Subscription{
		ID:               uuid.New(),
		CustomerID:       input.CustomerID,
		ResellerID:       input.ResellerID,
		SoftwareID:       input.SoftwareID,
		PlanType:         input.PlanType,
		PurchasePrice:    input.PurchasePrice.Round(2),
		SalesPrice:       input.SalesPrice.Round(2),
		CommissionRate:   rate,
		CommissionAmount: pricing.CommissionAmount(*input.SalesPrice, rate),
		GSTIncluded:      input.GSTIncluded,
		TDSDeducted:      input.TDSDeducted,
		FinalAmount:      pricing.FinalAmount(*input.SalesPrice, input.GSTIncluded, input.TDSDeducted),
		StartDate:        input.StartDate,
		ExpiryDate:       input.ExpiryDate,
		RenewalFrequency: input.RenewalFrequency,
		Status:           input.Status,
		Notes:            input.Notes,
		CreatedBy:        &createdBy,
	}

	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return s.GetSubscription(ctx, sub.ID)
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*models.SubscriptionWithDetails, error) {
	detail, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	detail.Status = detail.EffectiveStatus(s.now())
	return detail, nil
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, id uuid.UUID, input UpdateSubscriptionInput) (*models.SubscriptionWithDetails, error) {
	detail, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	sub := detail.Subscription

	if input.CustomerID != nil {
		sub.CustomerID = *input.CustomerID
	}
	if input.ResellerID != nil {
		sub.ResellerID = input.ResellerID
	}
	if input.SoftwareID != nil {
		sub.SoftwareID = *input.SoftwareID
	}
	if input.PlanType != nil {
		sub.PlanType = input.PlanType
	}
	if input.PurchasePrice != nil {
		if input.PurchasePrice.IsNegative() {
			return nil, &common.ValidationError{Field: "purchase_price", Message: "prices must not be negative"}
		}
		sub.PurchasePrice = input.PurchasePrice.Round(2)
	}
	if input.SalesPrice != nil {
		if input.SalesPrice.IsNegative() {
			return nil, &common.ValidationError{Field: "sales_price", Message: "prices must not be negative"}
		}
		sub.SalesPrice = input.SalesPrice.Round(2)
	}
	if input.CommissionRate != nil {
		if err := common.ValidateCommissionRate(*input.CommissionRate, "commission_rate"); err != nil {
			return nil, err
		}
		sub.CommissionRate = *input.CommissionRate
	}
	if input.GSTIncluded != nil {
		sub.GSTIncluded = *input.GSTIncluded
	}
	if input.TDSDeducted != nil {
		sub.TDSDeducted = *input.TDSDeducted
	}
	if input.StartDate != nil {
		sub.StartDate = *input.StartDate
	}
	if input.ExpiryDate != nil {
		sub.ExpiryDate = *input.ExpiryDate
	}
	if err := common.ValidateDateOrder(sub.StartDate, sub.ExpiryDate); err != nil {
		return nil, err
	}
	if input.RenewalFrequency != nil {
		if !models.ValidFrequency(*input.RenewalFrequency) {
			return nil, &common.ValidationError{Field: "renewal_frequency", Message: "unknown renewal frequency"}
		}
		sub.RenewalFrequency = *input.RenewalFrequency
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, &common.ValidationError{Field: "status", Message: "unknown status"}
		}
		sub.Status = *input.Status
	}
	if input.Notes != nil {
		sub.Notes = input.Notes
	}

	if input.SalesPrice != nil || input.CommissionRate != nil || input.GSTIncluded != nil || input.TDSDeducted != nil {
		sub.CommissionAmount = pricing.CommissionAmount(sub.SalesPrice, sub.CommissionRate)
		sub.FinalAmount = pricing.FinalAmount(sub.SalesPrice, sub.GSTIncluded, sub.TDSDeducted)
	}

	if err := s.subscriptionRepo.Update(ctx, &sub); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return s.GetSubscription(ctx, id)
}

func (s *subscriptionService) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	if err := s.subscriptionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrRestricted) {
			return err
		}
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, status string, limit, offset int) ([]*models.SubscriptionWithDetails, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)

	var (
		items []*models.SubscriptionWithDetails
		err   error
	)
	if status != "" {
		if !models.ValidStatus(status) {
			return nil, &common.ValidationError{Field: "status", Message: "unknown status"}
		}
		items, err = s.subscriptionRepo.ListByStatus(ctx, status, limit, offset)
	} else {
		items, err = s.subscriptionRepo.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	now := s.now()
	for _, item := range items {
		item.Status = item.EffectiveStatus(now)
	}
	return items, nil
}

func (s *subscriptionService) ListExpiring(ctx context.Context, days int) ([]*models.SubscriptionWithDetails, error) {
	if days < 0 {
		return nil, &common.ValidationError{Field: "days", Message: "days must not be negative"}
	}
	now := s.now()
	cutoff := now.AddDate(0, 0, days)

	items, err := s.subscriptionRepo.ListExpiring(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring subscriptions: %w", err)
	}
	for _, item := range items {
		item.Status = item.EffectiveStatus(now)
	}
	return items, nil
}

// resolveCommissionRate picks the explicit rate when given, otherwise falls
// back to the reseller's default. Direct sales carry a zero rate.
func (s *subscriptionService) resolveCommissionRate(ctx context.Context, resellerID *uuid.UUID, rate *decimal.Decimal) (decimal.Decimal, error) {
	if rate != nil {
		if err := common.ValidateCommissionRate(*rate, "commission_rate"); err != nil {
			return decimal.Decimal{}, err
		}
		return *rate, nil
	}
	if resellerID == nil {
		return decimal.Zero, nil
	}
	reseller, err := s.resellerRepo.GetByID(ctx, *resellerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return decimal.Decimal{}, &common.ValidationError{Field: "reseller_id", Message: "reseller does not exist"}
		}
		return decimal.Decimal{}, fmt.Errorf("failed to load reseller: %w", err)
	}
	return reseller.DefaultCommissionRate, nil
}
