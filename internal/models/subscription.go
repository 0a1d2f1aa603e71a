package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subscription statuses. The stored column can go stale (nothing transitions
// it in the background), so read paths should use EffectiveStatus.
const (
	StatusActive   = "active"
	StatusExpiring = "expiring"
	StatusOverdue  = "overdue"
	StatusRenewed  = "renewed"
)

// Renewal frequencies. Advisory metadata only; expiry math never reads them.
const (
	FrequencyMonthly    = "monthly"
	FrequencyQuarterly  = "quarterly"
	FrequencyHalfYearly = "half-yearly"
	FrequencyAnnual     = "annual"
	FrequencyCustom     = "custom"
)

// ExpiringWindowDays is the default lookahead for flagging subscriptions
// nearing expiry.
const ExpiringWindowDays = 30

type Subscription struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	CustomerID       uuid.UUID       `json:"customer_id" db:"customer_id"`
	ResellerID       *uuid.UUID      `json:"reseller_id" db:"reseller_id"`
	SoftwareID       uuid.UUID       `json:"software_id" db:"software_id"`
	PlanType         *string         `json:"plan_type" db:"plan_type"`
	PurchasePrice    decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	SalesPrice       decimal.Decimal `json:"sales_price" db:"sales_price"`
	CommissionRate   decimal.Decimal `json:"commission_rate" db:"commission_rate"`
	CommissionAmount decimal.Decimal `json:"commission_amount" db:"commission_amount"`
	GSTIncluded      bool            `json:"gst_included" db:"gst_included"`
	TDSDeducted      bool            `json:"tds_deducted" db:"tds_deducted"`
	FinalAmount      decimal.Decimal `json:"final_amount" db:"final_amount"`
	StartDate        time.Time       `json:"start_date" db:"start_date"`
	ExpiryDate       time.Time       `json:"expiry_date" db:"expiry_date"`
	RenewalFrequency string          `json:"renewal_frequency" db:"renewal_frequency"`
	Status           string          `json:"status" db:"status"`
	ReminderSent     bool            `json:"reminder_sent" db:"reminder_sent"`
	LastReminderDate *time.Time      `json:"last_reminder_date" db:"last_reminder_date"`
	Notes            *string         `json:"notes" db:"notes"`
	CreatedBy        *uuid.UUID      `json:"created_by" db:"created_by"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// SubscriptionWithDetails is the read-only composite returned by list/get
// queries: the subscription row joined with its customer, software and
// (when sold through one) reseller. It is never written back.
type SubscriptionWithDetails struct {
	Subscription
	Customer Customer  `json:"customer"`
	Reseller *Reseller `json:"reseller,omitempty"`
	Software Software  `json:"software"`
}

// ValidStatus reports whether s is one of the known subscription statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusExpiring, StatusOverdue, StatusRenewed:
		return true
	}
	return false
}

// ValidFrequency reports whether f is a known renewal frequency.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyAnnual, FrequencyCustom:
		return true
	}
	return false
}

// DaysUntilExpiry returns the whole-calendar-day difference between now and
// the expiry date. A subscription expiring at any time today yields 0;
// negative values mean already expired. The difference is by calendar date,
// not elapsed hours, so the time-of-day of either side never shifts the count.
func DaysUntilExpiry(expiry, now time.Time) int {
	// Both sides must be read in the same location; a TIMESTAMPTZ scanned in
	// UTC can land on a different calendar date than the local clock.
	expiry = expiry.In(now.Location())
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, now.Location())
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(e.Sub(n).Hours() / 24))
}

// EffectiveStatus resolves the lifecycle state from the expiry date instead
// of trusting the stored column, which nothing updates over time. A stored
// "renewed" wins, since it marks a recent manual renewal; everything else is
// derived from how far away expiry is.
func (s *Subscription) EffectiveStatus(now time.Time) string {
	if s.Status == StatusRenewed {
		return StatusRenewed
	}
	days := DaysUntilExpiry(s.ExpiryDate, now)
	switch {
	case days < 0:
		return StatusOverdue
	case days <= ExpiringWindowDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}
