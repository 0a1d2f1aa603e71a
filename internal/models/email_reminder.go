package models

import (
	"time"

	"github.com/google/uuid"
)

// Email reminder delivery statuses.
const (
	ReminderStatusSent    = "sent"
	ReminderStatusPending = "pending"
	ReminderStatusFailed  = "failed"
)

// EmailReminder is one row of the append-only reminder log. Rows are created
// when a reminder is recorded and never mutated or deleted.
type EmailReminder struct {
	ID             uuid.UUID `json:"id" db:"id"`
	SubscriptionID uuid.UUID `json:"subscription_id" db:"subscription_id"`
	RecipientEmail string    `json:"recipient_email" db:"recipient_email"`
	Subject        *string   `json:"subject" db:"subject"`
	Template       *string   `json:"template" db:"template"`
	SentAt         time.Time `json:"sent_at" db:"sent_at"`
	Status         string    `json:"status" db:"status"`
	ErrorMessage   *string   `json:"error_message" db:"error_message"`
}
