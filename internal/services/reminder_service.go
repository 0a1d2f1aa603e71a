package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subtrack/internal/common"
	"subtrack/internal/models"
	"subtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RecordReminderInput describes one reminder entry. The recipient defaults to
// the subscription's customer email when left empty.
type RecordReminderInput struct {
	RecipientEmail string  `json:"recipient_email"`
	Subject        *string `json:"subject"`
	Template       *string `json:"template"`
	Status         string  `json:"status"`
	ErrorMessage   *string `json:"error_message"`
}

type ReminderService interface {
	// RecordReminder appends a reminder log entry for the subscription and
	// stamps the subscription's reminder flags. The log is append only.
	RecordReminder(ctx context.Context, subscriptionID uuid.UUID, input RecordReminderInput) (*models.EmailReminder, error)
	ListReminders(ctx context.Context, subscriptionID uuid.UUID) ([]*models.EmailReminder, error)
}

type reminderService struct {
	reminderRepo     repositories.EmailReminderRepository
	subscriptionRepo repositories.SubscriptionRepository
	now              func() time.Time
}

func NewReminderService(reminderRepo repositories.EmailReminderRepository, subscriptionRepo repositories.SubscriptionRepository) ReminderService {
	return &reminderService{
		reminderRepo:     reminderRepo,
		subscriptionRepo: subscriptionRepo,
		now:              time.Now,
	}
}

func (s *reminderService) RecordReminder(ctx context.Context, subscriptionID uuid.UUID, input RecordReminderInput) (*models.EmailReminder, error) {
	detail, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	recipient := input.RecipientEmail
	if recipient == "" {
		recipient = detail.Customer.Email
	}
	if err := common.ValidateEmail(recipient, "recipient_email"); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.ReminderStatusSent
	}
	switch status {
	case models.ReminderStatusSent, models.ReminderStatusPending, models.ReminderStatusFailed:
	default:
		return nil, &common.ValidationError{Field: "status", Message: "unknown reminder status"}
	}

	now := s.now()
	reminder := &models.EmailReminder{
		ID:             uuid.New(),
		SubscriptionID: subscriptionID,
		RecipientEmail: recipient,
		Subject:        input.Subject,
		Template:       input.Template,
		SentAt:         now,
		Status:         status,
		ErrorMessage:   input.ErrorMessage,
	}
	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to record reminder: %w", err)
	}

	if status == models.ReminderStatusSent {
		if err := s.subscriptionRepo.MarkReminderSent(ctx, subscriptionID, now); err != nil {
			// The log entry exists; a stale flag on the subscription is
			// recoverable from it.
			log.Warn().Err(err).Str("subscription_id", subscriptionID.String()).Msg("failed to stamp reminder flags")
		}
	}

	log.Info().
		Str("subscription_id", subscriptionID.String()).
		Str("recipient", recipient).
		Str("status", status).
		Msg("reminder recorded")
	return reminder, nil
}

func (s *reminderService) ListReminders(ctx context.Context, subscriptionID uuid.UUID) ([]*models.EmailReminder, error) {
	if _, err := s.subscriptionRepo.GetByID(ctx, subscriptionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	reminders, err := s.reminderRepo.ListBySubscription(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}
