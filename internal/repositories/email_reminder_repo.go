package repositories

import (
	"context"

	"subtrack/internal/models"

	"github.com/google/uuid"
)

// EmailReminderRepository is append-only on purpose: reminder rows are a log,
// never updated or deleted.
type EmailReminderRepository interface {
	Create(ctx context.Context, reminder *models.EmailReminder) error
	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*models.EmailReminder, error)
}

type emailReminderRepo struct {
	db DB
}

func NewEmailReminderRepository(db DB) EmailReminderRepository {
	return &emailReminderRepo{db: db}
}

func (r *emailReminderRepo) Create(ctx context.Context, reminder *models.EmailReminder) error {
	query := `
		INSERT INTO email_reminders (id, subscription_id, recipient_email, subject, template, sent_at, status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query, reminder.ID, reminder.SubscriptionID, reminder.RecipientEmail,
		reminder.Subject, reminder.Template, reminder.SentAt, reminder.Status, reminder.ErrorMessage)
	return translateError(err)
}

func (r *emailReminderRepo) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*models.EmailReminder, error) {
	query := `
		SELECT id, subscription_id, recipient_email, subject, template, sent_at, status, error_message
		FROM email_reminders
		WHERE subscription_id = $1
		ORDER BY sent_at DESC
	`
	rows, err := r.db.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	reminders := []*models.EmailReminder{}
	for rows.Next() {
		reminder := &models.EmailReminder{}
		if err := rows.Scan(&reminder.ID, &reminder.SubscriptionID, &reminder.RecipientEmail,
			&reminder.Subject, &reminder.Template, &reminder.SentAt, &reminder.Status,
			&reminder.ErrorMessage); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}
