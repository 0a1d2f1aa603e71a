package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Phone         *string   `json:"phone" db:"phone"`
	Company       *string   `json:"company" db:"company"`
	Address       *string   `json:"address" db:"address"`
	GSTNumber     *string   `json:"gst_number" db:"gst_number"`
	ContactPerson *string   `json:"contact_person" db:"contact_person"`
	Notes         *string   `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
