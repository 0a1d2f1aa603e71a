package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Reseller struct {
	ID                    uuid.UUID       `json:"id" db:"id"`
	Name                  string          `json:"name" db:"name"`
	Email                 string          `json:"email" db:"email"`
	Phone                 *string         `json:"phone" db:"phone"`
	Company               *string         `json:"company" db:"company"`
	Address               *string         `json:"address" db:"address"`
	DefaultCommissionRate decimal.Decimal `json:"default_commission_rate" db:"default_commission_rate"`
	PANNumber             *string         `json:"pan_number" db:"pan_number"`
	BankDetails           json.RawMessage `json:"bank_details" db:"bank_details"`
	IsActive              bool            `json:"is_active" db:"is_active"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at" db:"updated_at"`
}
