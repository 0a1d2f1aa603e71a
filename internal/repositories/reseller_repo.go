package repositories

import (
	"context"

	"subtrack/internal/models"

	"github.com/google/uuid"
)

type ResellerRepository interface {
	Create(ctx context.Context, reseller *models.Reseller) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reseller, error)
	Update(ctx context.Context, reseller *models.Reseller) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Reseller, error)
}

type resellerRepo struct {
	db DB
}

func NewResellerRepository(db DB) ResellerRepository {
	return &resellerRepo{db: db}
}

const resellerColumns = `id, name, email, phone, company, address, default_commission_rate, pan_number, bank_details, is_active, created_at, updated_at`

func (r *resellerRepo) Create(ctx context.Context, reseller *models.Reseller) error {
	query := `
		INSERT INTO resellers (id, name, email, phone, company, address, default_commission_rate, pan_number, bank_details, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, reseller.ID, reseller.Name, reseller.Email, reseller.Phone,
		reseller.Company, reseller.Address, reseller.DefaultCommissionRate, reseller.PANNumber,
		reseller.BankDetails, reseller.IsActive)
	return translateError(err)
}

func (r *resellerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reseller, error) {
	reseller := &models.Reseller{}
	query := `SELECT ` + resellerColumns + ` FROM resellers WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&reseller.ID, &reseller.Name, &reseller.Email,
		&reseller.Phone, &reseller.Company, &reseller.Address, &reseller.DefaultCommissionRate,
		&reseller.PANNumber, &reseller.BankDetails, &reseller.IsActive, &reseller.CreatedAt, &reseller.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return reseller, nil
}

func (r *resellerRepo) Update(ctx context.Context, reseller *models.Reseller) error {
	query := `
		UPDATE resellers
		SET name = $1, email = $2, phone = $3, company = $4, address = $5, default_commission_rate = $6, pan_number = $7, bank_details = $8, is_active = $9, updated_at = NOW()
		WHERE id = $10
	`
	tag, err := r.db.Exec(ctx, query, reseller.Name, reseller.Email, reseller.Phone, reseller.Company,
		reseller.Address, reseller.DefaultCommissionRate, reseller.PANNumber, reseller.BankDetails,
		reseller.IsActive, reseller.ID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *resellerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM resellers WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *resellerRepo) List(ctx context.Context, limit, offset int) ([]*models.Reseller, error) {
	query := `SELECT ` + resellerColumns + ` FROM resellers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	resellers := []*models.Reseller{}
	for rows.Next() {
		reseller := &models.Reseller{}
		if err := rows.Scan(&reseller.ID, &reseller.Name, &reseller.Email, &reseller.Phone,
			&reseller.Company, &reseller.Address, &reseller.DefaultCommissionRate, &reseller.PANNumber,
			&reseller.BankDetails, &reseller.IsActive, &reseller.CreatedAt, &reseller.UpdatedAt); err != nil {
			return nil, err
		}
		resellers = append(resellers, reseller)
	}
	return resellers, rows.Err()
}
