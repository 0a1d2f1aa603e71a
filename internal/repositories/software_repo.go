package repositories

import (
	"context"

	"subtrack/internal/models"

	"github.com/google/uuid"
)

type SoftwareRepository interface {
	Create(ctx context.Context, software *models.Software) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Software, error)
	Update(ctx context.Context, software *models.Software) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListActive returns active catalog items only; that is all the catalog
	// listing ever shows.
	ListActive(ctx context.Context, limit, offset int) ([]*models.Software, error)
}

type softwareRepo struct {
	db DB
}

func NewSoftwareRepository(db DB) SoftwareRepository {
	return &softwareRepo{db: db}
}

const softwareColumns = `id, name, brand, category, description, icon_url, is_active, created_at`

func (r *softwareRepo) Create(ctx context.Context, software *models.Software) error {
	query := `
		INSERT INTO software_catalog (id, name, brand, category, description, icon_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, software.ID, software.Name, software.Brand, software.Category,
		software.Description, software.IconURL, software.IsActive)
	return translateError(err)
}

func (r *softwareRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Software, error) {
	software := &models.Software{}
	query := `SELECT ` + softwareColumns + ` FROM software_catalog WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&software.ID, &software.Name, &software.Brand,
		&software.Category, &software.Description, &software.IconURL, &software.IsActive, &software.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return software, nil
}

func (r *softwareRepo) Update(ctx context.Context, software *models.Software) error {
	query := `
		UPDATE software_catalog
		SET name = $1, brand = $2, category = $3, description = $4, icon_url = $5, is_active = $6
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query, software.Name, software.Brand, software.Category,
		software.Description, software.IconURL, software.IsActive, software.ID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *softwareRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM software_catalog WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *softwareRepo) ListActive(ctx context.Context, limit, offset int) ([]*models.Software, error) {
	query := `SELECT ` + softwareColumns + ` FROM software_catalog WHERE is_active = TRUE ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	items := []*models.Software{}
	for rows.Next() {
		software := &models.Software{}
		if err := rows.Scan(&software.ID, &software.Name, &software.Brand, &software.Category,
			&software.Description, &software.IconURL, &software.IsActive, &software.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, software)
	}
	return items, rows.Err()
}
