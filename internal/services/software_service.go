package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subtrack/internal/caching"
	"subtrack/internal/common"
	"subtrack/internal/models"
	"subtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// softwareCacheTTL bounds staleness of cached catalog items. Writes also
// invalidate, so this only matters if an invalidation is lost.
const softwareCacheTTL = 10 * time.Minute

type SoftwareService interface {
	CreateSoftware(ctx context.Context, software *models.Software) error
	GetSoftware(ctx context.Context, id uuid.UUID) (*models.Software, error)
	UpdateSoftware(ctx context.Context, software *models.Software) error
	DeleteSoftware(ctx context.Context, id uuid.UUID) error
	ListSoftware(ctx context.Context, limit, offset int) ([]*models.Software, error)
}

type softwareService struct {
	softwareRepo repositories.SoftwareRepository
	cache        caching.CacheService
}

func NewSoftwareService(softwareRepo repositories.SoftwareRepository, cache caching.CacheService) SoftwareService {
	return &softwareService{softwareRepo: softwareRepo, cache: cache}
}

func validateSoftware(software *models.Software) error {
	if err := common.ValidateRequiredString(software.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(software.Brand, "brand"); err != nil {
		return err
	}
	return nil
}

func (s *softwareService) CreateSoftware(ctx context.Context, software *models.Software) error {
	if err := validateSoftware(software); err != nil {
		return err
	}
	if software.ID == uuid.Nil {
		software.ID = uuid.New()
	}
	if err := s.softwareRepo.Create(ctx, software); err != nil {
		return fmt.Errorf("failed to create software: %w", err)
	}
	return nil
}

func (s *softwareService) GetSoftware(ctx context.Context, id uuid.UUID) (*models.Software, error) {
	cached, err := s.cache.GetSoftware(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("software_id", id.String()).Msg("software cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	software, err := s.softwareRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get software: %w", err)
	}

	if err := s.cache.SetSoftware(ctx, software, softwareCacheTTL); err != nil {
		log.Warn().Err(err).Str("software_id", id.String()).Msg("software cache write failed")
	}
	return software, nil
}

func (s *softwareService) UpdateSoftware(ctx context.Context, software *models.Software) error {
	if err := validateSoftware(software); err != nil {
		return err
	}
	if err := s.softwareRepo.Update(ctx, software); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update software: %w", err)
	}
	if err := s.cache.DeleteSoftware(ctx, software.ID); err != nil {
		log.Warn().Err(err).Str("software_id", software.ID.String()).Msg("software cache invalidation failed")
	}
	return nil
}

func (s *softwareService) DeleteSoftware(ctx context.Context, id uuid.UUID) error {
	if err := s.softwareRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrRestricted) {
			return err
		}
		return fmt.Errorf("failed to delete software: %w", err)
	}
	if err := s.cache.DeleteSoftware(ctx, id); err != nil {
		log.Warn().Err(err).Str("software_id", id.String()).Msg("software cache invalidation failed")
	}
	return nil
}

func (s *softwareService) ListSoftware(ctx context.Context, limit, offset int) ([]*models.Software, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	items, err := s.softwareRepo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list software: %w", err)
	}
	return items, nil
}
