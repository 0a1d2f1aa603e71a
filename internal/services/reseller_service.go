package services

import (
	"context"
	"errors"
	"fmt"

	"subtrack/internal/common"
	"subtrack/internal/models"
	"subtrack/internal/repositories"

	"github.com/google/uuid"
)

type ResellerService interface {
	CreateReseller(ctx context.Context, reseller *models.Reseller) error
	GetReseller(ctx context.Context, id uuid.UUID) (*models.Reseller, error)
	UpdateReseller(ctx context.Context, reseller *models.Reseller) error
	DeleteReseller(ctx context.Context, id uuid.UUID) error
	ListResellers(ctx context.Context, limit, offset int) ([]*models.Reseller, error)
}

type resellerService struct {
	resellerRepo repositories.ResellerRepository
}

func NewResellerService(resellerRepo repositories.ResellerRepository) ResellerService {
	return &resellerService{resellerRepo: resellerRepo}
}

func validateReseller(reseller *models.Reseller) error {
	if err := common.ValidateRequiredString(reseller.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateEmail(reseller.Email, "email"); err != nil {
		return err
	}
	if err := common.ValidateCommissionRate(reseller.DefaultCommissionRate, "default_commission_rate"); err != nil {
		return err
	}
	if reseller.PANNumber != nil && *reseller.PANNumber != "" {
		if err := common.ValidatePAN(*reseller.PANNumber, "pan_number"); err != nil {
			return err
		}
	}
	return nil
}

func (s *resellerService) CreateReseller(ctx context.Context, reseller *models.Reseller) error {
	if err := validateReseller(reseller); err != nil {
		return err
	}
	if reseller.ID == uuid.Nil {
		reseller.ID = uuid.New()
	}
	if err := s.resellerRepo.Create(ctx, reseller); err != nil {
		return fmt.Errorf("failed to create reseller: %w", err)
	}
	return nil
}

func (s *resellerService) GetReseller(ctx context.Context, id uuid.UUID) (*models.Reseller, error) {
	reseller, err := s.resellerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	return reseller, nil
}

func (s *resellerService) UpdateReseller(ctx context.Context, reseller *models.Reseller) error {
	if err := validateReseller(reseller); err != nil {
		return err
	}
	if err := s.resellerRepo.Update(ctx, reseller); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update reseller: %w", err)
	}
	return nil
}

func (s *resellerService) DeleteReseller(ctx context.Context, id uuid.UUID) error {
	if err := s.resellerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrRestricted) {
			return err
		}
		return fmt.Errorf("failed to delete reseller: %w", err)
	}
	return nil
}

func (s *resellerService) ListResellers(ctx context.Context, limit, offset int) ([]*models.Reseller, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	resellers, err := s.resellerRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list resellers: %w", err)
	}
	return resellers, nil
}
