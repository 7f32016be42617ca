package catalog

import (
	"context"
	"errors"

	"courtbook/internal/domain"
	"courtbook/internal/repository"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("facility not found")

// Service is the read-only browse surface: facilities, their courts and the
// retail product list. Writes go through the seeder.
type Service struct {
	facilityRepo *repository.FacilityRepository
	courtRepo    *repository.CourtRepository
	productRepo  *repository.ProductRepository
}

func NewService(
	facilityRepo *repository.FacilityRepository,
	courtRepo *repository.CourtRepository,
	productRepo *repository.ProductRepository,
) *Service {
	return &Service{facilityRepo, courtRepo, productRepo}
}

func (s *Service) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	return s.facilityRepo.ListActive(ctx)
}

// GetFacility returns one facility with its courts attached.
func (s *Service) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	f, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	courts, err := s.courtRepo.ListByFacility(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Courts = courts
	return f, nil
}

func (s *Service) ListCourts(ctx context.Context, facilityID int64) ([]domain.Court, error) {
	if _, err := s.facilityRepo.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.courtRepo.ListByFacility(ctx, facilityID)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.ListActive(ctx)
}
