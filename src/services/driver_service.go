package services

import (
	"context"
	"strings"

	"fleet/src/models"
	"fleet/src/repositories"
	"fleet/src/schemas"

	"github.com/google/uuid"
)

type DriverService struct {
	drivers repositories.DriverRepository
}

func NewDriverService(drivers repositories.DriverRepository) *DriverService {
	return &DriverService{drivers: drivers}
}

func (s *DriverService) GetAll(ctx context.Context) ([]models.Driver, error) {
	return s.drivers.GetAll(ctx)
}

func (s *DriverService) Create(ctx context.Context, req schemas.DriverRequest) (*models.Driver, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	d := models.Driver{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		IsActive:      true,
	}
	if err := s.drivers.Create(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
