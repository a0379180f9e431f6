package services

import (
	"context"
	"errors"
	"time"

	"fleet/src/models"
	"fleet/src/repositories"
	"fleet/src/schemas"
	"fleet/src/utils"

	"github.com/google/uuid"
)

type SparepartService struct {
	spareparts repositories.SparepartRepository
	loc        *time.Location
	now        Clock
}

func NewSparepartService(spareparts repositories.SparepartRepository, loc *time.Location) *SparepartService {
	return &SparepartService{spareparts: spareparts, loc: loc, now: time.Now}
}

func (s *SparepartService) SetClock(now Clock) {
	s.now = now
}

func (s *SparepartService) GetAll(ctx context.Context) ([]models.Sparepart, error) {
	return s.spareparts.GetAll(ctx)
}

func (s *SparepartService) GetByID(ctx context.Context, id string) (*models.Sparepart, error) {
	sp, err := s.spareparts.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.NotFound("sparepart not found")
	}
	return sp, err
}

func (s *SparepartService) Create(ctx context.Context, req schemas.SparepartRequest) (*models.Sparepart, error) {
	if err := req.Validate(true); err != nil {
		return nil, err
	}
	sp := models.Sparepart{ID: uuid.NewString(), Unit: "pcs"}
	req.ApplyTo(&sp)

	if err := s.spareparts.Create(ctx, &sp); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.Conflict("sparepart code " + sp.Code + " already exists")
		}
		return nil, err
	}
	return &sp, nil
}

func (s *SparepartService) Update(ctx context.Context, id string, req schemas.SparepartRequest) (*models.Sparepart, error) {
	if err := req.Validate(false); err != nil {
		return nil, err
	}
	sp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(sp)
	if err := s.spareparts.Update(ctx, sp); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.Conflict("sparepart code " + sp.Code + " already exists")
		}
		return nil, err
	}
	return sp, nil
}

func (s *SparepartService) Delete(ctx context.Context, id string) error {
	err := s.spareparts.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.NotFound("sparepart not found")
	}
	return err
}

// Usage sums the quantities used per sparepart between start and end, whole
// days in the service timezone. Missing bounds default to the current month up
// to the end of today.
func (s *SparepartService) Usage(ctx context.Context, start, end *time.Time) ([]models.SparepartUsage, error) {
	from, to := utils.MonthToDate(s.now(), s.loc)
	if start != nil {
		from = utils.StartOfDay(inZone(*start, s.loc), s.loc)
	}
	if end != nil {
		to = utils.EndOfDay(inZone(*end, s.loc), s.loc)
	}
	if from.After(to) {
		return nil, utils.BadRequest("startDate must not be after endDate")
	}
	return s.spareparts.Usage(ctx, from, to)
}

// inZone reads the calendar date of a parsed date as a date in loc.
func inZone(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
