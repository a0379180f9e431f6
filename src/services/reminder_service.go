package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet/src/config"
	"fleet/src/models"
	"fleet/src/repositories"
	"fleet/src/schemas"
	"fleet/src/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// ReminderDue is a recorded compliance date taken from an asset form.
type ReminderDue struct {
	Type string
	Date *time.Time
}

type ReminderService struct {
	reminders repositories.ReminderRepository
	cfg       config.RemindersConfig
	loc       *time.Location
	now       Clock
	onChange  func()
}

// markDoneAttempts bounds the re-reads when concurrent completions race on a row.
const markDoneAttempts = 5

func NewReminderService(reminders repositories.ReminderRepository, cfg *config.Config, loc *time.Location) *ReminderService {
	return &ReminderService{reminders: reminders, cfg: cfg.Reminders, loc: loc, now: time.Now, onChange: func() {}}
}

func (s *ReminderService) SetClock(now Clock) {
	s.now = now
}

// OnChange registers a hook run after reminders are completed, rebuilt or
// deleted, including rebuilds done by the vehicle and chassis services.
func (s *ReminderService) OnChange(fn func()) {
	s.onChange = fn
}

// Today is the current calendar date in the service timezone, as a UTC midnight.
func (s *ReminderService) Today() time.Time {
	return utils.DateOnly(s.now().In(s.loc))
}

// IntervalFor returns the renewal period in months for a reminder type.
func (s *ReminderService) IntervalFor(reminderType string) int {
	switch reminderType {
	case utils.ReminderTypeSTNK:
		if s.cfg.STNKIntervalMonths > 0 {
			return s.cfg.STNKIntervalMonths
		}
		return 12
	case utils.ReminderTypeKIR:
		if s.cfg.KIRIntervalMonths > 0 {
			return s.cfg.KIRIntervalMonths
		}
		return 6
	}
	return 0
}

func (s *ReminderService) List(ctx context.Context, filter models.ReminderFilter) (*schemas.ReminderListResponse, error) {
	filter.Today = s.Today()
	data, err := s.reminders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &schemas.ReminderListResponse{Total: len(data), Data: data}, nil
}

// MarkDone records a completed renewal. The next due date advances from the
// previous due date, not from today, so late or early completion keeps the
// original schedule. A completion that loses a race on the same row is
// reapplied on top of the winner's due date.
func (s *ReminderService) MarkDone(ctx context.Context, id string) (*models.Reminder, error) {
	for attempt := 0; attempt < markDoneAttempts; attempt++ {
		reminder, err := s.reminders.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, utils.NotFound("reminder not found")
			}
			return nil, err
		}

		previousDue := reminder.NextDueDate
		if err := Advance(reminder, s.now()); err != nil {
			return nil, err
		}
		err = s.reminders.MarkDone(ctx, reminder, previousDue, nil)
		if errors.Is(err, repositories.ErrStale) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.onChange()
		utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
			"reminder_id":   reminder.ID,
			"reminder_type": reminder.ReminderType,
			"next_due_date": reminder.NextDueDate.Format(utils.ShortDashDateLayout),
		}).Info("reminder marked as done")
		return reminder, nil
	}
	return nil, utils.Conflict("reminder " + id + " is being updated concurrently, retry later")
}

// Advance applies a completion at now to reminder in memory.
func Advance(reminder *models.Reminder, now time.Time) error {
	next, err := utils.AddMonths(reminder.NextDueDate, reminder.IntervalMonth)
	if err != nil {
		return utils.UnprocessableEntity(fmt.Sprintf("reminder %s has interval %d: %s", reminder.ID, reminder.IntervalMonth, err))
	}
	reminder.LastDoneAt = &now
	reminder.NextDueDate = next
	return nil
}

// RebuildForAsset replaces every reminder of assetID with one reminder per
// non empty due date, each moved onto the current year.
func (s *ReminderService) RebuildForAsset(ctx context.Context, assetID string, dues []ReminderDue, tx pgx.Tx) ([]models.Reminder, error) {
	if _, err := s.reminders.DeleteByAssetIDs(ctx, []string{assetID}, tx); err != nil {
		return nil, err
	}

	today := s.Today()
	created := []models.Reminder{}
	for _, due := range dues {
		if due.Date == nil {
			continue
		}
		date := utils.DueDateToThisYear(*due.Date, today, s.cfg.RollElapsedToNextYear)
		reminder := models.Reminder{
			ID:            uuid.NewString(),
			AssetID:       assetID,
			ReminderType:  due.Type,
			DueDate:       date,
			IntervalMonth: s.IntervalFor(due.Type),
			NextDueDate:   date,
			IsActive:      true,
		}
		if err := s.reminders.Create(ctx, &reminder, tx); err != nil {
			return nil, err
		}
		created = append(created, reminder)
	}
	return created, nil
}

// Scan logs every active reminder that is overdue or due within the lead window.
func (s *ReminderService) Scan(ctx context.Context) (*schemas.ReminderScanResponse, error) {
	today := s.Today()
	lead := s.cfg.LeadDays
	if lead < 0 {
		lead = 0
	}
	due, err := s.reminders.DueBefore(ctx, today.AddDate(0, 0, lead))
	if err != nil {
		return nil, err
	}

	logger := utils.LoggerFromContext(ctx)
	res := &schemas.ReminderScanResponse{}
	for _, r := range due {
		entry := logger.WithFields(logrus.Fields{
			"reminder_id":   r.ID,
			"reminder_type": r.ReminderType,
			"asset_code":    r.AssetCode,
			"license_plate": r.LicensePlate,
			"next_due_date": r.NextDueDate.Format(utils.ShortDashDateLayout),
		})
		if r.NextDueDate.Before(today) {
			res.Overdue++
			entry.Warn("reminder overdue")
		} else {
			res.Upcoming++
			entry.Warn("reminder due soon")
		}
	}
	logger.Infof("reminder scan finished: %d overdue, %d upcoming", res.Overdue, res.Upcoming)
	return res, nil
}
