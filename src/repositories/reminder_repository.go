package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reminderColumns = `r.id, r.asset_id, r.reminder_type, r.due_date, r.interval_month, r.next_due_date,
	r.last_done_at, r.is_active, r.created_at, r.updated_at`

type ReminderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Reminder, error)
	List(ctx context.Context, filter models.ReminderFilter) ([]models.ReminderWithAsset, error)
	// DueBefore returns the active reminders whose next due date is on or before until.
	DueBefore(ctx context.Context, until time.Time) ([]models.ReminderWithAsset, error)
	Create(ctx context.Context, reminder *models.Reminder, tx pgx.Tx) error
	// MarkDone persists the completion fields of a single reminder, provided its
	// next due date is still previousDue. Otherwise it returns ErrStale.
	MarkDone(ctx context.Context, reminder *models.Reminder, previousDue time.Time, tx pgx.Tx) error
	DeleteByAssetIDs(ctx context.Context, assetIDs []string, tx pgx.Tx) (int64, error)
	CountOverdue(ctx context.Context, today time.Time) (int, error)
	CountUpcoming(ctx context.Context, today, until time.Time) (int, error)
}

type reminderRepo struct {
	db *pgxpool.Pool
}

func NewReminderRepository(db *pgxpool.Pool) ReminderRepository {
	return &reminderRepo{db: db}
}

func reminderScanTargets(m *models.Reminder) []any {
	return []any{&m.ID, &m.AssetID, &m.ReminderType, &m.DueDate, &m.IntervalMonth, &m.NextDueDate,
		&m.LastDoneAt, &m.IsActive, &m.CreatedAt, &m.UpdatedAt}
}

func (r *reminderRepo) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	var m models.Reminder
	err := r.db.QueryRow(ctx, `SELECT `+reminderColumns+` FROM reminders r WHERE r.id = $1`, id).
		Scan(reminderScanTargets(&m)...)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

func (r *reminderRepo) List(ctx context.Context, filter models.ReminderFilter) ([]models.ReminderWithAsset, error) {
	conditions := []string{"r.is_active"}
	args := []any{}
	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.StartDate != nil {
		add("r.next_due_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("r.next_due_date <= $%d", *filter.EndDate)
	}
	if filter.Type != "" {
		add("r.reminder_type = $%d", filter.Type)
	}
	if filter.AssetType != "" {
		add("a.asset_type = $%d", filter.AssetType)
	}
	if filter.Overdue {
		add("r.next_due_date < $%d", filter.Today)
	}

	order := "DESC"
	if filter.SortAsc {
		order = "ASC"
	}
	return r.query(ctx, "WHERE "+strings.Join(conditions, " AND ")+" ORDER BY r.next_due_date "+order, args...)
}

func (r *reminderRepo) DueBefore(ctx context.Context, until time.Time) ([]models.ReminderWithAsset, error) {
	return r.query(ctx, "WHERE r.is_active AND r.next_due_date <= $1 ORDER BY r.next_due_date ASC", until)
}

func (r *reminderRepo) query(ctx context.Context, tail string, args ...any) ([]models.ReminderWithAsset, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reminderColumns+`, a.asset_code, a.name, a.asset_type,
		 COALESCE(v.license_plate, ''), COALESCE(c.chassis_number, '')
		 FROM reminders r
		 JOIN assets a ON a.id = r.asset_id
		 LEFT JOIN vehicles v ON v.asset_id = a.id
		 LEFT JOIN chassis c ON c.asset_id = a.id `+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.ReminderWithAsset{}
	for rows.Next() {
		var m models.ReminderWithAsset
		targets := append(reminderScanTargets(&m.Reminder), &m.AssetCode, &m.AssetName, &m.AssetType,
			&m.LicensePlate, &m.ChassisNumber)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *reminderRepo) Create(ctx context.Context, m *models.Reminder, tx pgx.Tx) error {
	err := conn(r.db, tx).QueryRow(ctx,
		`INSERT INTO reminders (id, asset_id, reminder_type, due_date, interval_month, next_due_date, last_done_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		m.ID, m.AssetID, m.ReminderType, m.DueDate, m.IntervalMonth, m.NextDueDate, m.LastDoneAt, m.IsActive,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return mapError(err)
}

func (r *reminderRepo) MarkDone(ctx context.Context, m *models.Reminder, previousDue time.Time, tx pgx.Tx) error {
	err := conn(r.db, tx).QueryRow(ctx,
		`UPDATE reminders SET last_done_at = $2, next_due_date = $3, updated_at = NOW()
		 WHERE id = $1 AND next_due_date = $4
		 RETURNING updated_at`,
		m.ID, m.LastDoneAt, m.NextDueDate, previousDue,
	).Scan(&m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrStale
	}
	return mapError(err)
}

func (r *reminderRepo) DeleteByAssetIDs(ctx context.Context, assetIDs []string, tx pgx.Tx) (int64, error) {
	tag, err := conn(r.db, tx).Exec(ctx, `DELETE FROM reminders WHERE asset_id = ANY($1)`, assetIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *reminderRepo) CountOverdue(ctx context.Context, today time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reminders WHERE is_active AND next_due_date < $1`, today).Scan(&n)
	return n, err
}

func (r *reminderRepo) CountUpcoming(ctx context.Context, today, until time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reminders WHERE is_active AND next_due_date BETWEEN $1 AND $2`, today, until).Scan(&n)
	return n, err
}
