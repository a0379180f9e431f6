package models

import "time"

// Reminder is a recurring compliance deadline (KIR or STNK) attached to an asset.
// NextDueDate only ever advances by IntervalMonth months from its previous value.
type Reminder struct {
	ID            string     `db:"id" json:"id"`
	AssetID       string     `db:"asset_id" json:"asset_id"`
	ReminderType  string     `db:"reminder_type" json:"reminder_type"`
	DueDate       time.Time  `db:"due_date" json:"due_date"`
	IntervalMonth int        `db:"interval_month" json:"interval_month"`
	NextDueDate   time.Time  `db:"next_due_date" json:"next_due_date"`
	LastDoneAt    *time.Time `db:"last_done_at" json:"last_done_at"`
	IsActive      bool       `db:"is_active" json:"is_active"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

type ReminderWithAsset struct {
	Reminder
	AssetCode     string `db:"asset_code" json:"asset_code"`
	AssetName     string `db:"asset_name" json:"asset_name"`
	AssetType     string `db:"asset_type" json:"asset_type"`
	LicensePlate  string `db:"license_plate" json:"license_plate,omitempty"`
	ChassisNumber string `db:"chassis_number" json:"chassis_number,omitempty"`
}

type ReminderFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
	AssetType string
	// Overdue restricts to reminders whose next due date is before Today.
	Overdue bool
	Today   time.Time
	SortAsc bool
}
