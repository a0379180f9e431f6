package models

import "time"

type Maintenance struct {
	ID           string                 `db:"id" json:"id"`
	RecordNumber string                 `db:"record_number" json:"record_number"`
	AssetID      string                 `db:"asset_id" json:"asset_id"`
	DriverID     *string                `db:"driver_id" json:"driver_id"`
	UserID       string                 `db:"user_id" json:"user_id"`
	Complaint    string                 `db:"complaint" json:"complaint"`
	RepairNotes  string                 `db:"repair_notes" json:"repair_notes"`
	Images       []string               `db:"images" json:"images"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time              `db:"updated_at" json:"updated_at"`
	Spareparts   []MaintenanceSparepart `json:"spareparts"`
	Asset        *Asset                 `json:"asset,omitempty"`
	Driver       *Driver                `json:"driver,omitempty"`
	Mechanic     string                 `db:"mechanic" json:"mechanic,omitempty"`
}

type MaintenanceSparepart struct {
	SparepartID string  `db:"sparepart_id" json:"sparepart_id"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Code        string  `db:"code" json:"code,omitempty"`
	Name        string  `db:"name" json:"name,omitempty"`
	Unit        string  `db:"unit" json:"unit,omitempty"`
	Price       float64 `db:"price" json:"price,omitempty"`
}

type MaintenanceFilter struct {
	UserID string
	Search string
	Limit  int
	Offset int
}
