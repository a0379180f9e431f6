package models

import "time"

type Asset struct {
	ID            string     `db:"id" json:"id"`
	AssetCode     string     `db:"asset_code" json:"asset_code"`
	AssetType     string     `db:"asset_type" json:"asset_type"`
	Name          string     `db:"name" json:"name"`
	Brand         string     `db:"brand" json:"brand"`
	Model         string     `db:"model" json:"model"`
	SerialNumber  string     `db:"serial_number" json:"serial_number"`
	PurchaseDate  *time.Time `db:"purchase_date" json:"purchase_date"`
	PurchasePrice *float64   `db:"purchase_price" json:"purchase_price"`
	IsActive      bool       `db:"is_active" json:"is_active"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

type Vehicle struct {
	ID           string     `db:"id" json:"id"`
	AssetID      string     `db:"asset_id" json:"asset_id"`
	LicensePlate string     `db:"license_plate" json:"license_plate"`
	Owner        string     `db:"owner" json:"owner"`
	Address      string     `db:"address" json:"address"`
	Color        string     `db:"color" json:"color"`
	Year         *int       `db:"year" json:"year"`
	EngineNumber string     `db:"engine_number" json:"engine_number"`
	FrameNumber  string     `db:"frame_number" json:"frame_number"`
	NoKIR        string     `db:"no_kir" json:"no_kir"`
	KIRDueDate   *time.Time `db:"kir_due_date" json:"kir_due_date"`
	STNKNumber   string     `db:"stnk_number" json:"stnk_number"`
	STNKDueDate  *time.Time `db:"stnk_due_date" json:"stnk_due_date"`
	Notes        string     `db:"notes" json:"notes"`
	Asset        *Asset     `json:"asset,omitempty"`
}

type Chassis struct {
	ID              string     `db:"id" json:"id"`
	AssetID         string     `db:"asset_id" json:"asset_id"`
	ChassisNumber   string     `db:"chassis_number" json:"chassis_number"`
	AxleCount       *int       `db:"axle_count" json:"axle_count"`
	ChassisType     string     `db:"chassis_type" json:"chassis_type"`
	ChassisCategory string     `db:"chassis_category" json:"chassis_category"`
	NoKIR           string     `db:"no_kir" json:"no_kir"`
	KIRDueDate      *time.Time `db:"kir_due_date" json:"kir_due_date"`
	Notes           string     `db:"notes" json:"notes"`
	Asset           *Asset     `json:"asset,omitempty"`
}

type Equipment struct {
	ID            string `db:"id" json:"id"`
	AssetID       string `db:"asset_id" json:"asset_id"`
	EquipmentType string `db:"equipment_type" json:"equipment_type"`
	Specification string `db:"specification" json:"specification"`
	Condition     string `db:"condition" json:"condition"`
	Asset         *Asset `json:"asset,omitempty"`
}
