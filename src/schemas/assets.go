package schemas

import (
	"fleet/src/models"
	"fleet/src/utils"
)

// AssetFields are the asset columns shared by every asset kind request.
type AssetFields struct {
	AssetCode     *string  `json:"asset_code"`
	Name          *string  `json:"name"`
	Brand         *string  `json:"brand"`
	Model         *string  `json:"model"`
	SerialNumber  *string  `json:"serial_number"`
	PurchaseDate  *Date    `json:"purchase_date"`
	PurchasePrice *float64 `json:"purchase_price"`
	IsActive      *bool    `json:"is_active"`
}

func (f AssetFields) validate(v *utils.ValidationError, create bool) {
	if create || f.Name != nil {
		if f.Name == nil {
			v.Add("name", "is required")
		} else {
			v.Require("name", *f.Name)
		}
	}
	if f.PurchasePrice != nil && *f.PurchasePrice < 0 {
		v.Add("purchase_price", "must not be negative")
	}
}

// ApplyTo copies the provided fields onto asset. The asset code is not
// touched: it is generated or validated by the caller.
func (f AssetFields) ApplyTo(asset *models.Asset) {
	setString(&asset.Name, f.Name)
	setString(&asset.Brand, f.Brand)
	setString(&asset.Model, f.Model)
	setString(&asset.SerialNumber, f.SerialNumber)
	if f.PurchaseDate != nil {
		asset.PurchaseDate = f.PurchaseDate.Ptr()
	}
	if f.PurchasePrice != nil {
		asset.PurchasePrice = f.PurchasePrice
	}
	if f.IsActive != nil {
		asset.IsActive = *f.IsActive
	}
}

type VehicleRequest struct {
	AssetFields
	LicensePlate *string `json:"license_plate"`
	Owner        *string `json:"owner"`
	Address      *string `json:"address"`
	Color        *string `json:"color"`
	Year         *int    `json:"year"`
	EngineNumber *string `json:"engine_number"`
	FrameNumber  *string `json:"frame_number"`
	NoKIR        *string `json:"no_kir"`
	KIRDueDate   *Date   `json:"kir_due_date"`
	STNKNumber   *string `json:"stnk_number"`
	STNKDueDate  *Date   `json:"stnk_due_date"`
	Notes        *string `json:"notes"`
}

// Validate checks a create request when create is set, a partial update otherwise.
func (r VehicleRequest) Validate(create bool) error {
	v := utils.NewValidationError()
	r.AssetFields.validate(v, create)
	if create || r.LicensePlate != nil {
		if r.LicensePlate == nil {
			v.Add("license_plate", "is required")
		} else {
			v.Require("license_plate", *r.LicensePlate)
		}
	}
	if r.Year != nil && (*r.Year < 1900 || *r.Year > 2100) {
		v.Add("year", "must be between 1900 and 2100")
	}
	return v.OrNil()
}

func (r VehicleRequest) ApplyTo(asset *models.Asset, vehicle *models.Vehicle) {
	r.AssetFields.ApplyTo(asset)
	setString(&vehicle.LicensePlate, r.LicensePlate)
	setString(&vehicle.Owner, r.Owner)
	setString(&vehicle.Address, r.Address)
	setString(&vehicle.Color, r.Color)
	if r.Year != nil {
		vehicle.Year = r.Year
	}
	setString(&vehicle.EngineNumber, r.EngineNumber)
	setString(&vehicle.FrameNumber, r.FrameNumber)
	setString(&vehicle.NoKIR, r.NoKIR)
	if r.KIRDueDate != nil {
		vehicle.KIRDueDate = r.KIRDueDate.Ptr()
	}
	setString(&vehicle.STNKNumber, r.STNKNumber)
	if r.STNKDueDate != nil {
		vehicle.STNKDueDate = r.STNKDueDate.Ptr()
	}
	setString(&vehicle.Notes, r.Notes)
}

type ChassisRequest struct {
	AssetFields
	ChassisNumber   *string `json:"chassis_number"`
	AxleCount       *int    `json:"axle_count"`
	ChassisType     *string `json:"chassis_type"`
	ChassisCategory *string `json:"chassis_category"`
	NoKIR           *string `json:"no_kir"`
	KIRDueDate      *Date   `json:"kir_due_date"`
	Notes           *string `json:"notes"`
}

func (r ChassisRequest) Validate(create bool) error {
	v := utils.NewValidationError()
	r.AssetFields.validate(v, create)
	if create || r.ChassisNumber != nil {
		if r.ChassisNumber == nil {
			v.Add("chassis_number", "is required")
		} else {
			v.Require("chassis_number", *r.ChassisNumber)
		}
	}
	if r.AxleCount != nil && *r.AxleCount <= 0 {
		v.Add("axle_count", "must be positive")
	}
	return v.OrNil()
}

func (r ChassisRequest) ApplyTo(asset *models.Asset, chassis *models.Chassis) {
	r.AssetFields.ApplyTo(asset)
	setString(&chassis.ChassisNumber, r.ChassisNumber)
	if r.AxleCount != nil {
		chassis.AxleCount = r.AxleCount
	}
	setString(&chassis.ChassisType, r.ChassisType)
	setString(&chassis.ChassisCategory, r.ChassisCategory)
	setString(&chassis.NoKIR, r.NoKIR)
	if r.KIRDueDate != nil {
		chassis.KIRDueDate = r.KIRDueDate.Ptr()
	}
	setString(&chassis.Notes, r.Notes)
}

type EquipmentRequest struct {
	AssetFields
	EquipmentType *string `json:"equipment_type"`
	Specification *string `json:"specification"`
	Condition     *string `json:"condition"`
}

func (r EquipmentRequest) Validate(create bool) error {
	v := utils.NewValidationError()
	r.AssetFields.validate(v, create)
	return v.OrNil()
}

func (r EquipmentRequest) ApplyTo(asset *models.Asset, equipment *models.Equipment) {
	r.AssetFields.ApplyTo(asset)
	setString(&equipment.EquipmentType, r.EquipmentType)
	setString(&equipment.Specification, r.Specification)
	setString(&equipment.Condition, r.Condition)
}

// ImportResult summarizes a spreadsheet import.
type ImportResult struct {
	Imported int              `json:"imported"`
	Vehicles []models.Vehicle `json:"vehicles"`
}
