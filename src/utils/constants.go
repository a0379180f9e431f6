package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"

const (
	AssetTypeVehicle   = "VEHICLE"
	AssetTypeChassis   = "CHASSIS"
	AssetTypeEquipment = "EQUIPMENT"

	// Code category for maintenance record numbers.
	CodeCategoryMaintenance = "MAINTENANCE"
)

const (
	ReminderTypeKIR  = "KIR"
	ReminderTypeSTNK = "STNK"
)

const (
	RoleAdmin    = "ADMIN"
	RoleStaff    = "STAFF"
	RoleMechanic = "MECHANIC"
)

// Indonesian month names used on printed reports.
var MonthNamesID = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}
