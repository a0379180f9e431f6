package schemas

import (
	"fmt"
	"strings"

	"fleet/src/models"
	"fleet/src/utils"
)

type SparepartItem struct {
	SparepartID string `json:"sparepart_id"`
	Quantity    int    `json:"quantity"`
}

type MaintenanceRequest struct {
	AssetID     string          `json:"asset_id"`
	DriverID    *string         `json:"driver_id"`
	Complaint   string          `json:"complaint"`
	RepairNotes string          `json:"repair_notes"`
	Images      []string        `json:"images"`
	Spareparts  []SparepartItem `json:"spareparts"`
}

func (r MaintenanceRequest) Validate() error {
	v := utils.NewValidationError()
	v.Require("asset_id", r.AssetID)
	seen := map[string]bool{}
	for i, it := range r.Spareparts {
		field := fmt.Sprintf("spareparts[%d]", i)
		id := strings.TrimSpace(it.SparepartID)
		if id == "" {
			v.Add(field, "sparepart_id is required")
		}
		if it.Quantity <= 0 {
			v.Add(field, "quantity must be positive")
		}
		if seen[id] {
			v.Add(field, "duplicate sparepart_id")
		}
		seen[id] = true
	}
	return v.OrNil()
}

// Items converts the requested spareparts into pivot rows.
func (r MaintenanceRequest) Items() []models.MaintenanceSparepart {
	items := make([]models.MaintenanceSparepart, 0, len(r.Spareparts))
	for _, it := range r.Spareparts {
		items = append(items, models.MaintenanceSparepart{SparepartID: strings.TrimSpace(it.SparepartID), Quantity: it.Quantity})
	}
	return items
}

func (r MaintenanceRequest) ApplyTo(m *models.Maintenance) {
	m.AssetID = strings.TrimSpace(r.AssetID)
	m.DriverID = nil
	if r.DriverID != nil && strings.TrimSpace(*r.DriverID) != "" {
		id := strings.TrimSpace(*r.DriverID)
		m.DriverID = &id
	}
	m.Complaint = strings.TrimSpace(r.Complaint)
	m.RepairNotes = strings.TrimSpace(r.RepairNotes)
	m.Images = r.Images
}

type MaintenancePage struct {
	Data       []models.Maintenance `json:"data"`
	Pagination Pagination           `json:"pagination"`
}
