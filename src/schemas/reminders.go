package schemas

import "fleet/src/models"

type ReminderListResponse struct {
	Total int                        `json:"total"`
	Data  []models.ReminderWithAsset `json:"data"`
}

type ReminderScanResponse struct {
	Overdue  int `json:"overdue"`
	Upcoming int `json:"upcoming"`
}
