package schemas

type DashboardSummary struct {
	TotalTodayMaintenances     int `json:"total_today_maintenances"`
	TotalThisMonthMaintenances int `json:"total_this_month_maintenances"`
	TotalActiveUsers           int `json:"total_active_users"`
	TotalSpareparts            int `json:"total_spareparts"`
	OverdueReminders           int `json:"overdue_reminders"`
	UpcomingReminders          int `json:"upcoming_reminders"`
}
