package controllers

import (
	"context"
	"time"

	"fleet/src/schemas"
	"fleet/src/scheduler"
	"fleet/src/utils"
)

const (
	reminderScanTask = "reminder-scan"
	scanTimeout      = time.Minute
)

// RunReminderScan scans reminders once with the controller's logger.
func (c *Controller) RunReminderScan(ctx context.Context) (*schemas.ReminderScanResponse, error) {
	return c.Reminders.Scan(utils.WithLogger(ctx, c.Logger))
}

// LoadReminderScan (re)schedules the periodic reminder scan on ScanCron.
func (c *Controller) LoadReminderScan(ctx context.Context) error {
	return c.Schedule(ctx, reminderScanTask, c.ScanCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()
		if _, err := c.RunReminderScan(ctx); err != nil {
			c.Logger.WithError(err).Error("scheduled reminder scan failed")
		}
	})
}

// Schedule handles the scheduling and re-scheduling of a named task.
func (c *Controller) Schedule(_ context.Context, name string, cronSpec string, taskFunc func()) error {
	// Create the new task first so a bad spec keeps the running one
	newTask, err := scheduler.NewScheduledTask(cronSpec, taskFunc)
	if err != nil {
		return utils.BadRequest("invalid cron spec: " + err.Error())
	}

	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	if existingTask, exists := c.Schedulers[name]; exists {
		existingTask.Cancel()
	}
	c.Schedulers[name] = newTask

	c.Logger.WithField("task", name).Infof("scheduled with %q", cronSpec)
	return nil
}
