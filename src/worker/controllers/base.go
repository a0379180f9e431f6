package controllers

import (
	"context"
	"sync"

	"fleet/src/schemas"
	"fleet/src/scheduler"

	"github.com/sirupsen/logrus"
)

// ReminderScanner is the reminder operation the worker runs on schedule.
type ReminderScanner interface {
	Scan(ctx context.Context) (*schemas.ReminderScanResponse, error)
}

type Controller struct {
	Reminders      ReminderScanner
	Logger         *logrus.Logger
	ScanCron       string
	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
}

func NewController(reminders ReminderScanner, logger *logrus.Logger, scanCron string) *Controller {
	return &Controller{
		Reminders:      reminders,
		Logger:         logger,
		ScanCron:       scanCron,
		SchedulerMutex: sync.Mutex{},
		Schedulers:     map[string]*scheduler.ScheduledTask{},
	}
}

func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	out := make(map[string]*scheduler.ScheduledTask, len(c.Schedulers))
	for k, v := range c.Schedulers {
		out[k] = v
	}
	return out
}

// Stop cancels every scheduled task.
func (c *Controller) Stop() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	for name, task := range c.Schedulers {
		task.Cancel()
		delete(c.Schedulers, name)
	}
}
