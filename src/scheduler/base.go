package scheduler

import (
	"sync"

	"github.com/robfig/cron/v3"
)

type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
	once   sync.Once
}

// NewScheduledTask starts running taskFunc on cronSpec, a standard five field
// cron expression or a descriptor such as "@every 1h".
func NewScheduledTask(cronSpec string, taskFunc func()) (*ScheduledTask, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	cancel := make(chan struct{})
	task := &ScheduledTask{
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-cancel:
			return
		default:
			taskFunc()
		}
	})
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Next reports the next time the task fires.
func (s *ScheduledTask) Next() string {
	return s.cron.Entry(s.cronID).Next.String()
}

// Cancel stops the task and waits for a running invocation to return.
// It is safe to call more than once.
func (s *ScheduledTask) Cancel() {
	s.once.Do(func() {
		s.cron.Remove(s.cronID)
		close(s.cancel)
		<-s.cron.Stop().Done()
	})
}
