package services

import (
	"context"
	"time"

	"fleet/src/repositories"
	"fleet/src/schemas"
	"fleet/src/utils"
	redis_utils "fleet/src/utils/redis"
)

const dashboardCacheKey = "dashboard:summary"

// SummaryCache stores the last computed dashboard summary.
type SummaryCache interface {
	Get(ctx context.Context) (*schemas.DashboardSummary, bool)
	Set(ctx context.Context, summary *schemas.DashboardSummary, ttl time.Duration)
	Clear(ctx context.Context)
}

type memorySummaryCache struct {
	cache *utils.Cache[*schemas.DashboardSummary]
}

func NewMemorySummaryCache() SummaryCache {
	return &memorySummaryCache{cache: utils.NewCache[*schemas.DashboardSummary]()}
}

func (c *memorySummaryCache) Get(_ context.Context) (*schemas.DashboardSummary, bool) {
	return c.cache.Get()
}

func (c *memorySummaryCache) Set(_ context.Context, summary *schemas.DashboardSummary, ttl time.Duration) {
	c.cache.Set(summary, ttl)
}

func (c *memorySummaryCache) Clear(_ context.Context) {
	c.cache.Clear()
}

type redisSummaryCache struct {
	redis *redis_utils.RedisHandler
}

// NewRedisSummaryCache shares the summary between API replicas.
func NewRedisSummaryCache(handler *redis_utils.RedisHandler) SummaryCache {
	return &redisSummaryCache{redis: handler}
}

func (c *redisSummaryCache) Get(ctx context.Context) (*schemas.DashboardSummary, bool) {
	var summary schemas.DashboardSummary
	found, err := c.redis.Get(ctx, dashboardCacheKey, &summary)
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("dashboard cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &summary, true
}

func (c *redisSummaryCache) Set(ctx context.Context, summary *schemas.DashboardSummary, ttl time.Duration) {
	if err := c.redis.Set(ctx, dashboardCacheKey, summary, ttl); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("dashboard cache write failed")
	}
}

func (c *redisSummaryCache) Clear(ctx context.Context) {
	if err := c.redis.Delete(ctx, dashboardCacheKey); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("dashboard cache delete failed")
	}
}

type DashboardService struct {
	maintenances repositories.MaintenanceRepository
	users        repositories.UserRepository
	spareparts   repositories.SparepartRepository
	reminders    repositories.ReminderRepository
	cache        SummaryCache
	ttl          time.Duration
	leadDays     int
	loc          *time.Location
	now          Clock
}

func NewDashboardService(
	maintenances repositories.MaintenanceRepository,
	users repositories.UserRepository,
	spareparts repositories.SparepartRepository,
	reminders repositories.ReminderRepository,
	cache SummaryCache,
	ttl time.Duration,
	leadDays int,
	loc *time.Location,
) *DashboardService {
	return &DashboardService{
		maintenances: maintenances,
		users:        users,
		spareparts:   spareparts,
		reminders:    reminders,
		cache:        cache,
		ttl:          ttl,
		leadDays:     leadDays,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *DashboardService) SetClock(now Clock) {
	s.now = now
}

// Invalidate drops the cached summary so the next read recomputes it.
func (s *DashboardService) Invalidate() {
	s.cache.Clear(context.Background())
}

func (s *DashboardService) Summary(ctx context.Context) (*schemas.DashboardSummary, error) {
	if summary, ok := s.cache.Get(ctx); ok {
		return summary, nil
	}

	now := s.now()
	dayStart, dayEnd := utils.StartOfDay(now, s.loc), utils.EndOfDay(now, s.loc)
	monthStart, _ := utils.MonthToDate(now, s.loc)
	today := utils.DateOnly(now.In(s.loc))

	var summary schemas.DashboardSummary
	var err error
	if summary.TotalTodayMaintenances, err = s.maintenances.CountCreatedBetween(ctx, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if summary.TotalThisMonthMaintenances, err = s.maintenances.CountCreatedBetween(ctx, monthStart, dayEnd); err != nil {
		return nil, err
	}
	if summary.TotalActiveUsers, err = s.users.CountActive(ctx); err != nil {
		return nil, err
	}
	if summary.TotalSpareparts, err = s.spareparts.Count(ctx); err != nil {
		return nil, err
	}
	if summary.OverdueReminders, err = s.reminders.CountOverdue(ctx, today); err != nil {
		return nil, err
	}
	if summary.UpcomingReminders, err = s.reminders.CountUpcoming(ctx, today, today.AddDate(0, 0, s.leadDays)); err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		s.cache.Set(ctx, &summary, s.ttl)
	}
	return &summary, nil
}
