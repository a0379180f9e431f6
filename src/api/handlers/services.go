package handlers

import (
	"time"

	"fleet/src/config"
	"fleet/src/repositories"
	"fleet/src/services"
	redis_utils "fleet/src/utils/redis"
	"fleet/src/utils/render"

	"github.com/go-chi/jwtauth"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewServices builds every service over pool. The dashboard summary is cached
// in redis when a handler is given, in process memory otherwise.
func NewServices(cfg *config.Config, pool *pgxpool.Pool, tokenAuth *jwtauth.JWTAuth, cache *redis_utils.RedisHandler) Services {
	loc := services.LoadLocation(cfg.Service.Timezone)
	txm := repositories.NewTxManager(pool)

	assetRepo := repositories.NewAssetRepository(pool)
	vehicleRepo := repositories.NewVehicleRepository(pool)
	chassisRepo := repositories.NewChassisRepository(pool)
	equipmentRepo := repositories.NewEquipmentRepository(pool)
	reminderRepo := repositories.NewReminderRepository(pool)
	sparepartRepo := repositories.NewSparepartRepository(pool)
	maintenanceRepo := repositories.NewMaintenanceRepository(pool)
	driverRepo := repositories.NewDriverRepository(pool)
	userRepo := repositories.NewUserRepository(pool)

	codes := services.NewCodeGenerator(repositories.NewCodeRepository(pool), cfg)
	reminders := services.NewReminderService(reminderRepo, cfg, loc)
	vehicles := services.NewVehicleService(assetRepo, vehicleRepo, reminderRepo, reminders, codes, txm)

	summaryCache := services.NewMemorySummaryCache()
	if cache != nil {
		summaryCache = services.NewRedisSummaryCache(cache)
	}
	dashboard := services.NewDashboardService(
		maintenanceRepo, userRepo, sparepartRepo, reminderRepo, summaryCache,
		time.Duration(cfg.Dashboard.CacheTTLSeconds)*time.Second, cfg.Reminders.LeadDays, loc,
	)

	maintenances := services.NewMaintenanceService(maintenanceRepo, sparepartRepo, assetRepo, codes, txm)
	reminders.OnChange(dashboard.Invalidate)
	maintenances.OnChange(dashboard.Invalidate)
	users := services.NewUserService(userRepo, tokenAuth, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	users.OnChange(dashboard.Invalidate)

	return Services{
		Vehicles:     vehicles,
		Chassis:      services.NewChassisService(assetRepo, chassisRepo, reminderRepo, reminders, codes, txm),
		Equipments:   services.NewEquipmentService(assetRepo, equipmentRepo, codes, txm),
		Reminders:    reminders,
		Spareparts:   services.NewSparepartService(sparepartRepo, loc),
		Maintenances: maintenances,
		Drivers:      services.NewDriverService(driverRepo),
		Users:        users,
		Dashboard:    dashboard,
		Imports:      services.NewImportService(vehicles),
		Reports: services.NewReportService(
			maintenanceRepo, vehicleRepo, chassisRepo, equipmentRepo,
			render.NewEngine(cfg.Reports.Engine, cfg.Reports.ChromeBin),
			cfg.Reports.TemplatesDir, time.Duration(cfg.Reports.TimeoutSecs)*time.Second, loc,
		),
		Uploads: services.NewUploadService(cfg.Uploads.Dir),
	}
}
