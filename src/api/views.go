package api

import (
	"net/http"
	"time"

	handlers "fleet/src/api/handlers"
	"fleet/src/config"
	redis_utils "fleet/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	TokenAuth *jwtauth.JWTAuth
	Logger    *logrus.Logger
}

func NewTokenAuth(cfg *config.Config) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)
}

func NewServer(cfg *config.Config, pool *pgxpool.Pool, cache *redis_utils.RedisHandler, logger *logrus.Logger) *Server {
	tokenAuth := NewTokenAuth(cfg)
	svcs := handlers.NewServices(cfg, pool, tokenAuth, cache)
	return NewServerWithHandler(
		handlers.NewHandler(svcs, logger, cfg.Uploads.MaxUploadMB<<20, time.Duration(cfg.Reports.TimeoutSecs)*time.Second),
		tokenAuth,
		logger,
	)
}

// NewServerWithHandler routes requests to an already built handler.
func NewServerWithHandler(h *handlers.Handler, tokenAuth *jwtauth.JWTAuth, logger *logrus.Logger) *Server {
	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   h,
		TokenAuth: tokenAuth,
		Logger:    logger,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(RequestLogger(s.Logger))
	s.Router.Use(middleware.Recoverer)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Post("/api/auth/login", s.Handler.Login)
	s.Router.Post("/api/users/register", s.Handler.Register)

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.TokenAuth))
		r.Use(Authenticator)

		r.Get("/api/auth/me", s.Handler.Me)

		r.Route("/api/users", func(r chi.Router) {
			r.Get("/{id}", s.Handler.GetUserByID)
			r.Patch("/{id}", s.Handler.UpdateUser)
			r.Delete("/{id}", s.Handler.DeleteUser)
		})

		r.Route("/api/vehicles", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllVehicles)
			r.Post("/", s.Handler.CreateVehicle)
			r.Post("/bulk", s.Handler.BulkCreateVehicles)
			r.Post("/bulk-delete", s.Handler.BulkDeleteVehicles)
			r.Post("/import", s.Handler.ImportVehicles)
			r.Get("/{id}", s.Handler.GetVehicleByID)
			r.Patch("/{id}", s.Handler.UpdateVehicle)
			r.Delete("/{id}", s.Handler.DeleteVehicle)
		})

		r.Route("/api/chassises", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllChassis)
			r.Post("/", s.Handler.CreateChassis)
			r.Post("/bulk-delete", s.Handler.BulkDeleteChassis)
			r.Get("/{id}", s.Handler.GetChassisByID)
			r.Patch("/{id}", s.Handler.UpdateChassis)
			r.Delete("/{id}", s.Handler.DeleteChassis)
		})

		r.Route("/api/equipments", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllEquipments)
			r.Post("/", s.Handler.CreateEquipment)
			r.Post("/bulk-delete", s.Handler.BulkDeleteEquipments)
			r.Get("/{id}", s.Handler.GetEquipmentByID)
			r.Patch("/{id}", s.Handler.UpdateEquipment)
			r.Delete("/{id}", s.Handler.DeleteEquipment)
		})

		r.Route("/api/reminders", func(r chi.Router) {
			r.Get("/", s.Handler.GetReminders)
			r.Post("/scan", s.Handler.ScanReminders)
			r.Post("/{id}/done", s.Handler.MarkReminderDone)
		})

		r.Route("/api/spareparts", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllSpareparts)
			r.Post("/", s.Handler.CreateSparepart)
			r.Get("/usage", s.Handler.GetSparepartUsage)
			r.Get("/{id}", s.Handler.GetSparepartByID)
			r.Put("/{id}", s.Handler.UpdateSparepart)
			r.Delete("/{id}", s.Handler.DeleteSparepart)
		})

		r.Route("/api/maintenances", func(r chi.Router) {
			r.Post("/", s.Handler.CreateMaintenance)
			r.Get("/me", s.Handler.GetMyMaintenances)
			r.Get("/pdf", s.Handler.ExportMaintenancePDF)
			r.Get("/asset/{assetId}", s.Handler.GetMaintenancesByAsset)
			r.Get("/{id}", s.Handler.GetMaintenanceByID)
			r.Put("/{id}", s.Handler.UpdateMaintenance)
			r.Delete("/{id}", s.Handler.DeleteMaintenance)
		})

		r.Route("/api/drivers", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllDrivers)
			r.Post("/", s.Handler.CreateDriver)
		})

		r.Get("/api/dashboard/summary", s.Handler.GetDashboardSummary)

		r.Post("/api/uploads", s.Handler.Upload)
		r.Get("/api/uploads/*", s.Handler.ServeUpload)
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	if port == "" {
		port = "8000"
	}
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		Handler:      server,
	}
	return httpServer
}
