package worker

import (
	"context"
	"net/http"
	"time"

	"fleet/src/config"
	"fleet/src/repositories"
	"fleet/src/services"
	"fleet/src/worker/controllers"
	handlers "fleet/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
}

// NewServer builds the worker and schedules the reminder scan.
func NewServer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *logrus.Logger) (*Server, error) {
	reminders := services.NewReminderService(
		repositories.NewReminderRepository(pool), cfg, services.LoadLocation(cfg.Service.Timezone),
	)
	controller := controllers.NewController(reminders, logger, cfg.Reminders.ScanCron)
	if err := controller.LoadReminderScan(ctx); err != nil {
		return nil, err
	}
	return NewServerWithController(controller), nil
}

func NewServerWithController(controller *controllers.Controller) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(controller),
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.Recoverer)
	s.Router.Get("/alive", s.Handler.Healthcheck)
	s.Router.Route("/api/reminders", func(r chi.Router) {
		r.Post("/scan", s.Handler.ScanReminders)
		r.Post("/schedule", s.Handler.ReloadReminderSchedule)
	})
}

// Stop cancels the scheduled tasks.
func (s *Server) Stop() {
	s.Handler.Controller.Stop()
}

func NewHTTPServer(server *Server, port string) *http.Server {
	if port == "" {
		port = "8000"
	}
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
