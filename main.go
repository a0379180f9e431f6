package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet/src/api"
	"fleet/src/config"
	"fleet/src/database"
	"fleet/src/utils"
	aws_handler "fleet/src/utils/aws"
	redis_utils "fleet/src/utils/redis"
	"fleet/src/worker"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Fatal("Error while loading config")
	}
	logger := utils.NewLogger(utils.ParseLevel(cfg.Logging.Level), cfg.Logging.ToFile, cfg.Logging.FilePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("Error while running")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	if cfg.Secrets.AWSRegion != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.Secrets.AWSRegion)
		if err != nil {
			return err
		}
		if err := awsHandler.SecretManager.ApplySecrets(ctx, cfg); err != nil {
			return err
		}
	}

	pool, err := database.SetupDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	var httpServer *http.Server
	var cleanup func()
	if cfg.Service.Type == config.WORKER {
		server, err := worker.NewServer(ctx, cfg, pool, logger)
		if err != nil {
			return err
		}
		httpServer = worker.NewHTTPServer(server, cfg.Service.Port)
		cleanup = server.Stop
	} else {
		var cache *redis_utils.RedisHandler
		if cfg.Databases.Redis.Host != "" {
			cache, err = redis_utils.NewRedisHandler(ctx, cfg)
			if err != nil {
				return err
			}
			defer cache.Close()
		}
		server := api.NewServer(cfg, pool, cache, logger)
		httpServer = api.NewHTTPServer(server, cfg.Service.Port)
		cleanup = func() {}
	}

	errC := make(chan error, 1)
	go func() {
		logger.Infof("Starting %s server on %s", cfg.Service.Type, httpServer.Addr)

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		cleanup()
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	cleanup()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
