// Command WaterQuality serves the potability API: user registration and
// login, evaluation of water readings against fixed thresholds, and the
// per-user history of evaluations.
//
// Usage:
//
//	WaterQuality [-config config.yaml]
//
// Settings come from the optional YAML file, a .env file and the
// environment (PORT, DATABASE_URL, DATABASE_DRIVER, JWT_SECRET, ...).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/lexpaixao/WaterQuality/config"
	"github.com/lexpaixao/WaterQuality/controllers"
	"github.com/lexpaixao/WaterQuality/middlewares"
	"github.com/lexpaixao/WaterQuality/repository"
	"github.com/lexpaixao/WaterQuality/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Logging)
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDatabase(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	repo, err := repository.Open(db)
	if err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	defer repo.Close()
	logger.WithField("driver", cfg.Database.Driver).Info("Connected to database")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middlewares.NewMetrics(registry)

	auth := utils.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handler := controllers.NewHandler(repo, auth, logger, metrics)
	router := controllers.NewRouter(handler, controllers.RouterOptions{
		CORSOrigins: cfg.Server.CORSOrigins,
		LoginRate:   cfg.Auth.LoginRate,
		LoginBurst:  cfg.Auth.LoginBurst,
		Gatherer:    registry,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		logger.WithError(err).Error("Server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
	logger.Info("Server stopped")
}
