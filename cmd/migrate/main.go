// Command migrate creates the usuarios and historico tables and exits.
package main

import (
	"flag"
	"log"

	"github.com/lexpaixao/WaterQuality/config"
	"github.com/lexpaixao/WaterQuality/repository"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger(cfg.Logging)

	db, err := config.OpenDatabase(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	repo := repository.New(db)
	defer func() {
		if err := repo.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
		logger.Info("Connection closed")
	}()

	if err := repo.Migrate(); err != nil {
		logger.WithError(err).Error("Failed to create tables")
		return
	}
	logger.Info("Tables created")
}
