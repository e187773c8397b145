package cmd

import (
	"fmt"

	"github.com/AyaBm214/PremiumConnect/internal/config"
	"github.com/AyaBm214/PremiumConnect/internal/db"
	"github.com/AyaBm214/PremiumConnect/internal/logger"
	"github.com/jmoiron/sqlx"
)

// openDB loads the configuration and connects to the record store.
func openDB() (*config.Config, *sqlx.DB, error) {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, database, nil
}
