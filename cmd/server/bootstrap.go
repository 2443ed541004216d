package main

import (
	"context"
	"fmt"

	"github.com/consultoria/portal/internal/config"
	"github.com/consultoria/portal/internal/handlers"
	"github.com/consultoria/portal/internal/metrics"
	"github.com/consultoria/portal/internal/models"
	"github.com/consultoria/portal/internal/services"
	"github.com/consultoria/portal/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	gormlogger "gorm.io/gorm/logger"
)

// bootstrap opens the database, migrates the schema, seeds the admin
// account and builds the App.
func bootstrap(ctx context.Context, cfg *config.Config) (*handlers.App, error) {
	gormLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}

	db, err := models.Open(&cfg.Database, gormLevel)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := metrics.RegisterDBStats(prometheus.DefaultRegisterer, sqlDB); err != nil {
			logger.Warn().Err(err).Msg("Failed to register database metrics")
		}
	}

	app := handlers.NewApp(db, cfg)

	created, err := app.Auth.CreateAdminIfNotExists(ctx, services.AdminSeed{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
		Company:  cfg.Admin.Company,
	})
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if created {
		logger.Warn().
			Str("email", cfg.Admin.Email).
			Msg("Created default admin account with development credentials, change the password before going to production")
	}

	if cfg.Session.Secret == config.DefaultSessionSecret {
		logger.Warn().Msg("Using the default session secret, set SESSION_SECRET in production")
	}

	return app, nil
}

// shutdown releases the database pool.
func shutdown(app *handlers.App) {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close database")
	}
}
