package main

import (
	"net/http"
	"time"

	"github.com/consultoria/portal/internal/config"
	"github.com/consultoria/portal/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// newServer wires the router into an http.Server with the configured timeouts.
func newServer(cfg *config.Config, app *handlers.App) (*http.Server, error) {
	gin.SetMode(cfg.Server.Mode)

	router, err := handlers.NewRouter(app, prometheus.DefaultGatherer)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}
