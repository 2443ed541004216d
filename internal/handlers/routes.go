package handlers

import (
	"fmt"

	"github.com/consultoria/portal/internal/middleware"
	"github.com/consultoria/portal/internal/models"
	"github.com/consultoria/portal/internal/views"
	"github.com/consultoria/portal/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter builds the gin engine with the middleware chain and every route.
func NewRouter(app *App, gatherer prometheus.Gatherer) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		middleware.RequestID(),
		logger.GinLogger(),
		logger.GinRecovery(),
		middleware.Metrics(),
		middleware.LoadSession(app.Sessions, app.Auth, app.Cookie),
	)

	r.GET("/health", app.CheckHealth)
	r.GET("/metrics", Metrics(gatherer))

	authHandler := NewAuthHandler(app)
	r.GET("/", app.Index)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", app.Limiter.Middleware("/login"), authHandler.Login)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", middleware.LoginRequired(), authHandler.Logout)

	client := r.Group("")
	client.Use(middleware.RoleRequired(models.RoleClient))
	{
		dashboardHandler := NewDashboardHandler(app)
		client.GET("/dashboard", dashboardHandler.ClientDashboard)
	}

	admin := r.Group("")
	admin.Use(middleware.RoleRequired(models.RoleAdmin), middleware.AuditLog())
	{
		adminHandler := NewAdminHandler(app)
		admin.GET("/admin", adminHandler.Dashboard)
		admin.POST("/create_client", adminHandler.CreateClient)
		admin.POST("/create_project", adminHandler.CreateProject)
	}

	return r, nil
}
