package handlers

import (
	"net/http"
	"time"

	"github.com/consultoria/portal/internal/config"
	"github.com/consultoria/portal/internal/middleware"
	"github.com/consultoria/portal/internal/services"
	"github.com/consultoria/portal/internal/utils"
	"github.com/consultoria/portal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App carries everything a request needs. It is built once at startup and
// shared by all handlers.
type App struct {
	DB       *gorm.DB
	Config   *config.Config
	Auth     *services.AuthService
	Clients  *services.ClientService
	Projects *services.ProjectService
	Views    *services.DashboardService
	Sessions *utils.SessionTokens
	Cookie   middleware.SessionCookie
	Limiter  *middleware.RateLimiter
}

func NewApp(db *gorm.DB, cfg *config.Config) *App {
	RegisterFormValidation()

	return &App{
		DB:       db,
		Config:   cfg,
		Auth:     services.NewAuthService(db),
		Clients:  services.NewClientService(db),
		Projects: services.NewProjectService(db),
		Views:    services.NewDashboardService(db),
		Sessions: utils.NewSessionTokens(cfg.Session.Secret, time.Duration(cfg.Session.ExpireHour)*time.Hour),
		Cookie: middleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		},
		Limiter: middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst),
	}
}

// render executes a page with the data every layout needs: title, the
// session user and pending flashes.
func (a *App) render(c *gin.Context, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Flashes"] = response.Flashes(c)
	if user := middleware.GetUser(c); user != nil {
		data["User"] = user
	}
	c.HTML(http.StatusOK, name, data)
}
