package handlers

import (
	"github.com/consultoria/portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	*App
}

func NewDashboardHandler(app *App) *DashboardHandler {
	return &DashboardHandler{App: app}
}

// ClientDashboard lists the projects of the logged in client
// GET /dashboard
func (h *DashboardHandler) ClientDashboard(c *gin.Context) {
	view, err := h.Views.ClientDashboard(c.Request.Context(), middleware.GetUser(c))
	if err != nil {
		fail(c, "/", err)
		return
	}
	h.render(c, "dashboard.html", "Dashboard", gin.H{"Dashboard": view})
}
