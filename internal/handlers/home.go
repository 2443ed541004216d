package handlers

import "github.com/gin-gonic/gin"

// Index renders the public landing page
// GET /
func (a *App) Index(c *gin.Context) {
	a.render(c, "index.html", "Home", nil)
}
