package handlers

import (
	"github.com/consultoria/portal/internal/metrics"
	"github.com/consultoria/portal/internal/middleware"
	"github.com/consultoria/portal/internal/services"
	"github.com/consultoria/portal/pkg/logger"
	"github.com/consultoria/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*App
}

func NewAdminHandler(app *App) *AdminHandler {
	return &AdminHandler{App: app}
}

type createClientForm struct {
	FirstName string `form:"first_name" binding:"required,max=50"`
	LastName  string `form:"last_name" binding:"max=49"`
	Email     string `form:"email" binding:"required,email,max=100"`
	Password  string `form:"password" binding:"required,max=72"`
	Company   string `form:"company" binding:"max=100"`
}

type createProjectForm struct {
	ProjectName string `form:"project_name" binding:"required,max=200"`
	Status      string `form:"status" binding:"max=50"`
	StartDate   string `form:"start_date"`
	ClientID    uint   `form:"client_id" binding:"required,gt=0"`
}

// Dashboard lists every client and every project
// GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	view, err := h.Views.AdminDashboard(c.Request.Context(), middleware.GetUser(c))
	if err != nil {
		fail(c, "/", err)
		return
	}
	h.render(c, "admin.html", "Admin", gin.H{"Dashboard": view})
}

// CreateClient adds a client account
// POST /create_client
func (h *AdminHandler) CreateClient(c *gin.Context) {
	var form createClientForm
	if err := c.ShouldBind(&form); err != nil {
		response.RedirectWithError(c, "/admin", bindingMessage(err))
		return
	}

	client, err := h.Clients.CreateClient(c.Request.Context(), services.CreateClientInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
		Company:   form.Company,
	})
	if err != nil {
		fail(c, "/admin", err)
		return
	}

	metrics.ClientsCreatedTotal.WithLabelValues("admin").Inc()
	logger.FromGin(c).Info().
		Uint("admin_id", middleware.GetUserID(c)).
		Uint("client_id", client.ID).
		Msg("client created")
	response.RedirectWithSuccess(c, "/admin", MsgClientCreated)
}

// CreateProject assigns a new project to a client
// POST /create_project
func (h *AdminHandler) CreateProject(c *gin.Context) {
	var form createProjectForm
	if err := c.ShouldBind(&form); err != nil {
		response.RedirectWithError(c, "/admin", bindingMessage(err))
		return
	}

	project, err := h.Projects.Create(c.Request.Context(), services.CreateProjectInput{
		Name:      form.ProjectName,
		Status:    form.Status,
		StartDate: form.StartDate,
		ClientID:  form.ClientID,
	})
	if err != nil {
		fail(c, "/admin", err)
		return
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(metrics.ProjectStatusLabel(project.Status)).Inc()
	logger.FromGin(c).Info().
		Uint("admin_id", middleware.GetUserID(c)).
		Uint("project_id", project.ID).
		Uint("client_id", project.ClientID).
		Msg("project created")
	response.RedirectWithSuccess(c, "/admin", MsgProjectCreated)
}
