package services

import (
	"context"

	"github.com/consultoria/portal/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	clients  *ClientService
	projects *ProjectService
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		clients:  NewClientService(db),
		projects: NewProjectService(db),
	}
}

type ClientDashboard struct {
	Client   *models.User
	Projects []models.Project
}

type AdminDashboard struct {
	Clients  []models.User
	Projects []models.Project
	Statuses []string
}

// ClientDashboard lists the projects owned by user, who must be a client.
func (s *DashboardService) ClientDashboard(ctx context.Context, user *models.User) (*ClientDashboard, error) {
	if err := RequireRole(user, models.RoleClient); err != nil {
		return nil, err
	}

	projects, err := s.projects.ListByClient(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ClientDashboard{Client: user, Projects: projects}, nil
}

// AdminDashboard lists all clients and all projects, user must be an admin.
func (s *DashboardService) AdminDashboard(ctx context.Context, user *models.User) (*AdminDashboard, error) {
	if err := RequireRole(user, models.RoleAdmin); err != nil {
		return nil, err
	}

	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminDashboard{
		Clients:  clients,
		Projects: projects,
		Statuses: models.ProjectStatuses,
	}, nil
}
