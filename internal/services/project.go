package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/consultoria/portal/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db      *gorm.DB
	clients *ClientService
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db, clients: NewClientService(db)}
}

type CreateProjectInput struct {
	Name      string
	Status    string
	StartDate string // YYYY-MM-DD, empty for none
	ClientID  uint
}

// ParseStartDate parses the form value of a start date. An empty value means no date.
func ParseStartDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(models.StartDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, value)
	}
	return &t, nil
}

// Create assigns a new project to an existing client.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	startDate, err := ParseStartDate(in.StartDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.clients.Get(ctx, in.ClientID); err != nil {
		return nil, err
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.StatusPending
	}

	project := models.Project{
		Name:      name,
		Status:    status,
		StartDate: startDate,
		ClientID:  in.ClientID,
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// ListByClient returns the projects owned by clientID.
func (s *ProjectService) ListByClient(ctx context.Context, clientID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects for client %d: %w", clientID, err)
	}
	return projects, nil
}

// ListAll returns every project with its client joined in, newest start date
// first and undated projects last.
func (s *ProjectService) ListAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Joins("Client").
		Order("projects.start_date IS NULL").
		Order("projects.start_date DESC").
		Order("projects.id DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Count returns the number of stored projects.
func (s *ProjectService) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error
	return total, err
}
