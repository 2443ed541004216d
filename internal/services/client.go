package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/consultoria/portal/internal/models"
	"gorm.io/gorm"
)

// ClientService manages client accounts on behalf of administrators.
type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

type CreateClientInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Company   string
}

// CreateClient inserts a client user named "<first> <last>".
func (s *ClientService) CreateClient(ctx context.Context, in CreateClientInput) (*models.User, error) {
	fullName := strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
	return createUser(ctx, s.db, newUserParams{
		Email:    in.Email,
		Name:     fullName,
		Password: in.Password,
		Role:     models.RoleClient,
		Company:  in.Company,
	})
}

// List returns every client account ordered by name.
func (s *ClientService) List(ctx context.Context) ([]models.User, error) {
	var clients []models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleClient).
		Order("name ASC").Order("id ASC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Get returns the client with id, or ErrClientNotFound when the id is
// unknown or belongs to an administrator.
func (s *ClientService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ? AND role = ?", id, models.RoleClient).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes a client. Its projects go with it through the foreign key cascade.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).
		Where("role = ?", models.RoleClient).
		Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}
