package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/consultoria/portal/internal/models"
	"github.com/consultoria/portal/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// AdminSeed describes the bootstrap administrator.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
	Company  string
}

// Register creates a self-service client account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return createUser(ctx, s.db, newUserParams{
		Email:    in.Email,
		Name:     in.Name,
		Password: in.Password,
		Role:     models.RoleClient,
	})
}

// Authenticate returns the user owning email when password matches its hash.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUserByID resolves the user behind a session.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists seeds the bootstrap admin when its email is unused.
func (s *AuthService) CreateAdminIfNotExists(ctx context.Context, seed AdminSeed) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", normalizeEmail(seed.Email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err := createUser(ctx, s.db, newUserParams{
		Email:    seed.Email,
		Name:     seed.Name,
		Password: seed.Password,
		Role:     models.RoleAdmin,
		Company:  seed.Company,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RequireRole admits user only when it holds exactly role.
func RequireRole(user *models.User, role models.Role) error {
	if user == nil {
		return ErrNotFound
	}
	switch user.Role {
	case models.RoleAdmin, models.RoleClient:
		if user.Role == role {
			return nil
		}
		return ErrUnauthorized
	default:
		return ErrUnauthorized
	}
}

type newUserParams struct {
	Email    string
	Name     string
	Password string
	Role     models.Role
	Company  string
}

func createUser(ctx context.Context, db *gorm.DB, p newUserParams) (*models.User, error) {
	email := normalizeEmail(p.Email)
	name := strings.TrimSpace(p.Name)
	if email == "" || name == "" || p.Password == "" || !p.Role.Valid() {
		return nil, ErrInvalidInput
	}
	// column sizes of users.email and users.name
	if utf8.RuneCountInString(email) > 100 || utf8.RuneCountInString(name) > 100 {
		return nil, ErrInvalidInput
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hashed, err := utils.HashPassword(p.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		Name:     name,
		Role:     p.Role,
	}
	if company := strings.TrimSpace(p.Company); company != "" {
		user.Company = &company
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		// a concurrent insert can still win the race past the count above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
