package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"gorm.io/gorm"
)

// UserService provides methods to interact with the user directory
type UserService interface {
	// GetAllUsers retrieves every user, newest first (ties broken by id, highest first)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	// GetUserByID retrieves a user by its ID; a nil id is reported as ErrNotFound
	GetUserByID(ctx context.Context, id *uint) (models.User, error)
	// CreateUser validates a candidate and persists it with a system-assigned ID and CreatedAt
	CreateUser(ctx context.Context, candidate models.User) (models.User, error)
	// DeleteUser removes a user by its ID; missing ids are a no-op
	DeleteUser(ctx context.Context, id *uint) error
}

// userService is the implementation of the UserService interface
type userService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db, now: time.Now}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&users).Error
	if err != nil {
		return nil, storeError("list users", err)
	}
	return users, nil
}

func (s *userService) GetUserByID(ctx context.Context, id *uint) (models.User, error) {
	if id == nil {
		return models.User{}, ErrNotFound
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, *id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, storeError("get user", err)
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, candidate models.User) (models.User, error) {
	if errs := ValidateUser(candidate.Name, candidate.Email); len(errs) > 0 {
		return models.User{}, &ValidationError{Errors: errs}
	}

	user := models.User{
		Name:      strings.TrimSpace(candidate.Name),
		Email:     NormalizeEmail(candidate.Email),
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
		IsActive:  true,
	}

	db := s.db.WithContext(ctx)

	// Fast path for a friendly message; the unique index is authoritative.
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return models.User{}, storeError("check email", err)
	}
	if count > 0 {
		return models.User{}, duplicateEmailError()
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, duplicateEmailError()
		}
		return models.User{}, storeError("create user", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if err := s.db.WithContext(ctx).Delete(&models.User{}, *id).Error; err != nil {
		return storeError("delete user", err)
	}
	return nil
}
