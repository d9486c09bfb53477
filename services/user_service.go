package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nmdong/VietThanhProductions/model"
	"gorm.io/gorm"
)

// UserService is the credential store behind the auth endpoints. It only
// creates and reads users; there is no rename, update or delete.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser inserts a user and returns its id. The existence check up front
// gives the common case a clean error; the unique index on username is what
// keeps two concurrent registrations from both succeeding.
func (s *UserService) CreateUser(ctx context.Context, username, passwordHash string, email *string) (uint, error) {
	if _, err := s.FindByUsername(ctx, username); err == nil {
		return 0, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return 0, err
	}

	user := model.User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	return user.ID, nil
}

// FindByUsername looks a user up by its unique username
func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// FindByID looks a user up by id
func (s *UserService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}
