package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gposync/internal/logging"
	"gposync/internal/models"
	"gposync/internal/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func (s *UserService) FindByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks a name/password pair against the bcrypt hash.
func (s *UserService) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	user, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		logging.Info().Str("user", name).Msg("login rejected")
		return nil, ErrInvalidPassword
	}
	return user, nil
}

// AuthenticateAppPassword checks the "token:hash" password NextCloud clients
// send instead of the account password.
func (s *UserService) AuthenticateAppPassword(ctx context.Context, name, appPassword string) (*models.User, error) {
	user, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !utils.CheckAppPassword(user.Password, appPassword) {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, name, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("user name must not be empty")
	}
	if password == "" {
		return nil, errors.New("password must not be empty")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: name, Password: hash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", name, err)
	}
	logging.Info().Str("user", name).Uint("user_id", user.ID).Msg("user created")
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("name").Find(&users).Error
	return users, err
}

// Delete removes a user; devices, subscriptions, actions and login tokens
// go with it through the foreign keys.
func (s *UserService) Delete(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	logging.Info().Str("user", name).Msg("user deleted")
	return nil
}
