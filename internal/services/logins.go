package services

import (
	"context"
	"errors"
	"fmt"

	"gposync/internal/gpodder"
	"gposync/internal/logging"
	"gposync/internal/metrics"
	"gposync/internal/models"
	"gposync/internal/utils"

	"gorm.io/gorm"
)

// LoginService drives the NextCloud login flow v2: a client starts a
// handshake, a human completes it elsewhere (Resolve), and the client polls
// until the token carries credentials.
type LoginService struct {
	db    *gorm.DB
	users *UserService
	now   Clock
}

func (s *LoginService) Start(ctx context.Context) (*models.LoginToken, error) {
	token, err := utils.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate login token: %w", err)
	}

	login := models.LoginToken{Token: token, CreatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&login).Error; err != nil {
		return nil, err
	}

	metrics.LoginHandshakes.WithLabelValues("start").Inc()
	logging.Debug().Str("token", token[:8]).Msg("login handshake started")
	return &login, nil
}

// Poll returns the resolved token with its user. Reads never change the
// token, so a client may poll a resolved token any number of times.
func (s *LoginService) Poll(ctx context.Context, token string) (*models.LoginToken, error) {
	if !utils.IsAlphanumeric(token) {
		return nil, gpodder.BadRequest("Invalid ID")
	}

	var login models.LoginToken
	err := s.db.WithContext(ctx).Preload("User").Where("token = ?", token).First(&login).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gpodder.NotFound("Not logged in yet")
	}
	if err != nil {
		return nil, err
	}
	if !login.Resolved() || login.User == nil {
		return nil, gpodder.NotFound("Not logged in yet")
	}

	metrics.LoginHandshakes.WithLabelValues("poll").Inc()
	return &login, nil
}

// Resolve attaches a user and a derived app password to a pending token.
// A resolved token is never changed again.
func (s *LoginService) Resolve(ctx context.Context, token, userName string) (*models.LoginToken, error) {
	user, err := s.users.FindByName(ctx, userName)
	if err != nil {
		return nil, err
	}

	resolvedAt := s.now()
	res := s.db.WithContext(ctx).
		Model(&models.LoginToken{}).
		Where("token = ? AND user_id IS NULL", token).
		Updates(map[string]any{
			"user_id":      user.ID,
			"app_password": utils.AppPassword(user.Password, token),
			"resolved_at":  resolvedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.LoginToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrTokenNotFound
		}
		return nil, ErrTokenResolved
	}

	metrics.LoginHandshakes.WithLabelValues("resolve").Inc()
	logging.Info().Str("user", user.Name).Msg("login handshake resolved")

	var login models.LoginToken
	if err := s.db.WithContext(ctx).Preload("User").Where("token = ?", token).First(&login).Error; err != nil {
		return nil, err
	}
	return &login, nil
}

// List returns all handshake tokens, newest first.
func (s *LoginService) List(ctx context.Context) ([]models.LoginToken, error) {
	var logins []models.LoginToken
	err := s.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&logins).Error
	return logins, err
}
