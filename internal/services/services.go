// Package services holds the sync engines and account logic on top of gorm.
// Caller mistakes come back as *gpodder.Error; anything else is a storage
// failure and should be answered with a 500.
package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrTokenNotFound   = errors.New("login token not found")
	ErrTokenResolved   = errors.New("login token already resolved")
)

// Clock returns the current time. Tests swap it for a fixed one.
type Clock func() time.Time

type Services struct {
	Users         *UserService
	Logins        *LoginService
	Subscriptions *SubscriptionService
	Episodes      *EpisodeService
	Devices       *DeviceService
}

func New(db *gorm.DB) *Services {
	return NewWithClock(db, time.Now)
}

func NewWithClock(db *gorm.DB, now Clock) *Services {
	users := &UserService{db: db}
	return &Services{
		Users:         users,
		Logins:        &LoginService{db: db, users: users, now: now},
		Subscriptions: &SubscriptionService{db: db, now: now},
		Episodes:      &EpisodeService{db: db, now: now},
		Devices:       &DeviceService{db: db},
	}
}
