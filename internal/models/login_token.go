package models

import (
	"time"
)

// LoginToken tracks a NextCloud login flow v2 handshake. It is resolved once
// a user has been attached; that transition never goes back.
type LoginToken struct {
	Token       string     `gorm:"primaryKey;size:40" json:"token"`
	UserID      *uint      `gorm:"index" json:"user_id"`
	User        *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AppPassword string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

func (t *LoginToken) Resolved() bool {
	return t.UserID != nil && t.AppPassword != ""
}
