package models

import (
	"time"

	"gorm.io/datatypes"
)

// Device is a client registered by a user. Data holds whatever the client
// sent (caption, type, ...) merged over time.
type Device struct {
	ID        uint              `gorm:"primaryKey" json:"-"`
	UserID    uint              `gorm:"not null;uniqueIndex:idx_user_device" json:"-"`
	User      User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DeviceID  string            `gorm:"column:deviceid;size:255;not null;uniqueIndex:idx_user_device" json:"id"`
	Data      datatypes.JSONMap `json:"data"`
	CreatedAt time.Time         `json:"-"`
	UpdatedAt time.Time         `json:"-"`
}
