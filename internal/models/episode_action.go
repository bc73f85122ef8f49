package models

import (
	"gorm.io/datatypes"
)

// EpisodeAction is one entry of the append-only action log.
type EpisodeAction struct {
	ID             uint              `gorm:"primaryKey" json:"-"`
	UserID         uint              `gorm:"not null;index:idx_action_user_changed" json:"-"`
	User           User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	SubscriptionID uint              `gorm:"not null;index" json:"-"`
	Subscription   Subscription      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	URL            string            `gorm:"not null" json:"episode"`
	Changed        int64             `gorm:"not null;index:idx_action_user_changed" json:"-"` // unix seconds
	Action         string            `gorm:"size:50;not null" json:"action"`
	Data           datatypes.JSONMap `json:"-"`
}
