package models

// Subscription is a feed URL followed by a user. Rows are soft-deleted so
// that removals show up in diff sync.
type Subscription struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_user_url" json:"-"`
	User    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	URL     string `gorm:"not null;uniqueIndex:idx_user_url" json:"url"`
	Changed int64  `gorm:"not null;index" json:"changed"` // unix seconds
	Deleted bool   `gorm:"not null" json:"deleted"`
}
