package services

import (
	"context"

	"gposync/internal/metrics"
	"gposync/internal/models"
	"gposync/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionService struct {
	db  *gorm.DB
	now Clock
}

// SubscriptionChanges is the v2 diff answer.
type SubscriptionChanges struct {
	Add        []string    `json:"add"`
	Remove     []string    `json:"remove"`
	UpdateURLs [][2]string `json:"update_urls"`
	Timestamp  int64       `json:"timestamp"`
}

// List returns the URLs the user is currently subscribed to.
func (s *SubscriptionService) List(ctx context.Context, userID uint) ([]string, error) {
	urls := []string{}
	err := s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND deleted = ?", userID, false).
		Order("id").
		Pluck("url", &urls).Error
	return urls, err
}

// Changes returns the rows touched at or after since, split by state.
func (s *SubscriptionService) Changes(ctx context.Context, userID uint, since int64) (*SubscriptionChanges, error) {
	now := s.now().Unix()

	var subs []models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND changed >= ?", userID, since).
		Order("id").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}

	changes := &SubscriptionChanges{
		Add:        []string{},
		Remove:     []string{},
		UpdateURLs: [][2]string{},
		Timestamp:  now,
	}
	for _, sub := range subs {
		if sub.Deleted {
			changes.Remove = append(changes.Remove, sub.URL)
		} else {
			changes.Add = append(changes.Add, sub.URL)
		}
	}
	return changes, nil
}

// Replace stores a full subscription list. Known URLs are left as they are
// and URLs missing from the list are not removed. One invalid URL rolls the
// whole batch back.
func (s *SubscriptionService) Replace(ctx context.Context, userID uint, urls []string) error {
	now := s.now().Unix()
	var added int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, raw := range urls {
			url, err := utils.ValidateURL(raw)
			if err != nil {
				return err
			}
			sub := models.Subscription{UserID: userID, URL: url, Changed: now}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub)
			if res.Error != nil {
				return res.Error
			}
			added += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.SubscriptionChanges.WithLabelValues("add").Add(float64(added))
	return nil
}

// Apply upserts every added URL as live and every removed URL as deleted,
// stamped with the current time, and returns that time. The last write wins
// whatever its timestamp; removes are applied after adds.
func (s *SubscriptionService) Apply(ctx context.Context, userID uint, add, remove []string) (int64, error) {
	now := s.now().Unix()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, raw := range add {
			if err := upsertSubscription(tx, userID, raw, now, false); err != nil {
				return err
			}
		}
		for _, raw := range remove {
			if err := upsertSubscription(tx, userID, raw, now, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.SubscriptionChanges.WithLabelValues("add").Add(float64(len(add)))
	metrics.SubscriptionChanges.WithLabelValues("remove").Add(float64(len(remove)))
	return now, nil
}

// upsertSubscription overwrites changed and deleted on conflict. The row id
// survives so episode actions stay attached.
func upsertSubscription(tx *gorm.DB, userID uint, raw string, changed int64, deleted bool) error {
	url, err := utils.ValidateURL(raw)
	if err != nil {
		return err
	}
	sub := models.Subscription{UserID: userID, URL: url, Changed: changed, Deleted: deleted}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"changed", "deleted"}),
	}).Create(&sub).Error
}
