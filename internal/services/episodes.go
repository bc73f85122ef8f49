package services

import (
	"context"
	"strings"
	"time"

	"gposync/internal/gpodder"
	"gposync/internal/logging"
	"gposync/internal/metrics"
	"gposync/internal/models"
	"gposync/internal/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// timestamp layouts accepted from clients; zone-less ones are UTC
var actionTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type EpisodeService struct {
	db  *gorm.DB
	now Clock
}

type EpisodeChanges struct {
	Timestamp int64            `json:"timestamp"`
	Actions   []map[string]any `json:"actions"`
}

type actionRow struct {
	URL     string
	Action  string
	Changed int64
	Data    datatypes.JSONMap
	Podcast string
}

// Since returns the user's actions changed at or after since, optionally
// limited to one podcast.
func (s *EpisodeService) Since(ctx context.Context, userID uint, since int64, podcast string) (*EpisodeChanges, error) {
	now := s.now().Unix()

	q := s.db.WithContext(ctx).
		Table("episode_actions AS e").
		Select("e.url, e.action, e.changed, e.data, s.url AS podcast").
		Joins("JOIN subscriptions s ON s.id = e.subscription_id").
		Where("e.user_id = ? AND e.changed >= ?", userID, since)
	if podcast != "" {
		q = q.Where("s.url = ?", utils.NormalizeURL(podcast))
	}

	var rows []actionRow
	if err := q.Order("e.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	actions := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		action := utils.StripKeys(row.Data)
		action["podcast"] = row.Podcast
		action["episode"] = row.URL
		action["action"] = row.Action
		action["timestamp"] = time.Unix(row.Changed, 0).UTC().Format(time.RFC3339)
		actions = append(actions, action)
	}

	return &EpisodeChanges{Timestamp: now, Actions: actions}, nil
}

// Ingest appends a batch of actions in one transaction and returns the batch
// time. Podcasts the user has no subscription row for are subscribed to.
func (s *EpisodeService) Ingest(ctx context.Context, userID uint, actions []map[string]any) (int64, error) {
	batch := s.now().Unix()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range actions {
			podcast, err := requiredString(a, "podcast")
			if err != nil {
				return err
			}
			episode, err := requiredString(a, "episode")
			if err != nil {
				return err
			}
			kind, err := requiredString(a, "action")
			if err != nil {
				return err
			}

			if podcast, err = utils.ValidateURL(podcast); err != nil {
				return err
			}
			if episode, err = utils.ValidateURL(episode); err != nil {
				return err
			}

			var sub models.Subscription
			err = tx.Where(models.Subscription{UserID: userID, URL: podcast}).
				Attrs(models.Subscription{Changed: batch}).
				FirstOrCreate(&sub).Error
			if err != nil {
				return err
			}

			row := models.EpisodeAction{
				UserID:         userID,
				SubscriptionID: sub.ID,
				URL:            episode,
				Changed:        actionTime(a["timestamp"], batch),
				Action:         strings.ToLower(kind),
				Data:           utils.StripKeys(a, "action", "episode", "podcast"),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.EpisodeActions.Add(float64(len(actions)))
	logging.Debug().Uint("user_id", userID).Int("actions", len(actions)).Msg("episode actions stored")
	return batch, nil
}

func requiredString(a map[string]any, key string) (string, error) {
	v, ok := a[key].(string)
	if !ok || v == "" {
		return "", gpodder.BadRequest("Missing %s key", key)
	}
	return v, nil
}

// actionTime parses a client timestamp into unix seconds, falling back to
// the batch time.
func actionTime(v any, fallback int64) int64 {
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	for _, layout := range actionTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	return fallback
}
