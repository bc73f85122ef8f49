package services

import (
	"context"

	"gposync/internal/gpodder"
	"gposync/internal/models"
	"gposync/internal/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceService struct {
	db *gorm.DB
}

// List returns every device of the user as its data object plus "id".
func (s *DeviceService) List(ctx context.Context, userID uint) ([]map[string]any, error) {
	var devices []models.Device
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&devices).Error; err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(devices))
	for _, d := range devices {
		entry := utils.MergePatch(map[string]any{
			"caption":       "",
			"type":          "other",
			"subscriptions": 0,
		}, d.Data)
		entry["id"] = d.DeviceID
		out = append(out, entry)
	}
	return out, nil
}

// Update creates the device if needed and merges patch into its data.
// The subscriptions counter is reset to 0 on every update.
func (s *DeviceService) Update(ctx context.Context, userID uint, deviceID string, patch map[string]any) error {
	if !utils.ValidDeviceID(deviceID) {
		return gpodder.BadRequest("Invalid device ID")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		device := models.Device{UserID: userID, DeviceID: deviceID, Data: datatypes.JSONMap{}}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&device).Error; err != nil {
			return err
		}

		var current models.Device
		if err := tx.Where("user_id = ? AND deviceid = ?", userID, deviceID).First(&current).Error; err != nil {
			return err
		}

		data := utils.MergePatch(current.Data, patch)
		data["subscriptions"] = 0

		return tx.Model(&current).Update("data", datatypes.JSONMap(data)).Error
	})
}
