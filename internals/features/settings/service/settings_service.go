package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	settingModel "gradhub_backend/internals/features/settings/model"
)

// SettingsService reads and writes the flat key/value system settings table.
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Get returns the raw value, or "" with found=false when the key is absent.
func (s *SettingsService) Get(key string) (string, bool, error) {
	var row settingModel.SettingModel
	err := s.DB.Where("setting_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.SettingValue, true, nil
}

// deadline values are written by the admin UI in either of these layouts
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// GetTime parses the value as a timestamp. A missing or unparsable value
// returns found=false so time-based rules can no-op.
func (s *SettingsService) GetTime(key string) (time.Time, bool, error) {
	raw, found, err := s.Get(key)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, perr := time.ParseInLocation(layout, raw, time.Local); perr == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, nil
}

func (s *SettingsService) List() ([]settingModel.SettingModel, error) {
	var rows []settingModel.SettingModel
	err := s.DB.Order("setting_key asc").Find(&rows).Error
	return rows, err
}

// Upsert writes a key with its audit trail.
func (s *SettingsService) Upsert(key, value, description string, updatedBy uuid.UUID) (*settingModel.SettingModel, error) {
	var row settingModel.SettingModel
	err := s.DB.Where("setting_key = ?", key).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = settingModel.SettingModel{
			SettingKey:         key,
			SettingValue:       value,
			SettingDescription: description,
			SettingUpdatedBy:   &updatedBy,
		}
		if err := s.DB.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	case err != nil:
		return nil, err
	}

	updates := map[string]interface{}{
		"setting_value":      value,
		"setting_updated_by": updatedBy,
	}
	if description != "" {
		updates["setting_description"] = description
	}
	if err := s.DB.Model(&row).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
