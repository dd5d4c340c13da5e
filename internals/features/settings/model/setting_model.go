package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingModel is the flat key→string system settings table. Read-heavy,
// write-rare (admin only).
type SettingModel struct {
	SettingID          uuid.UUID  `gorm:"column:setting_id;type:uuid;primaryKey" json:"setting_id"`
	SettingKey         string     `gorm:"column:setting_key;size:100;uniqueIndex;not null" json:"setting_key"`
	SettingValue       string     `gorm:"column:setting_value;type:text;not null" json:"setting_value"`
	SettingDescription string     `gorm:"column:setting_description;type:text" json:"setting_description"`
	SettingUpdatedBy   *uuid.UUID `gorm:"column:setting_updated_by;type:uuid" json:"setting_updated_by,omitempty"`

	SettingCreatedAt time.Time `gorm:"column:setting_created_at;autoCreateTime" json:"setting_created_at"`
	SettingUpdatedAt time.Time `gorm:"column:setting_updated_at;autoUpdateTime" json:"setting_updated_at"`
}

func (SettingModel) TableName() string {
	return "system_settings"
}

func (s *SettingModel) BeforeCreate(tx *gorm.DB) error {
	if s.SettingID == uuid.Nil {
		s.SettingID = uuid.New()
	}
	return nil
}
