package database

import (
	"log"

	"gorm.io/gorm"

	notificationModel "gradhub_backend/internals/features/notifications/notification/model"
	applicationModel "gradhub_backend/internals/features/projects/application/model"
	projectModel "gradhub_backend/internals/features/projects/project/model"
	settingModel "gradhub_backend/internals/features/settings/model"
	authModel "gradhub_backend/internals/features/users/auth/model"
	userModel "gradhub_backend/internals/features/users/user/model"
)

// MigrateDatabase runs GORM auto-migration for every table, skipping tables
// that already exist.
func MigrateDatabase(db *gorm.DB) error {
	models := []interface{}{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&projectModel.ProjectModel{},
		&applicationModel.ApplicationModel{},
		&notificationModel.NotificationModel{},
		&notificationModel.QuotaAlertModel{},
		&settingModel.SettingModel{},
	}

	migrator := db.Migrator()
	for _, m := range models {
		if !migrator.HasTable(m) {
			if err := db.AutoMigrate(m); err != nil {
				return err
			}
		}
	}

	log.Println("✅ Database migrated.")
	return nil
}
