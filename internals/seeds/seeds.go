package seeds

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gradhub_backend/internals/constants"
	settingModel "gradhub_backend/internals/features/settings/model"
	userModel "gradhub_backend/internals/features/users/user/model"
)

// Run inserts the bootstrap rows a fresh install needs: one admin account and
// the setting keys the background checks look for. Idempotent.
func Run(db *gorm.DB) {
	seedAdmin(db)
	seedSettings(db)
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@gradhub.edu"
	}

	var count int64
	if err := db.Model(&userModel.UserModel{}).
		Where("user_role = ?", constants.RoleAdmin).Count(&count).Error; err != nil {
		log.Printf("[SEED ERROR] admin lookup: %v", err)
		return
	}
	if count > 0 {
		return
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		log.Println("⚠️ SEED_ADMIN_PASSWORD not set, seeding admin with the default password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[SEED ERROR] admin password hash: %v", err)
		return
	}

	admin := userModel.UserModel{
		UserFullName: "System Administrator",
		UserEmail:    email,
		UserPassword: string(hashed),
		UserRole:     constants.RoleAdmin,
		UserIsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[SEED ERROR] admin create: %v", err)
		return
	}
	log.Printf("✅ Seeded admin account %s", email)
}

func seedSettings(db *gorm.DB) {
	defaults := []settingModel.SettingModel{
		{
			SettingKey:         constants.SettingApplicationDeadline,
			SettingValue:       "",
			SettingDescription: "Last moment students may submit applications (RFC3339 or YYYY-MM-DD). Empty disables the deadline.",
		},
		{
			SettingKey:         constants.SettingReviewDeadline,
			SettingValue:       "",
			SettingDescription: "Last moment teachers should finish reviewing (RFC3339 or YYYY-MM-DD). Empty disables the warning.",
		},
	}

	for _, def := range defaults {
		var count int64
		if err := db.Model(&settingModel.SettingModel{}).
			Where("setting_key = ?", def.SettingKey).Count(&count).Error; err != nil {
			log.Printf("[SEED ERROR] setting %s lookup: %v", def.SettingKey, err)
			continue
		}
		if count > 0 {
			continue
		}
		row := def
		if err := db.Create(&row).Error; err != nil {
			log.Printf("[SEED ERROR] setting %s create: %v", def.SettingKey, err)
		}
	}
}
