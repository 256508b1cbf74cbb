package database

import (
	"time"

	"github.com/brunodev185/pedidos-cine/models"
	"gorm.io/gorm"
)

// Migrate cria o schema de todas as coleções. O outbox (request_events)
// é gravado na mesma transação das mutações, então não há triggers de
// banco aqui.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.ContentRequest{},
		&models.ProblemReport{},
		&models.UserRequest{},
		&models.Notification{},
		&models.FCMToken{},
		&models.RequestEvent{},
	); err != nil {
		return err
	}

	return seedDefaultTokenSlot(db)
}

// seedDefaultTokenSlot garante a linha "default" usada antes do login.
func seedDefaultTokenSlot(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.FCMToken{}).
		Where("user_id = ?", models.DefaultTokenSlot).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.FCMToken{
		UserID:      models.DefaultTokenSlot,
		Token:       "",
		LastUpdated: time.Now(),
	}).Error
}
