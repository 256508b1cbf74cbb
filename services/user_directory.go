package services

import (
	"github.com/brunodev185/pedidos-cine/models"
	"gorm.io/gorm"
)

// GormUserDirectory lista os usuários conhecidos a partir da tabela
// de contas.
type GormUserDirectory struct {
	DB *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{DB: db}
}

func (d *GormUserDirectory) ListUserIDs() ([]string, error) {
	var usernames []string
	if err := d.DB.Model(&models.User{}).
		Order("username ASC").
		Pluck("username", &usernames).Error; err != nil {
		return nil, err
	}
	return usernames, nil
}
