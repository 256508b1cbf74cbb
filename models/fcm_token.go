package models

import "time"

// DefaultTokenSlot guarda o token registrado antes do login.
const DefaultTokenSlot = "default"

// FCMToken é o registro de token por usuário. Apenas o token mais
// recente importa; gravações concorrentes fazem last-write-wins.
type FCMToken struct {
	UserID      string    `gorm:"type:varchar(100);primaryKey" json:"userId"`
	Token       string    `gorm:"type:text;not null" json:"-"`
	LastUpdated time.Time `gorm:"not null" json:"lastUpdated"`
}

func (FCMToken) TableName() string {
	return "fcm_tokens"
}
