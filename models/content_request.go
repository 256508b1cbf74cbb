package models

import "time"

// Status de um pedido de conteúdo
const (
	StatusPendente   = "Pendente"
	StatusAdicionado = "Adicionado"
	StatusComunicado = "Comunicado"
)

type ContentRequest struct {
	ID                  string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title               string     `gorm:"type:varchar(255);not null" json:"title"`
	Type                string     `gorm:"type:varchar(50);not null" json:"type"`
	Logo                *string    `gorm:"type:text" json:"logo,omitempty"`
	Notes               *string    `gorm:"type:text" json:"notes,omitempty"`
	Username            *string    `gorm:"type:varchar(100);index" json:"username,omitempty"`
	Status              string     `gorm:"type:varchar(20);not null;default:'Pendente'" json:"status"`
	RequestedAt         time.Time  `gorm:"not null;index" json:"requestedAt"`
	AddedToCategory     *string    `gorm:"type:varchar(255)" json:"addedToCategory,omitempty"`
	AddedObservation    *string    `gorm:"type:text" json:"addedObservation,omitempty"`
	CommunicatedMessage *string    `gorm:"type:text" json:"communicatedMessage,omitempty"`
	CommunicatedAt      *time.Time `json:"communicatedAt,omitempty"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

func (ContentRequest) TableName() string {
	return "content_requests"
}
