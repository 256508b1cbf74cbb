package models

import "time"

// UserRequest é a projeção por usuário de um ContentRequest (mirror).
// Sempre derivado do pedido de origem, nunca a fonte da verdade.
type UserRequest struct {
	ID                  string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID              string     `gorm:"type:varchar(100);not null;index" json:"userId"`
	RequestID           string     `gorm:"type:varchar(36);not null;index" json:"requestId"`
	RequestTitle        string     `gorm:"type:varchar(255);not null" json:"requestTitle"`
	Status              string     `gorm:"type:varchar(20);not null" json:"status"`
	RequestedAt         time.Time  `gorm:"not null;index" json:"requestedAt"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
	AddedToCategory     *string    `gorm:"type:varchar(255)" json:"addedToCategory,omitempty"`
	AddedObservation    *string    `gorm:"type:text" json:"addedObservation,omitempty"`
	CommunicatedMessage *string    `gorm:"type:text" json:"communicatedMessage,omitempty"`
	CommunicatedAt      *time.Time `json:"communicatedAt,omitempty"`
}

func (UserRequest) TableName() string {
	return "user_requests"
}
