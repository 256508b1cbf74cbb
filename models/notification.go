package models

import "time"

// Tipos de notificação
const (
	NotifTypeNewContent    = "new_content"
	NotifTypeRequestAdded  = "request_added"
	NotifTypeRequestStatus = "request_status"
	NotifTypeCommunication = "communication"
)

// NotificationData carrega os campos estruturados de uma notificação.
// Cada tipo preenche exatamente os campos que lhe pertencem; use os
// construtores abaixo em vez de montar o struct manualmente.
type NotificationData struct {
	RequestID    string `json:"requestId,omitempty"`
	ContentTitle string `json:"contentTitle,omitempty"`
	Status       string `json:"status,omitempty"`
	Message      string `json:"message,omitempty"`
}

// NewContentData -> payload do broadcast new_content
func NewContentData() *NotificationData {
	return &NotificationData{Status: NotifTypeNewContent}
}

// RequestAddedData -> payload de request_added
func RequestAddedData(requestID, contentTitle string) *NotificationData {
	return &NotificationData{
		RequestID:    requestID,
		ContentTitle: contentTitle,
		Status:       StatusAdicionado,
	}
}

// RequestStatusData -> payload de request_status
func RequestStatusData(requestID, contentTitle, status string) *NotificationData {
	return &NotificationData{
		RequestID:    requestID,
		ContentTitle: contentTitle,
		Status:       status,
	}
}

// CommunicationData -> payload de communication
func CommunicationData(requestID, contentTitle, message string) *NotificationData {
	return &NotificationData{
		RequestID:    requestID,
		ContentTitle: contentTitle,
		Message:      message,
	}
}

type Notification struct {
	ID        string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string            `gorm:"type:varchar(100);not null;index" json:"userId"`
	Title     string            `gorm:"type:varchar(255);not null" json:"title"`
	Body      string            `gorm:"type:text;not null" json:"body"`
	Type      string            `gorm:"type:varchar(20);not null" json:"type"`
	Data      *NotificationData `gorm:"serializer:json" json:"data,omitempty"`
	Read      bool              `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time         `gorm:"not null;index" json:"createdAt"`
	ExpiresAt *time.Time        `json:"expiresAt,omitempty"`
}
