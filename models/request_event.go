package models

import "time"

// Tipos de evento do outbox de pedidos
const (
	EventRequestSubmitted    = "request_submitted"
	EventRequestAdded        = "request_added"
	EventRequestCommunicated = "request_communicated"
	EventRequestPending      = "request_pending"
	EventRequestDeleted      = "request_deleted"
)

// RequestEvent é a linha de outbox gravada na mesma transação da
// mutação do pedido. O EventMonitor consome em ordem de id e marca
// processed; reprocessar após crash gera notificação duplicada
// (entrega at-least-once).
type RequestEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventType    string    `gorm:"type:varchar(30);not null" json:"eventType"`
	RequestID    string    `gorm:"type:varchar(36);not null;index" json:"requestId"`
	UserID       string    `gorm:"type:varchar(100);not null" json:"userId"`
	RequestTitle string    `gorm:"type:varchar(255);not null" json:"requestTitle"`
	Category     string    `gorm:"type:varchar(255)" json:"category,omitempty"`
	Message      string    `gorm:"type:text" json:"message,omitempty"`
	Status       string    `gorm:"type:varchar(20)" json:"status,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	Processed    bool      `gorm:"default:false;index" json:"processed"`
}

func (RequestEvent) TableName() string {
	return "request_events"
}
