package models

import "time"

// Status de um relatório de problema
const (
	ReportAberto    = "Aberto"
	ReportResolvido = "Resolvido"
)

type ProblemReport struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title      string     `gorm:"type:varchar(255);not null" json:"title"`
	Problem    string     `gorm:"type:text;not null" json:"problem"`
	Username   *string    `gorm:"type:varchar(100);index" json:"username,omitempty"`
	Status     string     `gorm:"type:varchar(20);not null;default:'Aberto'" json:"status"`
	ReportedAt time.Time  `gorm:"not null;index" json:"reportedAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

func (ProblemReport) TableName() string {
	return "problem_reports"
}
