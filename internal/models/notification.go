package models

import "time"

type NotificationState string

const (
	NotificationDueSoon NotificationState = "dueSoon"
	NotificationOverdue NotificationState = "overdue"
)

// Notification: aviso de vencimento gerado pelo worker de cobrança.
// O índice único (client_id, cycle_due) impede avisos repetidos para o
// mesmo ciclo quando o worker roda de novo.
type Notification struct {
	ID        uint `gorm:"primaryKey"`
	ClientID  uint `gorm:"not null;uniqueIndex:idx_notifications_client_cycle"`
	Client    Client
	CycleDue  time.Time         `gorm:"not null;uniqueIndex:idx_notifications_client_cycle"` // vencimento do ciclo
	State     NotificationState `gorm:"size:20;not null"`
	Message   string            `gorm:"size:255;not null"`
	ReadAt    *time.Time
	CreatedAt time.Time
}
