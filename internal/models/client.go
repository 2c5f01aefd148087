package models

import "time"

type Client struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	ImageURL  string `gorm:"size:500;not null"` // URL da imagem hospedada (placeholder quando não enviada)
	CreatedAt time.Time
	UpdatedAt time.Time

	// Ao deletar o aluno, pagamentos e notificações dele caem junto
	Payments      []Payment      `gorm:"constraint:OnDelete:CASCADE"`
	Notifications []Notification `gorm:"constraint:OnDelete:CASCADE"`
}
