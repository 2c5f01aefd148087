package models

import "time"

type Payment struct {
	ID        uint `gorm:"primaryKey"`
	ClientID  uint `gorm:"index;not null"`
	Client    Client
	MonthID   uint `gorm:"index;not null"`
	Month     Month
	Amount    float64   `gorm:"not null"`
	Date      time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
