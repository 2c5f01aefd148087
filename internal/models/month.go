package models

import "time"

// Month: período mensal que agrupa pagamentos e despesas.
// Nunca é atualizado e não existe endpoint de exclusão.
type Month struct {
	ID        uint      `gorm:"primaryKey"`
	Date      time.Time `gorm:"index;not null"` // sempre normalizada para o dia 1 do mês
	CreatedAt time.Time
}
