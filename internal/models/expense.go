package models

import "time"

type ExpenseCategory string

const (
	CategoryFixo         ExpenseCategory = "Fixo"
	CategoryVariavel     ExpenseCategory = "Variavel"
	CategoryOcasional    ExpenseCategory = "Ocasional"
	CategoryEmergencia   ExpenseCategory = "Emergencia"
	CategorySuperfluo    ExpenseCategory = "Supérfluo"
	CategoryInvestimento ExpenseCategory = "Investimento"
)

// ValidCategory: confere se o tipo de gasto é um dos seis aceitos
func ValidCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryFixo, CategoryVariavel, CategoryOcasional,
		CategoryEmergencia, CategorySuperfluo, CategoryInvestimento:
		return true
	}
	return false
}

type Expense struct {
	ID          uint `gorm:"primaryKey"`
	MonthID     uint `gorm:"index;not null"`
	Month       Month
	Category    ExpenseCategory `gorm:"size:20;not null"`
	Description string          `gorm:"size:255;not null"`
	Amount      float64         `gorm:"not null"` // sempre > 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
