package finance

import "gestor-backend/internal/models"

// Percentuais de reserva aplicados sobre o caixa do mês
const (
	WorkingCapitalRate = 0.45 // capital de giro
	EmergencyRate      = 0.30 // reserva de emergência
	ExpansionRate      = 0.25 // reserva para expansão
)

type Reserves struct {
	WorkingCapital float64 `json:"capitalDeGiro"`
	Emergency      float64 `json:"reservaEmergencia"`
	Expansion      float64 `json:"reservaExpansao"`
}

type Summary struct {
	Income   float64  `json:"entrou"`
	Expense  float64  `json:"despesas"`
	Balance  float64  `json:"caixa"`
	Reserves Reserves `json:"reservas"`
}

// Aggregate calcula o resumo financeiro de um conjunto de pagamentos e
// despesas. Pagamentos com valor <= 0 ficam fora da entrada (filtro
// defensivo contra registros malformados). Entradas vazias resultam em
// totais zerados. Função pura, sem efeitos colaterais.
func Aggregate(payments []models.Payment, expenses []models.Expense) Summary {
	var income float64
	for _, p := range payments {
		if p.Amount > 0 {
			income += p.Amount
		}
	}

	var expense float64
	for _, e := range expenses {
		expense += e.Amount
	}

	balance := income - expense

	return Summary{
		Income:  income,
		Expense: expense,
		Balance: balance,
		Reserves: Reserves{
			WorkingCapital: balance * WorkingCapitalRate,
			Emergency:      balance * EmergencyRate,
			Expansion:      balance * ExpansionRate,
		},
	}
}
