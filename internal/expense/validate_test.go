package expense

import "testing"

func f(v float64) *float64 { return &v }

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		body    CreateExpenseRequest
		wantMsg string
	}{
		{
			name:    "despesa válida",
			body:    CreateExpenseRequest{TipoGasto: "Fixo", Valor: f(15.50), Descricao: "Aluguel"},
			wantMsg: "",
		},
		{
			name:    "categoria com acento",
			body:    CreateExpenseRequest{TipoGasto: "Supérfluo", Valor: f(10), Descricao: "Lanche"},
			wantMsg: "",
		},
		{
			name:    "valor zero é rejeitado",
			body:    CreateExpenseRequest{TipoGasto: "Fixo", Valor: f(0), Descricao: "Aluguel"},
			wantMsg: "O valor deve ser maior que zero",
		},
		{
			name:    "valor negativo é rejeitado",
			body:    CreateExpenseRequest{TipoGasto: "Variavel", Valor: f(-5), Descricao: "Conta"},
			wantMsg: "O valor deve ser maior que zero",
		},
		{
			name:    "valor ausente",
			body:    CreateExpenseRequest{TipoGasto: "Fixo", Descricao: "Aluguel"},
			wantMsg: "Todos os campos são obrigatórios",
		},
		{
			name:    "descrição ausente",
			body:    CreateExpenseRequest{TipoGasto: "Fixo", Valor: f(20)},
			wantMsg: "Todos os campos são obrigatórios",
		},
		{
			name:    "tipo de gasto ausente",
			body:    CreateExpenseRequest{Valor: f(20), Descricao: "Conta"},
			wantMsg: "Todos os campos são obrigatórios",
		},
		{
			name:    "categoria fora do enum",
			body:    CreateExpenseRequest{TipoGasto: "Lazer", Valor: f(20), Descricao: "Cinema"},
			wantMsg: "Tipo de gasto inválido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateCreate(tt.body); got != tt.wantMsg {
				t.Errorf("ValidateCreate() = %q, esperava %q", got, tt.wantMsg)
			}
		})
	}
}
