package billing

import (
	"math"
	"time"
)

type State string

const (
	StateCurrent  State = "current"
	StateDueSoon  State = "dueSoon"
	StateOverdue  State = "overdue"
	StateNoRecord State = "noRecord"
)

// Ciclo de cobrança fixo de 30 dias a partir do último pagamento
// (não acompanha o mês calendário)
const (
	CycleDays         = 30
	dueSoonWindowDays = 5
)

type DueStatus struct {
	State         State
	DueDate       time.Time
	DaysRemaining int
}

// Status classifica o aluno a partir da data do último pagamento.
// Vencimento = último pagamento + 30 dias; dias restantes arredondados
// para cima. Mais de 5 dias é "current", entre 0 e 5 é "dueSoon",
// negativo é "overdue". Sem pagamento registrado não há vencimento.
func Status(lastPayment, today time.Time) DueStatus {
	if lastPayment.IsZero() {
		return DueStatus{State: StateNoRecord}
	}

	dueDate := lastPayment.AddDate(0, 0, CycleDays)
	diff := dueDate.Sub(today)
	days := int(math.Ceil(diff.Hours() / 24))

	st := DueStatus{
		DueDate:       dueDate,
		DaysRemaining: days,
	}

	switch {
	case days < 0:
		st.State = StateOverdue
	case days <= dueSoonWindowDays:
		st.State = StateDueSoon
	default:
		st.State = StateCurrent
	}

	return st
}
