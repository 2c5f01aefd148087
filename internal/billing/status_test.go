package billing

import (
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	today := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		lastPayment time.Time
		wantState   State
		wantDays    int
	}{
		{
			name:        "pagamento há 10 dias - em dia",
			lastPayment: today.AddDate(0, 0, -10),
			wantState:   StateCurrent,
			wantDays:    20,
		},
		{
			name:        "pagamento há exatos 30 dias - vence hoje",
			lastPayment: today.AddDate(0, 0, -30),
			wantState:   StateDueSoon,
			wantDays:    0,
		},
		{
			name:        "pagamento há 26 dias - vence em 4 dias",
			lastPayment: today.AddDate(0, 0, -26),
			wantState:   StateDueSoon,
			wantDays:    4,
		},
		{
			name:        "pagamento há 25 dias - limite da janela",
			lastPayment: today.AddDate(0, 0, -25),
			wantState:   StateDueSoon,
			wantDays:    5,
		},
		{
			name:        "pagamento há 24 dias - ainda em dia",
			lastPayment: today.AddDate(0, 0, -24),
			wantState:   StateCurrent,
			wantDays:    6,
		},
		{
			name:        "pagamento há 36 dias - atrasado",
			lastPayment: today.AddDate(0, 0, -36),
			wantState:   StateOverdue,
			wantDays:    -6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Status(tt.lastPayment, today)
			if got.State != tt.wantState {
				t.Errorf("Status().State = %v, esperava %v", got.State, tt.wantState)
			}
			if got.DaysRemaining != tt.wantDays {
				t.Errorf("Status().DaysRemaining = %v, esperava %v", got.DaysRemaining, tt.wantDays)
			}
			wantDue := tt.lastPayment.AddDate(0, 0, CycleDays)
			if !got.DueDate.Equal(wantDue) {
				t.Errorf("Status().DueDate = %v, esperava %v", got.DueDate, wantDue)
			}
		})
	}
}

func TestStatusNoRecord(t *testing.T) {
	got := Status(time.Time{}, time.Now())
	if got.State != StateNoRecord {
		t.Fatalf("Status() sem pagamento = %v, esperava %v", got.State, StateNoRecord)
	}
	if !got.DueDate.IsZero() {
		t.Fatalf("sem pagamento não deveria ter vencimento, veio %v", got.DueDate)
	}
}

func TestStatusFractionalDay(t *testing.T) {
	// Vencimento daqui a meio dia arredonda para cima: 1 dia restante
	today := time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC)
	lastPayment := today.AddDate(0, 0, -30).Add(12 * time.Hour)

	got := Status(lastPayment, today)
	if got.DaysRemaining != 1 {
		t.Fatalf("DaysRemaining = %d, esperava 1 (ceil de 0.5)", got.DaysRemaining)
	}
	if got.State != StateDueSoon {
		t.Fatalf("State = %v, esperava %v", got.State, StateDueSoon)
	}
}
